package society

// aliases maps lower-cased spellings seen in organizer metadata to the
// canonical society name. Read-only after init.
var aliases = map[string]string{
	"balaji's network school": "Network School",
	"networkschool":           "Network School",
	"ns.com":                  "Network School",
	"edge esmeralda":          "Edge City",
	"edge city lanna":         "Edge City",
	"edge austin":             "Edge City",
	"prospera":                "Próspera",
	"próspera zede":           "Próspera",
	"praxis society":          "Praxis",
	"praxis nation":           "Praxis",
	"vitalia city":            "Vitalia",
	"infinita city":           "Infinita",
	"infinita vc":             "Infinita",
	"zuzalu.city":             "Zuzalu",
	"zu village":              "Zuzalu",
	"4 seas":                  "4Seas",
	"cabin.city":              "Cabin",
	"cabin dao":               "Cabin",
	"crecimiento argentina":   "Crecimiento",
	"aleph cloud":             "Aleph",
	"logos network state":     "Logos",
}

// Alias returns the canonical name registered for key, which must already
// be lower-cased and trimmed.
func Alias(key string) (string, bool) {
	canonical, ok := aliases[key]
	return canonical, ok
}
