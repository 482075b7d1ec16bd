package society

import (
	"strings"
)

// suffixes are stripped once each, in this order, after the leading "the".
var suffixes = []string{" community", " society", " dao", " city", ".xyz", ".com", ".io"}

// Normalize reduces a society or organizer name to its comparison form.
// Names found in the alias table map to the canonical name with its case
// preserved; everything else is lower-cased with the leading "the" and the
// known suffixes removed.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := Alias(n); ok {
		return canonical
	}

	n = strings.TrimPrefix(n, "the ")
	for _, suffix := range suffixes {
		n = strings.TrimSuffix(n, suffix)
	}
	return strings.TrimSpace(n)
}

// NamesMatch reports whether a and b plausibly name the same society: equal
// after normalization, one contained in the other, or one being the other's
// per-word initials. Best effort only; short acronyms can collide.
func NamesMatch(a, b string) bool {
	na := strings.ToLower(Normalize(a))
	nb := strings.ToLower(Normalize(b))
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return na == initials(nb) || nb == initials(na)
}

// FindExactSociety returns the first candidate equal to term after
// normalization. An alias counts as its canonical name. Unlike
// FindMatchingSociety it never guesses.
func FindExactSociety(term string, candidates []string) (string, bool) {
	key := matchKey(term)
	if key == "" {
		return "", false
	}
	for _, candidate := range candidates {
		if matchKey(candidate) == key {
			return candidate, true
		}
	}
	return "", false
}

// matchKey normalizes twice so an alias resolves to the same key as the
// canonical name it points at.
func matchKey(name string) string {
	return strings.ToLower(Normalize(Normalize(name)))
}

// FindMatchingSociety returns the first candidate equal to term after
// normalization, falling back to the first candidate NamesMatch accepts.
func FindMatchingSociety(term string, candidates []string) (string, bool) {
	if name, ok := FindExactSociety(term, candidates); ok {
		return name, true
	}
	if strings.TrimSpace(term) == "" {
		return "", false
	}

	for _, candidate := range candidates {
		if NamesMatch(term, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func initials(name string) string {
	words := strings.Fields(name)
	var b strings.Builder
	for _, w := range words {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}
