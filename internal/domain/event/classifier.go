package event

import (
	"regexp"
	"strings"
)

// Event type labels. The set is closed; DefaultType is used when no rule matches.
const (
	TypeDemoDay    = "Demo Day"
	TypeWorkshop   = "Workshop"
	TypeConference = "Conference"
	TypeMeetup     = "Meetup"
	TypeMeditation = "Meditation"
	TypeCeremony   = "Ceremony"
	TypeDiscussion = "Discussion"
	TypeScreening  = "Screening"
	TypeDeepwork   = "Deepwork"
	TypeSports     = "Sports"
	TypeSocial     = "Social"
	TypeForum      = "Forum"
	TypePopUp      = "Pop-Up"
	DefaultType    = "Event"
)

type typeRule struct {
	label   string
	pattern *regexp.Regexp
}

// typeRules is evaluated top to bottom and the first match wins, so the
// more specific categories sit above the generic ones.
var typeRules = []typeRule{
	{TypeDemoDay, regexp.MustCompile(`\bdemo[\s-]?days?\b|\bpitch (night|day|session)s?\b`)},
	{TypeWorkshop, regexp.MustCompile(`\bworkshops?\b|\bhackathons?\b|\bbootcamps?\b|\bmasterclass(es)?\b|\bhands[\s-]on\b`)},
	{TypeConference, regexp.MustCompile(`\bconferences?\b|\bsummits?\b|\bsymposium\b|\bcongress\b|\bexpo\b`)},
	{TypeMeetup, regexp.MustCompile(`\bmeet[\s-]?ups?\b|\bnetworking\b|\bmixer\b`)},
	{TypeMeditation, regexp.MustCompile(`\bmeditat\w*|\byoga\b|\bbreathwork\b|\bmindful\w*|\bsound bath\b`)},
	{TypeCeremony, regexp.MustCompile(`\bceremon(y|ies)\b|\bcacao\b|\brituals?\b|\binaugurat\w*`)},
	{TypeDiscussion, regexp.MustCompile(`\bdiscussions?\b|\bpanels?\b|\bfireside\b|\bdebates?\b|\bround[\s-]?tables?\b|\bsalon\b|\bq&a\b|\bama\b|\btalks?\b|\blectures?\b`)},
	{TypeScreening, regexp.MustCompile(`\bscreenings?\b|\bfilms?\b|\bmovies?\b|\bdocumentar(y|ies)\b|\bcinema\b`)},
	{TypeDeepwork, regexp.MustCompile(`\bdeep[\s-]?work\b|\bco[\s-]?working\b|\bfocus (session|block)s?\b|\bwork sessions?\b`)},
	{TypeSports, regexp.MustCompile(`\bsports?\b|\brun(s|ning)?\b|\bhik(e|es|ing)\b|\bfootball\b|\bsoccer\b|\bbasketball\b|\bvolleyball\b|\btennis\b|\bpadel\b|\bpickleball\b|\bgym\b|\bfitness\b|\bworkouts?\b|\bswim\w*|\bsurf\w*`)},
	{TypeSocial, regexp.MustCompile(`\bpart(y|ies)\b|\bdinners?\b|\bbrunch\b|\blunch\b|\bdrinks\b|\bhappy hour\b|\bsocial\b|\bkaraoke\b|\bgame night\b|\bpotluck\b|\bbbq\b`)},
	{TypeForum, regexp.MustCompile(`\bforums?\b|\btown[\s-]?halls?\b|\bassembl(y|ies)\b|\bgovernance\b`)},
	{TypePopUp, regexp.MustCompile(`\bpop[\s-]?ups?\b`)},
}

// InferType classifies an event from its title and description.
func InferType(title string, description *string) string {
	text := title
	if description != nil {
		text += " " + *description
	}
	text = strings.ToLower(text)

	for _, rule := range typeRules {
		if rule.pattern.MatchString(text) {
			return rule.label
		}
	}
	return DefaultType
}
