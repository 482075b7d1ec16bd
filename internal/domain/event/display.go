package event

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DisplayEvent is the denormalized shape the directory renders. Every field
// is always populated, with a fallback sentinel where the row has no value.
type DisplayEvent struct {
	ID           uuid.UUID   `json:"id"`
	Source       EventSource `json:"source"`
	Date         string      `json:"date"`
	Time         string      `json:"time"`
	Title        string      `json:"title"`
	Location     string      `json:"location"`
	Country      string      `json:"country"`
	NetworkState string      `json:"network_state"`
	Type         string      `json:"type"`
	URL          string      `json:"url"`
}

// ToDisplayEvent derives the display record of raw in UTC
func ToDisplayEvent(raw RawEvent) DisplayEvent {
	return ToDisplayEventIn(raw, time.UTC)
}

// ToDisplayEventIn derives the display record of raw with date and time in loc
func ToDisplayEventIn(raw RawEvent, loc *time.Location) DisplayEvent {
	formatted := FormatEventIn(raw, loc)
	return DisplayEvent{
		ID:           raw.ID,
		Source:       raw.Source,
		Date:         formatted.Date,
		Time:         formatted.Time,
		Title:        strings.TrimSpace(raw.Title),
		Location:     formatted.Location,
		Country:      ResolveCountry(raw),
		NetworkState: ResolveNetworkState(raw.Organizers),
		Type:         InferType(raw.Title, raw.Description),
		URL:          strings.TrimSpace(raw.SourceURL),
	}
}

// ToDisplayEvents maps raws in order. A malformed row degrades field by
// field and never drops out of the batch.
func ToDisplayEvents(raws []RawEvent, loc *time.Location) []DisplayEvent {
	out := make([]DisplayEvent, len(raws))
	for i := range raws {
		out[i] = ToDisplayEventIn(raws[i], loc)
	}
	return out
}
