package event

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PopupCityTag marks long-running, location-bound community events
const PopupCityTag = "popup-city"

// PopupCityEvent resolves like DisplayEvent but keeps the date range
type PopupCityEvent struct {
	ID           uuid.UUID   `json:"id"`
	Source       EventSource `json:"source"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Title        string      `json:"title"`
	Location     string      `json:"location"`
	Country      string      `json:"country"`
	NetworkState string      `json:"network_state"`
	Type         string      `json:"type"`
	URL          string      `json:"url"`
}

// ToPopupCityEvent derives the popup city record of raw with UTC dates
func ToPopupCityEvent(raw RawEvent) PopupCityEvent {
	return ToPopupCityEventIn(raw, time.UTC)
}

// ToPopupCityEventIn derives the popup city record of raw with dates in loc
func ToPopupCityEventIn(raw RawEvent, loc *time.Location) PopupCityEvent {
	return PopupCityEvent{
		ID:           raw.ID,
		Source:       raw.Source,
		StartDate:    FormatDate(raw.StartAt, loc),
		EndDate:      FormatDate(raw.EndAt, loc),
		Title:        strings.TrimSpace(raw.Title),
		Location:     ResolveLocation(raw),
		Country:      ResolveCountry(raw),
		NetworkState: ResolveNetworkState(raw.Organizers),
		Type:         InferType(raw.Title, raw.Description),
		URL:          strings.TrimSpace(raw.SourceURL),
	}
}

// ToPopupCityEvents maps raws in order
func ToPopupCityEvents(raws []RawEvent, loc *time.Location) []PopupCityEvent {
	out := make([]PopupCityEvent, len(raws))
	for i := range raws {
		out[i] = ToPopupCityEventIn(raws[i], loc)
	}
	return out
}

// IsOngoingPopupCity reports whether raw carries tag and has not ended
// before now. The store applies the same predicate in SQL.
func IsOngoingPopupCity(raw RawEvent, tag string, now time.Time) bool {
	return raw.HasTag(tag) && !raw.EndAt.Before(now)
}
