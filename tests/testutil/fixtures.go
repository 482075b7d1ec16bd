package testutil

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nsnodes/backend/internal/domain/event"
	"github.com/nsnodes/backend/internal/domain/shared"
	"github.com/nsnodes/backend/internal/domain/society"
)

// EventOption customizes a fixture built by NewRawEvent
type EventOption func(*event.RawEvent)

// NewRawEvent returns a published luma event between start and end, in UTC.
func NewRawEvent(title string, start, end time.Time, opts ...EventOption) event.RawEvent {
	e := event.RawEvent{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		StartAt:    start.UTC(),
		EndAt:      end.UTC(),
		Timezone:   "UTC",
		Source:     event.EventSourceLuma,
		SourceURL:  "https://lu.ma/" + uuid.NewString(),
		Tags:       pq.StringArray{},
		Status:     "published",
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// WithSource sets the provider
func WithSource(source event.EventSource) EventOption {
	return func(e *event.RawEvent) { e.Source = source }
}

// WithTags replaces the tag list
func WithTags(tags ...string) EventOption {
	return func(e *event.RawEvent) { e.Tags = pq.StringArray(tags) }
}

// WithOrganizers stores raw as the jsonb organizers value
func WithOrganizers(raw string) EventOption {
	return func(e *event.RawEvent) { e.Organizers = json.RawMessage(raw) }
}

// WithOrganizerNames encodes names as a list of {name} objects
func WithOrganizerNames(names ...string) EventOption {
	return func(e *event.RawEvent) {
		list := make([]event.Organizer, len(names))
		for i, n := range names {
			list[i] = event.Organizer{Name: n}
		}
		data, _ := json.Marshal(list)
		e.Organizers = data
	}
}

// WithVenue sets the venue name
func WithVenue(venue string) EventOption {
	return func(e *event.RawEvent) { e.VenueName = &venue }
}

// WithCity sets the city
func WithCity(city string) EventOption {
	return func(e *event.RawEvent) { e.City = &city }
}

// WithCountry sets the country
func WithCountry(country string) EventOption {
	return func(e *event.RawEvent) { e.Country = &country }
}

// WithDescription sets the description
func WithDescription(description string) EventOption {
	return func(e *event.RawEvent) { e.Description = &description }
}

// NewSociety returns a society fixture
func NewSociety(name, typ string) society.Society {
	return society.Society{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       typ,
	}
}
