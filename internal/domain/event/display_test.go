package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestToDisplayEvent(t *testing.T) {
	id := uuid.New()
	raw := RawEvent{
		Title:      "  Morning Yoga Flow ",
		StartAt:    mustTime(t, "2025-02-15T18:30:00Z"),
		EndAt:      mustTime(t, "2025-02-15T20:00:00Z"),
		City:       strPtr("Forest City"),
		Country:    strPtr("Malaysia"),
		Source:     EventSourceLuma,
		SourceURL:  " https://lu.ma/yoga ",
		Organizers: json.RawMessage(`[{"name":"Host"},{"name":"Network School"}]`),
	}
	raw.ID = id

	got := ToDisplayEvent(raw)

	assert.Equal(t, DisplayEvent{
		ID:           id,
		Source:       EventSourceLuma,
		Date:         "2025-02-15",
		Time:         "6:30 PM – 8:00 PM",
		Title:        "Morning Yoga Flow",
		Location:     "Forest City",
		Country:      "Malaysia",
		NetworkState: "Network School",
		Type:         TypeMeditation,
		URL:          "https://lu.ma/yoga",
	}, got)
}

func TestToDisplayEvent_EmptyRow(t *testing.T) {
	got := ToDisplayEvent(RawEvent{})

	assert.Equal(t, TBD, got.Date)
	assert.Equal(t, TBD, got.Time)
	assert.Equal(t, TBD, got.Location)
	assert.Equal(t, UnknownLabel, got.Country)
	assert.Equal(t, UnknownLabel, got.NetworkState)
	assert.Equal(t, DefaultType, got.Type)
}

func TestToDisplayEvent_MalformedOrganizers(t *testing.T) {
	raw := RawEvent{Title: "Talk", Organizers: json.RawMessage(`{"broken":`)}

	assert.NotPanics(t, func() {
		got := ToDisplayEvent(raw)
		assert.Equal(t, `{"broken":`, got.NetworkState)
	})
}

func TestToDisplayEvents_PreservesOrder(t *testing.T) {
	titles := []string{"c", "a", "b"}
	raws := make([]RawEvent, len(titles))
	for i, title := range titles {
		raws[i] = RawEvent{Title: title}
	}

	got := ToDisplayEvents(raws, time.UTC)

	assert.Len(t, got, len(raws))
	for i := range got {
		assert.Equal(t, titles[i], got[i].Title)
	}
}

func TestToDisplayEvents_Empty(t *testing.T) {
	got := ToDisplayEvents(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
