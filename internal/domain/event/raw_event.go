// Package event holds the raw event rows read from the directory store and
// the pure transforms that turn them into display records.
package event

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/lib/pq"
	"github.com/nsnodes/backend/internal/domain/shared"
)

// EventSource identifies the calendar provider a row was synced from
type EventSource string

const (
	EventSourceLuma EventSource = "luma"
	EventSourceSola EventSource = "sola"
)

// AllEventSources returns every known provider
func AllEventSources() []EventSource {
	return []EventSource{EventSourceLuma, EventSourceSola}
}

// IsValid reports whether s is a known provider
func (s EventSource) IsValid() bool {
	return slices.Contains(AllEventSources(), s)
}

// Organizer is one entry of the organizers list as providers encode it
type Organizer struct {
	Name string `json:"name"`
}

// RawEvent is an event row as stored upstream. It is read-only input: the
// service never writes it back.
type RawEvent struct {
	shared.BaseEntity
	Title       string          `gorm:"type:text;not null"`
	Description *string         `gorm:"type:text"`
	StartAt     time.Time       `gorm:"not null;index"`
	EndAt       time.Time       `gorm:"not null;index"`
	Timezone    string          `gorm:"type:varchar(64)"`
	VenueName   *string         `gorm:"type:text"`
	Address     *string         `gorm:"type:text"`
	City        *string         `gorm:"type:varchar(200)"`
	Country     *string         `gorm:"type:varchar(200)"`
	Lat         *float64        `gorm:"column:lat"`
	Lng         *float64        `gorm:"column:lng"`
	Source      EventSource     `gorm:"type:varchar(20);not null;index"`
	SourceURL   string          `gorm:"column:source_url;type:text"`
	Organizers  json.RawMessage `gorm:"type:jsonb"`
	Tags        pq.StringArray  `gorm:"type:text[]"`
	Status      string          `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (RawEvent) TableName() string {
	return "events"
}

// HasTag reports whether the row carries tag
func (e RawEvent) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
