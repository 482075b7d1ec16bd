package event

import (
	"context"
	"time"
)

// SortDirection orders results by start time
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Query selects raw events from the store. Zero values mean "no constraint".
type Query struct {
	// Tags requires every listed tag to be present
	Tags []string
	// Source restricts to one provider
	Source EventSource
	// StartFrom keeps events starting at or after this instant
	StartFrom *time.Time
	// StartBefore keeps events starting strictly before this instant
	StartBefore *time.Time
	// EndsAfter keeps events ending at or after this instant
	EndsAfter *time.Time
	// OrderDir orders by start_at, ascending by default
	OrderDir SortDirection
	Limit    int
	Offset   int
}

// Repository reads raw events. Implementations are read-only.
type Repository interface {
	// Find returns the events matching q ordered by start time
	Find(ctx context.Context, q Query) ([]RawEvent, error)

	// Count counts the events matching q, ignoring limit and offset
	Count(ctx context.Context, q Query) (int64, error)
}
