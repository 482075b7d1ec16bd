package persistence

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/nsnodes/backend/internal/domain/event"
	"gorm.io/gorm"
)

// GormEventRepository reads the events table
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Find returns the events matching q ordered by start_at, then id
func (r *GormEventRepository) Find(ctx context.Context, q event.Query) ([]event.RawEvent, error) {
	dir := "ASC"
	if q.OrderDir == event.SortDesc {
		dir = "DESC"
	}

	query := r.scoped(ctx, q).Order(fmt.Sprintf("start_at %s, id %s", dir, dir))
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	var events []event.RawEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return events, nil
}

// Count counts the events matching q, ignoring limit and offset
func (r *GormEventRepository) Count(ctx context.Context, q event.Query) (int64, error) {
	var count int64
	if err := r.scoped(ctx, q).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (r *GormEventRepository) scoped(ctx context.Context, q event.Query) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&event.RawEvent{})

	if len(q.Tags) > 0 {
		query = query.Where("tags @> ?", pq.Array(q.Tags))
	}
	if q.Source != "" {
		query = query.Where("source = ?", q.Source)
	}
	if q.StartFrom != nil {
		query = query.Where("start_at >= ?", *q.StartFrom)
	}
	if q.StartBefore != nil {
		query = query.Where("start_at < ?", *q.StartBefore)
	}
	if q.EndsAfter != nil {
		query = query.Where("end_at >= ?", *q.EndsAfter)
	}
	return query
}
