package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nsnodes/backend/internal/domain/shared"
	"github.com/nsnodes/backend/internal/domain/society"
	"gorm.io/gorm"
)

// GormSocietyRepository reads the societies table
type GormSocietyRepository struct {
	db *gorm.DB
}

// NewGormSocietyRepository creates a new GormSocietyRepository
func NewGormSocietyRepository(db *gorm.DB) *GormSocietyRepository {
	return &GormSocietyRepository{db: db}
}

// FindByID finds a society by its ID
func (r *GormSocietyRepository) FindByID(ctx context.Context, id uuid.UUID) (*society.Society, error) {
	var s society.Society
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find society %s: %w", id, err)
	}
	return &s, nil
}

// FindAll finds the societies matching filter, one page at a time
func (r *GormSocietyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]society.Society, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&society.Society{}), filter)

	orderBy := ValidateSortField(filter.OrderBy, SocietySortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir, "ASC")
	query = query.Order(orderBy + " " + orderDir)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}

	var societies []society.Society
	if err := query.Find(&societies).Error; err != nil {
		return nil, fmt.Errorf("find societies: %w", err)
	}
	return societies, nil
}

// Count counts the societies matching filter
func (r *GormSocietyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&society.Society{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count societies: %w", err)
	}
	return count, nil
}

// Names returns every society name in alphabetical order
func (r *GormSocietyRepository) Names(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&society.Society{}).
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list society names: %w", err)
	}
	return names, nil
}

// applyFilter applies search and column filters, without ordering or pagination
func (r *GormSocietyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(location, '')) LIKE ?", pattern, pattern)
	}
	if societyType, ok := filter.Filters["type"].(string); ok && societyType != "" {
		query = query.Where("type = ?", societyType)
	}
	return query
}
