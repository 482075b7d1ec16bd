package society

import (
	"context"

	"github.com/google/uuid"
	"github.com/nsnodes/backend/internal/domain/shared"
)

// Repository reads the canonical society directory
type Repository interface {
	// FindByID finds a society by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Society, error)

	// FindAll finds all societies matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Society, error)

	// Count counts societies matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Names returns every canonical society name ordered by name
	Names(ctx context.Context) ([]string, error)
}
