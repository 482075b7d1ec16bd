package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides the identity and timestamp columns shared by every
// row the directory reads. Rows are written upstream, never by this service.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// NewBaseEntity creates a base entity with a generated ID.
// Used by tests and fixtures; production rows arrive with their own IDs.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
