// Package society holds the canonical society directory and the heuristic
// used to reconcile organizer labels against it.
package society

import (
	"github.com/nsnodes/backend/internal/domain/shared"
)

// Society is a canonical community entry, synced upstream from Airtable
type Society struct {
	shared.BaseEntity
	Name        string  `gorm:"type:varchar(200);not null;uniqueIndex"`
	Type        string  `gorm:"type:varchar(50);index"`
	Description *string `gorm:"type:text"`
	Location    *string `gorm:"type:varchar(200)"`
	Website     *string `gorm:"type:text"`
	XHandle     *string `gorm:"column:x_handle;type:varchar(100)"`
	LogoURL     *string `gorm:"column:logo_url;type:text"`
	AirtableID  string  `gorm:"column:airtable_id;type:varchar(50);index"`
}

// TableName returns the table name for GORM
func (Society) TableName() string {
	return "societies"
}
