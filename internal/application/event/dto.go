package event

import (
	"time"

	"github.com/nsnodes/backend/internal/domain/shared"
)

// ListEventsFilter holds the query parameters accepted by ListEvents.
// From and To are calendar dates in UTC; To is exclusive.
type ListEventsFilter struct {
	Source   string     `form:"source" binding:"omitempty,oneof=luma sola"`
	Tag      string     `form:"tag" binding:"max=100"`
	From     *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To       *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Timezone string     `form:"tz" binding:"omitempty,timezone"`
	Page     int        `form:"page" binding:"omitempty,min=1,max=100000"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Validate checks constraints spanning more than one field
func (f ListEventsFilter) Validate() error {
	if f.From != nil && f.To != nil && !f.To.After(*f.From) {
		return shared.NewDomainError("INVALID_INPUT", "to must be after from")
	}
	return nil
}

// PopupCityFilter holds the query parameters accepted by ListPopupCities
type PopupCityFilter struct {
	Timezone string `form:"tz" binding:"omitempty,timezone"`
}

// ResolveRequest carries a raw organizers value to resolve
type ResolveRequest struct {
	Organizers string `form:"organizers" binding:"max=10000"`
}

// NetworkStateResolution reports how an organizers value resolves.
// Label is the raw resolution, NetworkState the label after reconciliation.
type NetworkStateResolution struct {
	Organizers   string `json:"organizers"`
	Label        string `json:"label"`
	NetworkState string `json:"network_state"`
	Reconciled   bool   `json:"reconciled"`
}
