package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	eventapp "github.com/nsnodes/backend/internal/application/event"
	"github.com/nsnodes/backend/internal/domain/event"
)

// EventLister is the part of the event service the handler depends on
type EventLister interface {
	ListEvents(ctx context.Context, filter eventapp.ListEventsFilter) ([]event.DisplayEvent, int64)
	ListPopupCities(ctx context.Context, filter eventapp.PopupCityFilter) []event.PopupCityEvent
	Paging(filter eventapp.ListEventsFilter) (page, pageSize int)
}

// EventHandler serves display events and popup cities
type EventHandler struct {
	BaseHandler
	events EventLister
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(events EventLister) *EventHandler {
	return &EventHandler{events: events}
}

// ListEvents answers one page of display events.
// GET /api/v1/events?source=&tag=&from=&to=&tz=&page=&page_size=&order_dir=
func (h *EventHandler) ListEvents(c *gin.Context) {
	var filter eventapp.ListEventsFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	if err := filter.Validate(); err != nil {
		h.HandleError(c, err)
		return
	}

	events, total := h.events.ListEvents(c.Request.Context(), filter)
	page, pageSize := h.events.Paging(filter)
	h.SuccessWithMeta(c, events, total, page, pageSize)
}

// ListPopupCities answers the popup cities that have not ended yet.
// GET /api/v1/events/popup-cities?tz=
func (h *EventHandler) ListPopupCities(c *gin.Context) {
	var filter eventapp.PopupCityFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	h.Success(c, h.events.ListPopupCities(c.Request.Context(), filter))
}
