package handler

import (
	"context"
	"net/http"
	"testing"
	"time"
	_ "time/tzdata"

	eventapp "github.com/nsnodes/backend/internal/application/event"
	"github.com/nsnodes/backend/internal/domain/event"
	"github.com/nsnodes/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventLister is a mock implementation of EventLister
type MockEventLister struct {
	mock.Mock
}

func (m *MockEventLister) ListEvents(ctx context.Context, filter eventapp.ListEventsFilter) ([]event.DisplayEvent, int64) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]event.DisplayEvent), args.Get(1).(int64)
}

func (m *MockEventLister) ListPopupCities(ctx context.Context, filter eventapp.PopupCityFilter) []event.PopupCityEvent {
	args := m.Called(ctx, filter)
	return args.Get(0).([]event.PopupCityEvent)
}

func (m *MockEventLister) Paging(filter eventapp.ListEventsFilter) (int, int) {
	args := m.Called(filter)
	return args.Int(0), args.Int(1)
}

func TestEventHandler_ListEvents(t *testing.T) {
	svc := new(MockEventLister)
	h := NewEventHandler(svc)

	events := []event.DisplayEvent{{
		Source:       event.EventSourceLuma,
		Date:         "2025-02-15",
		Time:         "6:30 PM – 8:00 PM",
		Title:        "Builders Meetup",
		Location:     "Network School",
		Country:      "Malaysia",
		NetworkState: "Network School",
		Type:         "Meetup",
		URL:          "https://lu.ma/builders",
	}}

	matchFilter := mock.MatchedBy(func(f eventapp.ListEventsFilter) bool {
		return f.Source == "luma" &&
			f.Tag == "meetup" &&
			f.From != nil && f.From.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To != nil && f.To.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.Timezone == "Asia/Singapore" &&
			f.Page == 2 && f.PageSize == 10 && f.OrderDir == "desc"
	})
	svc.On("ListEvents", mock.Anything, matchFilter).Return(events, int64(25))
	svc.On("Paging", matchFilter).Return(2, 10)

	c, w := newTestContext(http.MethodGet,
		"/api/v1/events?source=luma&tag=meetup&from=2025-02-01&to=2025-03-01&tz=Asia/Singapore&page=2&page_size=10&order_dir=desc")

	h.ListEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(25), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.PageSize)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	data := resp.Data.([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, "Builders Meetup", first["title"])
	assert.Equal(t, "Network School", first["network_state"])
	assert.Equal(t, "6:30 PM – 8:00 PM", first["time"])
	svc.AssertExpectations(t)
}

func TestEventHandler_ListEvents_EmptyIsArray(t *testing.T) {
	svc := new(MockEventLister)
	h := NewEventHandler(svc)

	svc.On("ListEvents", mock.Anything, mock.Anything).Return([]event.DisplayEvent{}, int64(0))
	svc.On("Paging", mock.Anything).Return(1, 50)

	c, w := newTestContext(http.MethodGet, "/api/v1/events")
	h.ListEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestEventHandler_ListEvents_InvalidQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"unknown source", "source=meetup", dto.ErrCodeValidation},
		{"unknown timezone", "tz=Mars/Olympus", dto.ErrCodeValidation},
		{"malformed date", "from=2025-13-40", dto.ErrCodeValidation},
		{"page size too large", "page_size=500", dto.ErrCodeValidation},
		{"page too large", "page=100001", dto.ErrCodeValidation},
		{"page overflows int", "page=9223372036854775807", dto.ErrCodeValidation},
		{"bad order", "order_dir=sideways", dto.ErrCodeValidation},
		{"to before from", "from=2025-03-01&to=2025-02-01", dto.ErrCodeInvalidInput},
		{"empty range", "from=2025-03-01&to=2025-03-01", dto.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockEventLister)
			h := NewEventHandler(svc)

			c, w := newTestContext(http.MethodGet, "/api/v1/events?"+tt.query)
			h.ListEvents(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			svc.AssertNotCalled(t, "ListEvents", mock.Anything, mock.Anything)
		})
	}
}

func TestEventHandler_ListPopupCities(t *testing.T) {
	svc := new(MockEventLister)
	h := NewEventHandler(svc)

	cities := []event.PopupCityEvent{{
		StartDate:    "2025-05-01",
		EndDate:      "2025-06-30",
		Title:        "Edge Esmeralda",
		Location:     "Healdsburg",
		Country:      "United States",
		NetworkState: "Edge City",
		Type:         "Pop-Up",
	}}
	svc.On("ListPopupCities", mock.Anything, eventapp.PopupCityFilter{Timezone: "America/Los_Angeles"}).Return(cities)

	c, w := newTestContext(http.MethodGet, "/api/v1/events/popup-cities?tz=America/Los_Angeles")
	h.ListPopupCities(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Meta)
	data := resp.Data.([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "2025-06-30", data[0].(map[string]any)["end_date"])
	svc.AssertExpectations(t)
}

func TestEventHandler_ListPopupCities_InvalidTimezone(t *testing.T) {
	svc := new(MockEventLister)
	h := NewEventHandler(svc)

	c, w := newTestContext(http.MethodGet, "/api/v1/events/popup-cities?tz=Not/AZone")
	h.ListPopupCities(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListPopupCities", mock.Anything, mock.Anything)
}
