package event

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/lib/pq"
	"github.com/nsnodes/backend/internal/domain/event"
	"github.com/nsnodes/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// MockEventRepository is a mock implementation of event.Repository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Find(ctx context.Context, q event.Query) ([]event.RawEvent, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.RawEvent), args.Error(1)
}

func (m *MockEventRepository) Count(ctx context.Context, q event.Query) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

// MockSocietyNames is a mock implementation of SocietyNames
type MockSocietyNames struct {
	mock.Mock
}

func (m *MockSocietyNames) Names(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var canonicalNames = []string{"Cabin", "Edge City", "Network School", "Próspera"}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func strPtr(s string) *string { return &s }

func rawEvent(t *testing.T, title, start, end, organizers string) event.RawEvent {
	raw := event.RawEvent{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		StartAt:    mustTime(t, start),
		EndAt:      mustTime(t, end),
		City:       strPtr("Forest City"),
		Country:    strPtr("Malaysia"),
		Source:     event.EventSourceLuma,
		SourceURL:  "https://lu.ma/" + title,
	}
	if organizers != "" {
		raw.Organizers = json.RawMessage(organizers)
	}
	return raw
}

func newObservedService(repo event.Repository, names SocietyNames, opts Options) (*EventService, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewEventService(repo, names, opts, zap.New(core)), logs
}

func TestNewEventService_Defaults(t *testing.T) {
	svc := NewEventService(new(MockEventRepository), nil, Options{}, nil)

	assert.Equal(t, 50, svc.opts.DefaultPageSize)
	assert.Equal(t, 50, svc.opts.MaxPageSize)
	assert.Equal(t, event.PopupCityTag, svc.opts.PopupCityTag)
	assert.Equal(t, time.UTC, svc.opts.DefaultLocation)
	assert.NotNil(t, svc.logger)
}

func TestEventService_Paging(t *testing.T) {
	svc := NewEventService(new(MockEventRepository), nil, Options{DefaultPageSize: 20, MaxPageSize: 100}, nil)

	tests := []struct {
		filter       ListEventsFilter
		wantPage     int
		wantPageSize int
	}{
		{ListEventsFilter{}, 1, 20},
		{ListEventsFilter{Page: 3, PageSize: 10}, 3, 10},
		{ListEventsFilter{Page: -1, PageSize: 500}, 1, 100},
		{ListEventsFilter{Page: math.MaxInt, PageSize: 100}, MaxPage, 100},
	}
	for _, tt := range tests {
		page, size := svc.Paging(tt.filter)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantPageSize, size)
	}
}

func TestEventService_ListEvents(t *testing.T) {
	repo := new(MockEventRepository)
	svc, _ := newObservedService(repo, nil, DefaultOptions())

	from := mustTime(t, "2025-02-01T00:00:00Z")
	to := mustTime(t, "2025-03-01T00:00:00Z")
	expectedQuery := event.Query{
		Tags:        []string{"ai"},
		Source:      event.EventSourceLuma,
		StartFrom:   &from,
		StartBefore: &to,
		OrderDir:    event.SortDesc,
		Limit:       10,
		Offset:      10,
	}
	raws := []event.RawEvent{
		rawEvent(t, "Demo Day Showcase", "2025-02-20T10:00:00Z", "2025-02-20T12:00:00Z", `[{"name":"Network School"}]`),
		rawEvent(t, "Morning Yoga Flow", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", ""),
	}
	repo.On("Find", mock.Anything, expectedQuery).Return(raws, nil)
	repo.On("Count", mock.Anything, expectedQuery).Return(int64(12), nil)

	events, total := svc.ListEvents(context.Background(), ListEventsFilter{
		Source:   "luma",
		Tag:      "ai",
		From:     &from,
		To:       &to,
		Page:     2,
		PageSize: 10,
		OrderDir: "desc",
	})

	assert.Equal(t, int64(12), total)
	require.Len(t, events, 2)
	assert.Equal(t, raws[0].ID, events[0].ID)
	assert.Equal(t, "Demo Day", events[0].Type)
	assert.Equal(t, "Network School", events[0].NetworkState)
	assert.Equal(t, "Meditation", events[1].Type)
	assert.Equal(t, event.UnknownLabel, events[1].NetworkState)
	assert.Equal(t, "2025-02-15", events[1].Date)
	assert.Equal(t, "6:30 PM – 8:00 PM", events[1].Time)
	repo.AssertExpectations(t)
}

func TestEventService_ListEvents_DefaultQuery(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewEventService(repo, nil, DefaultOptions(), nil)

	expectedQuery := event.Query{OrderDir: event.SortAsc, Limit: 50, Offset: 0}
	repo.On("Find", mock.Anything, expectedQuery).Return([]event.RawEvent{}, nil)
	repo.On("Count", mock.Anything, expectedQuery).Return(int64(0), nil)

	events, total := svc.ListEvents(context.Background(), ListEventsFilter{})

	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.Zero(t, total)
	repo.AssertExpectations(t)
}

func TestEventService_ListEvents_ViewerTimezone(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewEventService(repo, nil, DefaultOptions(), nil)

	raws := []event.RawEvent{
		rawEvent(t, "Morning Yoga Flow", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", ""),
	}
	repo.On("Find", mock.Anything, mock.Anything).Return(raws, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	events, _ := svc.ListEvents(context.Background(), ListEventsFilter{Timezone: "Asia/Singapore"})

	require.Len(t, events, 1)
	assert.Equal(t, "2025-02-16", events[0].Date)
	assert.Equal(t, "2:30 AM – 4:00 AM", events[0].Time)
}

func TestEventService_ListEvents_UnknownTimezoneFallsBack(t *testing.T) {
	repo := new(MockEventRepository)
	svc, logs := newObservedService(repo, nil, DefaultOptions())

	raws := []event.RawEvent{
		rawEvent(t, "Morning Yoga Flow", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", ""),
	}
	repo.On("Find", mock.Anything, mock.Anything).Return(raws, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	events, _ := svc.ListEvents(context.Background(), ListEventsFilter{Timezone: "Mars/Olympus"})

	require.Len(t, events, 1)
	assert.Equal(t, "2025-02-15", events[0].Date)
	assert.Equal(t, 1, logs.FilterMessage("Unknown timezone, using default").Len())
}

func TestEventService_ListEvents_FindErrorDegradesToEmpty(t *testing.T) {
	repo := new(MockEventRepository)
	svc, logs := newObservedService(repo, nil, DefaultOptions())

	repo.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	events, total := svc.ListEvents(context.Background(), ListEventsFilter{})

	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.Zero(t, total)
	entries := logs.FilterMessage("Failed to fetch events").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	repo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestEventService_ListEvents_CountErrorKeepsEvents(t *testing.T) {
	repo := new(MockEventRepository)
	svc, logs := newObservedService(repo, nil, DefaultOptions())

	raws := []event.RawEvent{
		rawEvent(t, "Meetup", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", ""),
	}
	repo.On("Find", mock.Anything, mock.Anything).Return(raws, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), errors.New("timeout"))

	events, total := svc.ListEvents(context.Background(), ListEventsFilter{Page: 3, PageSize: 5})

	assert.Len(t, events, 1)
	assert.Equal(t, int64(11), total)
	assert.Equal(t, 1, logs.FilterMessage("Failed to count events").Len())
}

func TestEventService_ListEvents_ReconcilesNetworkState(t *testing.T) {
	repo := new(MockEventRepository)
	names := new(MockSocietyNames)
	svc := NewEventService(repo, names, DefaultOptions(), nil)

	raws := []event.RawEvent{
		rawEvent(t, "A", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `[{"name":"The Network School"}]`),
		rawEvent(t, "B", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `["Edge Esmeralda"]`),
		rawEvent(t, "C", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `"Host Collective"`),
		rawEvent(t, "D", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", ""),
		rawEvent(t, "E", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `[{"name":"The Network School"}]`),
	}
	repo.On("Find", mock.Anything, mock.Anything).Return(raws, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(5), nil)
	names.On("Names", mock.Anything).Return(canonicalNames, nil).Once()

	events, _ := svc.ListEvents(context.Background(), ListEventsFilter{})

	require.Len(t, events, 5)
	assert.Equal(t, "Network School", events[0].NetworkState)
	assert.Equal(t, "Edge City", events[1].NetworkState)
	assert.Equal(t, "Host Collective", events[2].NetworkState)
	assert.Equal(t, event.UnknownLabel, events[3].NetworkState)
	assert.Equal(t, "Network School", events[4].NetworkState)
	names.AssertExpectations(t)
}

func TestEventService_ListEvents_HugePageKeepsOffsetPositive(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewEventService(repo, nil, DefaultOptions(), nil)

	repo.On("Find", mock.Anything, mock.MatchedBy(func(q event.Query) bool {
		return q.Offset == (MaxPage-1)*200 && q.Limit == 200
	})).Return([]event.RawEvent{}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	events, total := svc.ListEvents(context.Background(), ListEventsFilter{Page: math.MaxInt, PageSize: 200})

	assert.Empty(t, events)
	assert.Zero(t, total)
	repo.AssertExpectations(t)
}

func TestEventService_ListEvents_UnknownSourceSkipsStore(t *testing.T) {
	repo := new(MockEventRepository)
	svc, logs := newObservedService(repo, nil, DefaultOptions())

	events, total := svc.ListEvents(context.Background(), ListEventsFilter{Source: "meetup"})

	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.Zero(t, total)
	assert.Equal(t, 1, logs.FilterMessage("Unknown event source, returning no events").Len())
	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestEventService_ListEvents_ReconcilesOnlyExactNames(t *testing.T) {
	repo := new(MockEventRepository)
	names := new(MockSocietyNames)
	svc := NewEventService(repo, names, DefaultOptions(), nil)

	raws := []event.RawEvent{
		rawEvent(t, "A", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `[{"name":"Knowledge Hub"}]`),
		rawEvent(t, "B", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `[{"name":"Edge City Patagonia"}]`),
		rawEvent(t, "C", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `["ns"]`),
		rawEvent(t, "D", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `["cabin dao"]`),
	}
	repo.On("Find", mock.Anything, mock.Anything).Return(raws, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(4), nil)
	names.On("Names", mock.Anything).Return([]string{"Cabin", "Edge City", "Network School", "Praxis"}, nil)

	events, _ := svc.ListEvents(context.Background(), ListEventsFilter{})

	require.Len(t, events, 4)
	assert.Equal(t, "Knowledge Hub", events[0].NetworkState)
	assert.Equal(t, "Edge City Patagonia", events[1].NetworkState)
	assert.Equal(t, "ns", events[2].NetworkState)
	assert.Equal(t, "Cabin", events[3].NetworkState)
}

func TestEventService_ListEvents_NamesErrorSkipsReconciliation(t *testing.T) {
	repo := new(MockEventRepository)
	names := new(MockSocietyNames)
	svc, logs := newObservedService(repo, names, DefaultOptions())

	raws := []event.RawEvent{
		rawEvent(t, "A", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `[{"name":"The Network School"}]`),
	}
	repo.On("Find", mock.Anything, mock.Anything).Return(raws, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	names.On("Names", mock.Anything).Return(nil, errors.New("db down"))

	events, _ := svc.ListEvents(context.Background(), ListEventsFilter{})

	require.Len(t, events, 1)
	assert.Equal(t, "The Network School", events[0].NetworkState)
	assert.Equal(t, 1, logs.FilterMessage("Society names unavailable, skipping reconciliation").Len())
}

func TestEventService_ListEvents_ReconciliationDisabled(t *testing.T) {
	repo := new(MockEventRepository)
	names := new(MockSocietyNames)
	opts := DefaultOptions()
	opts.ReconcileNetworkState = false
	svc := NewEventService(repo, names, opts, nil)

	raws := []event.RawEvent{
		rawEvent(t, "A", "2025-02-15T18:30:00Z", "2025-02-15T20:00:00Z", `[{"name":"The Network School"}]`),
	}
	repo.On("Find", mock.Anything, mock.Anything).Return(raws, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	events, _ := svc.ListEvents(context.Background(), ListEventsFilter{})

	require.Len(t, events, 1)
	assert.Equal(t, "The Network School", events[0].NetworkState)
	names.AssertNotCalled(t, "Names", mock.Anything)
}

func TestEventService_ListPopupCities(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewEventService(repo, nil, DefaultOptions(), nil)
	now := mustTime(t, "2025-05-01T12:00:00Z")
	svc.now = func() time.Time { return now }

	expectedQuery := event.Query{
		Tags:      []string{event.PopupCityTag},
		EndsAfter: &now,
		OrderDir:  event.SortAsc,
	}
	city := rawEvent(t, "Edge Esmeralda 2025", "2025-05-24T16:00:00Z", "2025-06-21T16:00:00Z", `[{"name":"Edge City"}]`)
	city.Tags = pq.StringArray{event.PopupCityTag}
	repo.On("Find", mock.Anything, expectedQuery).Return([]event.RawEvent{city}, nil)

	cities := svc.ListPopupCities(context.Background(), PopupCityFilter{})

	require.Len(t, cities, 1)
	assert.Equal(t, city.ID, cities[0].ID)
	assert.Equal(t, "2025-05-24", cities[0].StartDate)
	assert.Equal(t, "2025-06-21", cities[0].EndDate)
	assert.Equal(t, "Edge City", cities[0].NetworkState)
	assert.Equal(t, "Forest City", cities[0].Location)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}

func TestEventService_ListPopupCities_DropsRowsOutsideWindow(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewEventService(repo, nil, DefaultOptions(), nil)
	now := mustTime(t, "2025-05-01T12:00:00Z")
	svc.now = func() time.Time { return now }

	running := rawEvent(t, "Vitalia", "2025-04-01T00:00:00Z", "2025-06-01T00:00:00Z", "")
	running.Tags = pq.StringArray{event.PopupCityTag}
	ended := rawEvent(t, "Zuzalu", "2025-03-01T00:00:00Z", "2025-04-01T00:00:00Z", "")
	ended.Tags = pq.StringArray{event.PopupCityTag}
	untagged := rawEvent(t, "Meetup", "2025-05-02T00:00:00Z", "2025-05-02T02:00:00Z", "")
	repo.On("Find", mock.Anything, mock.Anything).Return([]event.RawEvent{running, ended, untagged}, nil)

	cities := svc.ListPopupCities(context.Background(), PopupCityFilter{})

	require.Len(t, cities, 1)
	assert.Equal(t, "Vitalia", cities[0].Title)
}

func TestEventService_ListPopupCities_CustomTagAndTimezone(t *testing.T) {
	repo := new(MockEventRepository)
	opts := DefaultOptions()
	opts.PopupCityTag = "popup"
	svc := NewEventService(repo, nil, opts, nil)
	svc.now = func() time.Time { return mustTime(t, "2025-05-01T00:00:00Z") }

	city := rawEvent(t, "Zuzalu", "2025-05-24T20:00:00Z", "2025-06-21T20:00:00Z", "")
	city.Tags = pq.StringArray{"popup"}
	repo.On("Find", mock.Anything, mock.MatchedBy(func(q event.Query) bool {
		return len(q.Tags) == 1 && q.Tags[0] == "popup" && q.EndsAfter != nil
	})).Return([]event.RawEvent{city}, nil)

	cities := svc.ListPopupCities(context.Background(), PopupCityFilter{Timezone: "Asia/Singapore"})

	require.Len(t, cities, 1)
	assert.Equal(t, "2025-05-25", cities[0].StartDate)
	assert.Equal(t, "2025-06-22", cities[0].EndDate)
}

func TestEventService_ListPopupCities_ErrorDegradesToEmpty(t *testing.T) {
	repo := new(MockEventRepository)
	svc, logs := newObservedService(repo, nil, DefaultOptions())

	repo.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	cities := svc.ListPopupCities(context.Background(), PopupCityFilter{})

	assert.NotNil(t, cities)
	assert.Empty(t, cities)
	assert.Equal(t, 1, logs.FilterMessage("Failed to fetch popup cities").Len())
}

func TestEventService_ResolveNetworkState(t *testing.T) {
	names := new(MockSocietyNames)
	names.On("Names", mock.Anything).Return(canonicalNames, nil)
	svc := NewEventService(new(MockEventRepository), names, DefaultOptions(), nil)

	tests := []struct {
		organizers     string
		wantLabel      string
		wantState      string
		wantReconciled bool
	}{
		{`[{"name":"Host"},{"name":"The Network School"}]`, "The Network School", "Network School", true},
		{`[{"name":"Network School"}]`, "Network School", "Network School", false},
		{"not json {", "not json {", "not json {", false},
		{"", event.UnknownLabel, event.UnknownLabel, false},
		{"[]", event.UnknownLabel, event.UnknownLabel, false},
		{`[{"name":"Knowledge Hub"}]`, "Knowledge Hub", "Knowledge Hub", false},
		{`"[{\"name\":\"Edge City\"}]"`, "Edge City", "Edge City", false},
	}

	for _, tt := range tests {
		t.Run(tt.organizers, func(t *testing.T) {
			got := svc.ResolveNetworkState(context.Background(), ResolveRequest{Organizers: tt.organizers})
			assert.Equal(t, tt.organizers, got.Organizers)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantState, got.NetworkState)
			assert.Equal(t, tt.wantReconciled, got.Reconciled)
		})
	}
}

func TestListEventsFilter_Validate(t *testing.T) {
	from := mustTime(t, "2025-02-01T00:00:00Z")
	to := mustTime(t, "2025-03-01T00:00:00Z")

	assert.NoError(t, ListEventsFilter{}.Validate())
	assert.NoError(t, ListEventsFilter{From: &from}.Validate())
	assert.NoError(t, ListEventsFilter{From: &from, To: &to}.Validate())

	err := ListEventsFilter{From: &to, To: &from}.Validate()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)

	assert.Error(t, ListEventsFilter{From: &from, To: &from}.Validate())
}
