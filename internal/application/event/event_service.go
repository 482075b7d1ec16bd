// Package event serves normalized event and popup city listings built from
// the raw event store.
package event

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/nsnodes/backend/internal/domain/event"
	"github.com/nsnodes/backend/internal/domain/society"
	"github.com/nsnodes/backend/internal/infrastructure/logger"
	"github.com/nsnodes/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SocietyNames supplies the canonical society names used to reconcile
// resolved network state labels
type SocietyNames interface {
	Names(ctx context.Context) ([]string, error)
}

// Options tunes listing behaviour
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	PopupCityTag    string
	// DefaultLocation is used when a request names no timezone
	DefaultLocation *time.Location
	// ReconcileNetworkState replaces resolved labels with the matching canonical society name
	ReconcileNetworkState bool
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		DefaultPageSize:       50,
		MaxPageSize:           200,
		PopupCityTag:          event.PopupCityTag,
		DefaultLocation:       time.UTC,
		ReconcileNetworkState: true,
	}
}

// EventService builds display listings. Store failures never reach the
// caller: they are logged and the listing degrades to empty.
type EventService struct {
	repo      event.Repository
	societies SocietyNames
	logger    *zap.Logger
	opts      Options
	now       func() time.Time
}

// NewEventService creates a new EventService. societies may be nil, which
// disables reconciliation.
func NewEventService(repo event.Repository, societies SocietyNames, opts Options, log *zap.Logger) *EventService {
	defaults := DefaultOptions()
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = defaults.DefaultPageSize
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	if strings.TrimSpace(opts.PopupCityTag) == "" {
		opts.PopupCityTag = defaults.PopupCityTag
	}
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EventService{
		repo:      repo,
		societies: societies,
		logger:    log,
		opts:      opts,
		now:       time.Now,
	}
}

// MaxPage is the highest page a listing serves; larger pages are clamped
const MaxPage = 100000

// Paging returns the effective page and page size for filter
func (s *EventService) Paging(filter ListEventsFilter) (page, pageSize int) {
	page = min(filter.Page, MaxPage)
	if page <= 0 {
		page = 1
	}
	pageSize = filter.PageSize
	if pageSize <= 0 {
		pageSize = s.opts.DefaultPageSize
	}
	if pageSize > s.opts.MaxPageSize {
		pageSize = s.opts.MaxPageSize
	}
	return page, pageSize
}

// ListEvents returns one page of display events and the total number of
// matching rows. The result is empty, never nil, when the store fails.
func (s *EventService) ListEvents(ctx context.Context, filter ListEventsFilter) ([]event.DisplayEvent, int64) {
	ctx, span := telemetry.StartServiceSpan(ctx, "event_service", "list_events")
	defer span.End()

	log := logger.WithLogger(ctx, s.logger)
	if filter.Source != "" && !event.EventSource(filter.Source).IsValid() {
		log.Warn("Unknown event source, returning no events", zap.String("source", filter.Source))
		return []event.DisplayEvent{}, 0
	}
	loc := s.location(ctx, filter.Timezone)
	page, pageSize := s.Paging(filter)

	q := event.Query{
		Source:      event.EventSource(filter.Source),
		StartFrom:   filter.From,
		StartBefore: filter.To,
		OrderDir:    event.SortAsc,
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	}
	if filter.Tag != "" {
		q.Tags = []string{filter.Tag}
	}
	if filter.OrderDir == string(event.SortDesc) {
		q.OrderDir = event.SortDesc
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrSource, filter.Source,
		telemetry.SpanAttrTag, filter.Tag,
		telemetry.SpanAttrTimezone, loc.String(),
	)

	raws, err := s.repo.Find(ctx, q)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Failed to fetch events", zap.Error(err))
		return []event.DisplayEvent{}, 0
	}

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		log.Warn("Failed to count events", zap.Error(err))
		total = int64(q.Offset + len(raws))
	}

	events := event.ToDisplayEvents(raws, loc)
	if label := s.reconciler(ctx); label != nil {
		for i := range events {
			events[i].NetworkState = label(events[i].NetworkState)
		}
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrResultCount, len(events),
		telemetry.SpanAttrTotal, total,
	)
	return events, total
}

// ListPopupCities returns every popup city that has not ended yet, in start
// order. The result is empty, never nil, when the store fails.
func (s *EventService) ListPopupCities(ctx context.Context, filter PopupCityFilter) []event.PopupCityEvent {
	ctx, span := telemetry.StartServiceSpan(ctx, "event_service", "list_popup_cities")
	defer span.End()

	log := logger.WithLogger(ctx, s.logger)
	loc := s.location(ctx, filter.Timezone)
	now := s.now().UTC()

	raws, err := s.repo.Find(ctx, event.Query{
		Tags:      []string{s.opts.PopupCityTag},
		EndsAfter: &now,
		OrderDir:  event.SortAsc,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Failed to fetch popup cities", zap.Error(err))
		return []event.PopupCityEvent{}
	}
	raws = slices.DeleteFunc(raws, func(raw event.RawEvent) bool {
		return !event.IsOngoingPopupCity(raw, s.opts.PopupCityTag, now)
	})

	cities := event.ToPopupCityEvents(raws, loc)
	if label := s.reconciler(ctx); label != nil {
		for i := range cities {
			cities[i].NetworkState = label(cities[i].NetworkState)
		}
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrResultCount, len(cities))
	return cities
}

// ResolveNetworkState resolves a raw organizers value the same way listings do
func (s *EventService) ResolveNetworkState(ctx context.Context, req ResolveRequest) NetworkStateResolution {
	label := event.ResolveNetworkState(req.Organizers)
	resolution := NetworkStateResolution{
		Organizers:   req.Organizers,
		Label:        label,
		NetworkState: label,
	}
	if reconcile := s.reconciler(ctx); reconcile != nil {
		resolution.NetworkState = reconcile(label)
		resolution.Reconciled = resolution.NetworkState != label
	}
	return resolution
}

// location resolves tz, falling back to the default on an empty or unknown name
func (s *EventService) location(ctx context.Context, tz string) *time.Location {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return s.opts.DefaultLocation
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("Unknown timezone, using default",
			zap.String("timezone", tz),
			zap.String("default", s.opts.DefaultLocation.String()),
		)
		return s.opts.DefaultLocation
	}
	return loc
}

// reconciler returns a label mapper backed by the canonical society names,
// or nil when reconciliation is off or the names are unavailable. Labels are
// replaced only on an exact normalized match; fuzzy matching is left to
// SocietyService.Match.
func (s *EventService) reconciler(ctx context.Context) func(string) string {
	if !s.opts.ReconcileNetworkState || s.societies == nil {
		return nil
	}

	names, err := s.societies.Names(ctx)
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("Society names unavailable, skipping reconciliation", zap.Error(err))
		return nil
	}
	if len(names) == 0 {
		return nil
	}

	memo := make(map[string]string)
	return func(label string) string {
		if label == event.UnknownLabel {
			return label
		}
		if canonical, ok := memo[label]; ok {
			return canonical
		}
		canonical := label
		if name, ok := society.FindExactSociety(label, names); ok {
			canonical = name
		}
		memo[label] = canonical
		return canonical
	}
}
