// Package society serves the canonical society directory and reconciles
// free-form organizer names against it.
package society

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nsnodes/backend/internal/domain/shared"
	"github.com/nsnodes/backend/internal/domain/society"
	"github.com/nsnodes/backend/internal/infrastructure/logger"
	"github.com/nsnodes/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// NameCache stores the canonical society name list between requests
type NameCache interface {
	Get(ctx context.Context) ([]string, bool, error)
	Set(ctx context.Context, names []string) error
	Invalidate(ctx context.Context) error
}

// SocietyService handles society read operations. Store failures in List
// and Match are logged and degrade to an empty or unmatched result.
type SocietyService struct {
	repo            society.Repository
	names           NameCache
	logger          *zap.Logger
	defaultPageSize int
	maxPageSize     int
}

// SocietyServiceOption configures a SocietyService
type SocietyServiceOption func(*SocietyService)

// WithLogger sets the fallback logger used when the context carries none
func WithLogger(log *zap.Logger) SocietyServiceOption {
	return func(s *SocietyService) {
		if log != nil {
			s.logger = log
		}
	}
}

// NewSocietyService creates a new SocietyService. names may be nil, in which
// case every name lookup reads the store.
func NewSocietyService(repo society.Repository, names NameCache, defaultPageSize, maxPageSize int, opts ...SocietyServiceOption) *SocietyService {
	if defaultPageSize <= 0 {
		defaultPageSize = 50
	}
	if maxPageSize < defaultPageSize {
		maxPageSize = defaultPageSize
	}
	s := &SocietyService{
		repo:            repo,
		names:           names,
		logger:          zap.NewNop(),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List retrieves societies with filtering and pagination. The result is
// empty, never nil, when the store fails.
func (s *SocietyService) List(ctx context.Context, filter SocietyListFilter) ([]SocietyResponse, int64) {
	ctx, span := telemetry.StartServiceSpan(ctx, "society_service", "list")
	defer span.End()

	log := logger.WithLogger(ctx, s.logger)
	domainFilter := s.toDomainFilter(filter)

	societies, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Failed to fetch societies", zap.Error(err))
		return []SocietyResponse{}, 0
	}

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		log.Warn("Failed to count societies", zap.Error(err))
		total = int64(domainFilter.Offset() + len(societies))
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrResultCount, len(societies),
		telemetry.SpanAttrTotal, total,
	)
	return ToSocietyResponses(societies), total
}

// Get retrieves a society by ID
func (s *SocietyService) Get(ctx context.Context, id uuid.UUID) (*SocietyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "society_service", "get",
		telemetry.WithAttribute(telemetry.SpanAttrSocietyID, id))
	defer span.End()

	soc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := ToSocietyResponse(soc)
	return &response, nil
}

// Names returns the canonical name list, reading through the name cache.
// Cache failures fall back to the store.
func (s *SocietyService) Names(ctx context.Context) ([]string, error) {
	log := logger.WithLogger(ctx, s.logger)

	if s.names != nil {
		names, ok, err := s.names.Get(ctx)
		if err != nil {
			log.Warn("Society name cache read failed", zap.Error(err))
		} else if ok {
			return names, nil
		}
	}

	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("load society names: %w", err)
	}

	if s.names != nil {
		if err := s.names.Set(ctx, names); err != nil {
			log.Warn("Society name cache write failed", zap.Error(err))
		}
	}
	return names, nil
}

// InvalidateNames drops the cached name list so the next lookup reads the store
func (s *SocietyService) InvalidateNames(ctx context.Context) error {
	if s.names == nil {
		return nil
	}
	return s.names.Invalidate(ctx)
}

// Match reconciles term against the canonical society names. A miss against
// cached names is retried once against a fresh list from the store, so a
// society added since the cache was filled is still found. When no names can
// be loaded the term is reported unmatched.
func (s *SocietyService) Match(ctx context.Context, term string) (*MatchResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "society_service", "match",
		telemetry.WithAttribute(telemetry.SpanAttrMatchTerm, term))
	defer span.End()

	normalized := society.Normalize(term)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "name must not be blank")
	}

	resp := &MatchResponse{Term: term, Normalized: normalized}
	log := logger.WithLogger(ctx, s.logger)

	names, err := s.Names(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Failed to load society names", zap.Error(err))
		return resp, nil
	}

	name, ok := society.FindMatchingSociety(term, names)
	if !ok && s.names != nil {
		if err := s.InvalidateNames(ctx); err != nil {
			log.Warn("Society name cache invalidation failed", zap.Error(err))
		} else if fresh, err := s.Names(ctx); err == nil {
			name, ok = society.FindMatchingSociety(term, fresh)
		} else {
			log.Warn("Failed to reload society names", zap.Error(err))
		}
	}

	if ok {
		resp.Matched = true
		resp.Society = name
	}
	return resp, nil
}

// Paging returns the effective page and page size for filter
func (s *SocietyService) Paging(filter SocietyListFilter) (page, pageSize int) {
	f := s.toDomainFilter(filter)
	return f.Page, f.PageSize
}

func (s *SocietyService) toDomainFilter(filter SocietyListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.PageSize = s.defaultPageSize

	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if domainFilter.PageSize > s.maxPageSize {
		domainFilter.PageSize = s.maxPageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	return domainFilter
}
