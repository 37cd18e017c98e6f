package application

import (
	"context"
	"time"

	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
)

// DefaultPageSize matches the dashboard's order grid.
const DefaultPageSize = 8

// Service is the presentation controller for the order page: it refreshes the
// session's repository, applies the search/date/status filters and slices the
// result into pages.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceClock overrides "today" for the calendar date filters.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wraps a session's repository.
func NewService(repo ports.Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List refreshes the cache and returns one filtered, paginated slice of it.
// An empty filtered set is a valid page with TotalMatched zero, which the
// dashboard renders as an explicit "no results" state rather than an error.
func (s *Service) List(ctx context.Context, query ports.ListQuery) (*ports.Page, error) {
	orders, err := s.repo.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	filter := domain.Filter{Tab: query.Tab, Search: query.Search, DateRange: query.DateRange}
	filtered := filter.Apply(orders, s.now())

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := domain.PageCount(len(filtered), pageSize)
	page := query.Page
	if page <= 0 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	return &ports.Page{
		Orders:       domain.Paginate(filtered, pageSize, page),
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		TotalMatched: len(filtered),
		Statistics:   s.repo.Statistics(),
	}, nil
}

// Get reads one order from the cache.
func (s *Service) Get(_ context.Context, id string) (*domain.Order, error) {
	return s.repo.ByID(id)
}

// UpdateStatus delegates to the repository's guarded mutation.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	return s.repo.UpdateStatus(ctx, id, status)
}

// Statistics returns the aggregates derived at the last cache change.
func (s *Service) Statistics(_ context.Context) (domain.Statistics, error) {
	return s.repo.Statistics(), nil
}

var _ ports.Service = (*Service)(nil)
