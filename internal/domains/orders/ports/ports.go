package ports

import (
	"context"
	"errors"

	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Backend is the outbound port to the remote marketplace API, already bound
// to one business session (bearer token and business id).
type Backend interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.Status) error
}

// Repository is the session-scoped order cache.
type Repository interface {
	Refresh(ctx context.Context) ([]domain.Order, error)
	All() []domain.Order
	ByID(id string) (*domain.Order, error)
	ByStatus(status domain.Status) []domain.Order
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	Statistics() domain.Statistics
}

// ListQuery carries the controller's filter and pagination state.
type ListQuery struct {
	Tab       string
	Search    string
	DateRange domain.DateRange
	Page      int
	PageSize  int
}

// Page is one rendered slice of the filtered order set.
type Page struct {
	Orders       []domain.Order
	Page         int
	PageSize     int
	TotalPages   int
	TotalMatched int
	Statistics   domain.Statistics
}

// Service exposes order use cases to adapters.
type Service interface {
	List(ctx context.Context, query ListQuery) (*Page, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
}
