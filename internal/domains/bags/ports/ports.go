package ports

import (
	"context"
	"errors"

	"github.com/sustentabag/business-dashboard/internal/domains/bags/domain"
)

var ErrNotFound = errors.New("bag not found")

// Backend is the outbound port to the marketplace bag endpoints, bound to one
// business session.
type Backend interface {
	Create(ctx context.Context, bag *domain.Bag) (*domain.Bag, error)
	List(ctx context.Context) ([]domain.Bag, error)
	Update(ctx context.Context, id int64, bag *domain.Bag) (*domain.Bag, error)
	Delete(ctx context.Context, id int64) error
}

// Service exposes the bag listing use cases.
type Service interface {
	Create(ctx context.Context, bag *domain.Bag) (*domain.Bag, error)
	List(ctx context.Context) ([]domain.Bag, error)
	Update(ctx context.Context, id int64, bag *domain.Bag) (*domain.Bag, error)
	Delete(ctx context.Context, id int64) error
}
