package ports

import (
	"context"
	"errors"

	"github.com/sustentabag/business-dashboard/internal/domains/business/domain"
)

var ErrNotFound = errors.New("business not found")

// Backend is the outbound port to the marketplace business endpoints, bound
// to one session.
type Backend interface {
	Get(ctx context.Context) (*domain.Business, error)
	Update(ctx context.Context, business *domain.Business) (*domain.Business, error)
}

// Service exposes the profile use cases.
type Service interface {
	Get(ctx context.Context) (*domain.Business, error)
	Update(ctx context.Context, business *domain.Business) (*domain.Business, error)
}
