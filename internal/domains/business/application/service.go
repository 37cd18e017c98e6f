package application

import (
	"context"
	"errors"

	"github.com/sustentabag/business-dashboard/internal/domains/business/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/business/ports"
)

// Service orchestrates the merchant profile use cases.
type Service struct {
	backend ports.Backend
}

func NewService(backend ports.Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) Get(ctx context.Context) (*domain.Business, error) {
	return s.backend.Get(ctx)
}

func (s *Service) Update(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	if business == nil {
		return nil, errors.New("business is nil")
	}
	if err := business.Validate(); err != nil {
		return nil, err
	}
	return s.backend.Update(ctx, business)
}

var _ ports.Service = (*Service)(nil)
