package application

import (
	"context"
	"errors"

	"github.com/sustentabag/business-dashboard/internal/domains/bags/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/bags/ports"
)

// Service orchestrates the bag listing use cases: validate locally, then let
// the marketplace backend own the data.
type Service struct {
	backend ports.Backend
}

func NewService(backend ports.Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) Create(ctx context.Context, bag *domain.Bag) (*domain.Bag, error) {
	if bag == nil {
		return nil, errors.New("bag is nil")
	}
	if err := bag.Validate(); err != nil {
		return nil, err
	}
	return s.backend.Create(ctx, bag)
}

func (s *Service) List(ctx context.Context) ([]domain.Bag, error) {
	return s.backend.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, bag *domain.Bag) (*domain.Bag, error) {
	if bag == nil {
		return nil, errors.New("bag is nil")
	}
	if err := bag.Validate(); err != nil {
		return nil, err
	}
	return s.backend.Update(ctx, id, bag)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.backend.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
