package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sustentabag/business-dashboard/internal/domains/business/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/business/ports"
)

type fakeBusinessBackend struct {
	profile     *domain.Business
	updateCalls int
}

func (f *fakeBusinessBackend) Get(context.Context) (*domain.Business, error) {
	clone := *f.profile
	return &clone, nil
}

func (f *fakeBusinessBackend) Update(_ context.Context, business *domain.Business) (*domain.Business, error) {
	f.updateCalls++
	clone := *business
	return &clone, nil
}

var _ ports.Backend = (*fakeBusinessBackend)(nil)

func sampleProfile() *domain.Business {
	return &domain.Business{
		ID:          42,
		LegalName:   "Padaria Boa Ltda",
		CNPJ:        "12345678000190",
		AppName:     "Padaria Boa",
		Delivery:    true,
		DeliveryTax: decimal.RequireFromString("5.00"),
	}
}

func TestGetBusiness(t *testing.T) {
	svc := NewService(&fakeBusinessBackend{profile: sampleProfile()})

	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Padaria Boa Ltda", profile.LegalName)
}

func TestUpdateBusiness_ValidatesBeforeBackend(t *testing.T) {
	backend := &fakeBusinessBackend{profile: sampleProfile()}
	svc := NewService(backend)

	blank := sampleProfile()
	blank.LegalName = " "
	_, err := svc.Update(context.Background(), blank)
	require.ErrorIs(t, err, domain.ErrEmptyLegalName)

	negative := sampleProfile()
	negative.DeliveryTax = decimal.RequireFromString("-2")
	_, err = svc.Update(context.Background(), negative)
	require.ErrorIs(t, err, domain.ErrNegativeTax)

	require.Equal(t, 0, backend.updateCalls)

	updated, err := svc.Update(context.Background(), sampleProfile())
	require.NoError(t, err)
	require.Equal(t, 1, backend.updateCalls)
	require.Equal(t, "Padaria Boa", updated.AppName)
}
