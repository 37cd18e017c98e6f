// Package sustentabag adapts the marketplace HTTP client to the business
// profile backend port, bound to one session.
package sustentabag

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/business/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/business/ports"
)

// Backend proxies the profile endpoints for one session.
type Backend struct {
	client     *client.Client
	token      string
	businessID int64
}

// NewBackend binds the shared client to a session's credentials.
func NewBackend(c *client.Client, token string, businessID int64) *Backend {
	return &Backend{client: c, token: token, businessID: businessID}
}

func (b *Backend) Get(ctx context.Context) (*domain.Business, error) {
	record, err := b.client.GetBusiness(ctx, b.token, b.businessID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return fromRecord(record), nil
}

func (b *Backend) Update(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	record, err := b.client.UpdateBusiness(ctx, b.token, b.businessID, toPayload(business))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return fromRecord(record), nil
}

func mapNotFound(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return ports.ErrNotFound
	}
	return err
}

func toPayload(business *domain.Business) client.BusinessPayload {
	tax, _ := business.DeliveryTax.Round(2).Float64()
	return client.BusinessPayload{
		LegalName:    business.LegalName,
		CNPJ:         business.CNPJ,
		AppName:      business.AppName,
		Cellphone:    business.Cellphone,
		Description:  business.Description,
		Delivery:     business.Delivery,
		DeliveryTax:  tax,
		DeliveryTime: business.DeliveryTime,
		OpeningHours: business.OpeningHours,
		IDAddress:    business.AddressID,
	}
}

func fromRecord(record *client.BusinessRecord) *domain.Business {
	id, _ := strconv.ParseInt(record.ID.String(), 10, 64)
	business := &domain.Business{
		ID:           id,
		LegalName:    record.LegalName,
		CNPJ:         record.CNPJ,
		AppName:      record.AppName,
		Cellphone:    record.Cellphone,
		Description:  record.Description,
		Delivery:     record.Delivery,
		DeliveryTax:  decimal.NewFromFloat(record.DeliveryTax).Round(2),
		DeliveryTime: record.DeliveryTime,
		OpeningHours: record.OpeningHours,
		AddressID:    record.IDAddress,
		LogoURL:      record.LogoURL,
	}
	if t, err := time.Parse(time.RFC3339, record.CreatedAt); err == nil {
		business.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, record.UpdatedAt); err == nil {
		business.UpdatedAt = t
	}
	return business
}

var _ ports.Backend = (*Backend)(nil)
