// Package sustentabag adapts the marketplace HTTP client to the bags backend
// port, bound to one business session.
package sustentabag

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/bags/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/bags/ports"
)

// Backend proxies bag CRUD for one session.
type Backend struct {
	client     *client.Client
	token      string
	businessID int64
}

// NewBackend binds the shared client to a session's credentials.
func NewBackend(c *client.Client, token string, businessID int64) *Backend {
	return &Backend{client: c, token: token, businessID: businessID}
}

func (b *Backend) Create(ctx context.Context, bag *domain.Bag) (*domain.Bag, error) {
	record, err := b.client.CreateBag(ctx, b.token, toPayload(bag, b.businessID))
	if err != nil {
		return nil, err
	}
	mapped := fromRecord(*record)
	return &mapped, nil
}

func (b *Backend) List(ctx context.Context) ([]domain.Bag, error) {
	records, err := b.client.ListBags(ctx, b.token, b.businessID)
	if err != nil {
		return nil, err
	}
	bags := make([]domain.Bag, 0, len(records))
	for _, record := range records {
		bags = append(bags, fromRecord(record))
	}
	return bags, nil
}

func (b *Backend) Update(ctx context.Context, id int64, bag *domain.Bag) (*domain.Bag, error) {
	record, err := b.client.UpdateBag(ctx, b.token, id, toPayload(bag, b.businessID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	mapped := fromRecord(*record)
	return &mapped, nil
}

func (b *Backend) Delete(ctx context.Context, id int64) error {
	return mapNotFound(b.client.DeleteBag(ctx, b.token, id))
}

func mapNotFound(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return ports.ErrNotFound
	}
	return err
}

func toPayload(bag *domain.Bag, businessID int64) client.BagPayload {
	price, _ := bag.Price.Round(2).Float64()
	return client.BagPayload{
		Type:        string(bag.Type),
		Price:       price,
		Description: bag.Description,
		IDBusiness:  businessID,
		Status:      bag.Status,
		Tags:        bag.Tags,
	}
}

func fromRecord(record client.BagRecord) domain.Bag {
	bag := domain.Bag{
		ID:          record.ID,
		Type:        domain.Type(record.Type),
		Price:       decimal.NewFromFloat(record.Price).Round(2),
		Description: record.Description,
		BusinessID:  record.IDBusiness,
		Status:      record.Status,
		Tags:        record.Tags,
	}
	if t, err := time.Parse(time.RFC3339, record.CreatedAt); err == nil {
		bag.CreatedAt = t
	}
	return bag
}

var _ ports.Backend = (*Backend)(nil)
