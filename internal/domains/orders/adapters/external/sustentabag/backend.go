// Package sustentabag adapts the marketplace HTTP client to the orders
// backend port, bound to one business session.
package sustentabag

import (
	"context"
	"errors"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
)

// Backend implements the outbound order port for one session.
type Backend struct {
	client     *client.Client
	token      string
	businessID int64
}

// NewBackend binds the shared client to a session's credentials.
func NewBackend(c *client.Client, token string, businessID int64) *Backend {
	return &Backend{client: c, token: token, businessID: businessID}
}

// ListOrders fetches and maps every order of the session's business.
func (b *Backend) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if b == nil || b.client == nil {
		return nil, errors.New("orders backend not configured")
	}
	if b.businessID == 0 {
		return nil, ErrNoBusiness
	}
	records, err := b.client.ListOrders(ctx, b.token, b.businessID)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, mapOrder(record))
	}
	return orders, nil
}

// UpdateOrderStatus patches the order status on the backend.
func (b *Backend) UpdateOrderStatus(ctx context.Context, id string, status domain.Status) error {
	if b == nil || b.client == nil {
		return errors.New("orders backend not configured")
	}
	return b.client.UpdateOrderStatus(ctx, b.token, id, string(status))
}

// ErrNoBusiness signals a session with no resolvable business identity.
var ErrNoBusiness = errors.New("business id not resolved for session")

var _ ports.Backend = (*Backend)(nil)
