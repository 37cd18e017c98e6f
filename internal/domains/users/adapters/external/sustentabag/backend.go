// Package sustentabag adapts the marketplace HTTP client to the users
// backend port.
package sustentabag

import (
	"context"
	"errors"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/users/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/users/ports"
)

// Backend proxies the marketplace auth endpoints.
type Backend struct {
	client *client.Client
}

// NewBackend wires the shared client into an auth adapter.
func NewBackend(c *client.Client) *Backend {
	return &Backend{client: c}
}

func (b *Backend) Login(ctx context.Context, email, password string) (*domain.Grant, error) {
	if b == nil || b.client == nil {
		return nil, errors.New("auth backend not configured")
	}
	result, err := b.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return mapGrant(result), nil
}

func (b *Backend) Register(ctx context.Context, reg domain.Registration) (*domain.Grant, error) {
	if b == nil || b.client == nil {
		return nil, errors.New("auth backend not configured")
	}
	result, err := b.client.Register(ctx, mapRegistration(reg))
	if err != nil {
		return nil, err
	}
	return mapGrant(result), nil
}

func mapGrant(result *client.AuthResult) *domain.Grant {
	return &domain.Grant{
		Token:      result.Token,
		UserID:     result.User.ID,
		Email:      result.User.Email,
		BusinessID: result.User.IDBusiness,
	}
}

func mapRegistration(reg domain.Registration) client.RegisterRequest {
	req := client.RegisterRequest{
		EntityType: "business",
		EntityData: client.RegisterEntity{
			LegalName:   reg.LegalName,
			CNPJ:        reg.CNPJ,
			AppName:     reg.AppName,
			Cellphone:   reg.Cellphone,
			Description: reg.Description,
			Delivery:    reg.Delivery,
			DeliveryTax: reg.DeliveryTax,
			Status:      1,
			IDAddress: client.RegisterAddress{
				ZipCode:    reg.Address.ZipCode,
				State:      reg.Address.State,
				City:       reg.Address.City,
				Street:     reg.Address.Street,
				Number:     reg.Address.Number,
				Complement: reg.Address.Complement,
			},
		},
	}
	req.UserData.Email = reg.Email
	req.UserData.Password = reg.Password
	return req
}

var _ ports.Backend = (*Backend)(nil)
