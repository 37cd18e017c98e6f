package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyLegalName = errors.New("legal name is required")
	ErrEmptyCNPJ      = errors.New("cnpj is required")
	ErrNegativeTax    = errors.New("delivery tax must not be negative")
)

// Business is the merchant profile managed through the dashboard settings.
type Business struct {
	ID           int64
	LegalName    string
	CNPJ         string
	AppName      string
	Cellphone    string
	Description  string
	Delivery     bool
	DeliveryTax  decimal.Decimal
	DeliveryTime int
	OpeningHours string
	AddressID    int64
	LogoURL      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate enforces the profile invariants before an update is proxied.
func (b *Business) Validate() error {
	if strings.TrimSpace(b.LegalName) == "" {
		return ErrEmptyLegalName
	}
	if strings.TrimSpace(b.CNPJ) == "" {
		return ErrEmptyCNPJ
	}
	if b.DeliveryTax.IsNegative() {
		return ErrNegativeTax
	}
	return nil
}
