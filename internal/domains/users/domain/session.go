package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyEmail     = errors.New("email is required")
	ErrInvalidEmail   = errors.New("email must contain '@'")
	ErrEmptyPassword  = errors.New("password is required")
	ErrEmptyLegalName = errors.New("legal name is required")
	ErrEmptyCNPJ      = errors.New("cnpj is required")
)

// Credentials are the merchant login inputs, validated before any remote call.
type Credentials struct {
	Email    string
	Password string
}

// Validate trims and checks the credential invariants.
func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(c.Password) == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Grant is what the marketplace backend hands out on a successful login or
// registration: its bearer token plus the merchant identity.
type Grant struct {
	Token      string
	UserID     int64
	Email      string
	BusinessID int64
}

// Session is one authenticated dashboard session. It carries the backend
// bearer token and business identity every proxied call needs.
type Session struct {
	ID         string
	Token      string
	UserID     int64
	Email      string
	BusinessID int64
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the session has passed its TTL.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Address is the registration address block.
type Address struct {
	ZipCode    string
	State      string
	City       string
	Street     string
	Number     string
	Complement string
}

// Registration carries everything needed to create a merchant account.
type Registration struct {
	Email       string
	Password    string
	LegalName   string
	CNPJ        string
	AppName     string
	Cellphone   string
	Description string
	Delivery    bool
	DeliveryTax float64
	Address     Address
}

// Validate checks the registration invariants.
func (r *Registration) Validate() error {
	creds := Credentials{Email: r.Email, Password: r.Password}
	if err := creds.Validate(); err != nil {
		return err
	}
	r.Email = creds.Email
	if strings.TrimSpace(r.LegalName) == "" {
		return ErrEmptyLegalName
	}
	if strings.TrimSpace(r.CNPJ) == "" {
		return ErrEmptyCNPJ
	}
	return nil
}
