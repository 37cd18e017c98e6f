package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type enumerates the bag kinds sold on the marketplace.
type Type string

const (
	TypeSweet  Type = "Doce"
	TypeSavory Type = "Salgada"
	TypeMixed  Type = "Mista"
)

// StatusActive marks a listing visible to clients; the backend stores the
// status as an int flag.
const StatusActive = 1

var (
	ErrInvalidType      = errors.New("bag type is invalid")
	ErrInvalidTag       = errors.New("bag tag is not in the allowed set")
	ErrNegativePrice    = errors.New("bag price must not be negative")
	ErrEmptyDescription = errors.New("bag description is required")
)

// AllowedTags is the fixed allergen disclosure set accepted by the backend.
var AllowedTags = []string{
	"PODE_CONTER_GLUTEN",
	"PODE_CONTER_LACTOSE",
	"PODE_CONTER_LEITE",
	"PODE_CONTER_OVOS",
	"PODE_CONTER_AMENDOIM",
	"PODE_CONTER_CASTANHAS",
	"PODE_CONTER_NOZES",
	"PODE_CONTER_SOJA",
	"PODE_CONTER_PEIXE",
	"PODE_CONTER_FRUTOS_DO_MAR",
	"PODE_CONTER_CRUSTACEOS",
	"PODE_CONTER_GERGELIM",
	"PODE_CONTER_SULFITOS",
	"PODE_CONTER_CARNE",
}

var allowedTagSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllowedTags))
	for _, tag := range AllowedTags {
		set[tag] = struct{}{}
	}
	return set
}()

// ValidTag reports membership in the allowed tag set.
func ValidTag(tag string) bool {
	_, ok := allowedTagSet[tag]
	return ok
}

// Bag is one sellable packaged-food listing.
type Bag struct {
	ID          int64
	Type        Type
	Price       decimal.Decimal
	Description string
	BusinessID  int64
	Status      int
	Tags        []string
	CreatedAt   time.Time
}

// Validate enforces the listing invariants.
func (b *Bag) Validate() error {
	switch b.Type {
	case TypeSweet, TypeSavory, TypeMixed:
	default:
		return ErrInvalidType
	}
	if b.Price.IsNegative() {
		return ErrNegativePrice
	}
	if strings.TrimSpace(b.Description) == "" {
		return ErrEmptyDescription
	}
	for _, tag := range b.Tags {
		if !ValidTag(tag) {
			return ErrInvalidTag
		}
	}
	return nil
}
