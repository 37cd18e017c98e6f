package sustentabag

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexID tolerates the backend emitting identifiers as either JSON numbers or
// strings, which it does depending on the endpoint.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// AddressRecord is the delivery address shape attached to an order.
type AddressRecord struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode,omitempty"`
	Complement string `json:"complement,omitempty"`
}

// OrderItemRecord is one line item of a raw order.
type OrderItemRecord struct {
	ID       int64  `json:"id"`
	IDOrder  int64  `json:"idOrder"`
	IDBag    int64  `json:"idBag"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// OrderHistoryRecord is one raw status transition entry.
type OrderHistoryRecord struct {
	Status string `json:"status"`
	Date   string `json:"date"`
}

// OrderRecord is the raw order shape returned by GET /orders.
type OrderRecord struct {
	ID          FlexID               `json:"id"`
	IDClient    int64                `json:"idClient"`
	IDBusiness  int64                `json:"idBusiness"`
	ClientName  string               `json:"clientName"`
	Status      string               `json:"status"`
	TotalAmount float64              `json:"totalAmount"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
	Items       []OrderItemRecord    `json:"items"`
	Phone       string               `json:"phone,omitempty"`
	Address     *AddressRecord       `json:"address,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	History     []OrderHistoryRecord `json:"history,omitempty"`
}

// BagRecord is the raw bag listing shape.
type BagRecord struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	IDBusiness  int64    `json:"idBusiness"`
	Status      int      `json:"status"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// BagPayload is the create/update request body for a bag.
type BagPayload struct {
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	IDBusiness  int64    `json:"idBusiness"`
	Status      int      `json:"status"`
	Tags        []string `json:"tags"`
}

// BusinessRecord is the merchant profile shape.
type BusinessRecord struct {
	ID           FlexID  `json:"id"`
	LegalName    string  `json:"legalName"`
	CNPJ         string  `json:"cnpj"`
	AppName      string  `json:"appName"`
	Cellphone    string  `json:"cellphone"`
	Description  string  `json:"description"`
	Delivery     bool    `json:"delivery"`
	DeliveryTax  float64 `json:"deliveryTax"`
	DeliveryTime int     `json:"develiveryTime"`
	OpeningHours string  `json:"openingHours"`
	IDAddress    int64   `json:"idAddress"`
	LogoURL      string  `json:"logoUrl,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

// BusinessPayload is the profile update request body.
type BusinessPayload struct {
	LegalName    string  `json:"legalName"`
	CNPJ         string  `json:"cnpj"`
	AppName      string  `json:"appName"`
	Cellphone    string  `json:"cellphone"`
	Description  string  `json:"description"`
	Delivery     bool    `json:"delivery"`
	DeliveryTax  float64 `json:"deliveryTax"`
	DeliveryTime int     `json:"develiveryTime"`
	OpeningHours string  `json:"openingHours"`
	IDAddress    int64   `json:"idAddress"`
}

// UserRecord is the authenticated user shape returned by the auth endpoints.
type UserRecord struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	IDBusiness int64  `json:"idBusiness"`
}

// AuthResult is the successful login/register response.
type AuthResult struct {
	User   UserRecord      `json:"user"`
	Entity json.RawMessage `json:"entity,omitempty"`
	Token  string          `json:"token"`
}

// RegisterAddress is the nested address of a registration request.
type RegisterAddress struct {
	ZipCode    string `json:"zipCode"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
}

// RegisterEntity carries the business entity fields of a registration request.
type RegisterEntity struct {
	LegalName   string          `json:"legalName"`
	CNPJ        string          `json:"cnpj"`
	AppName     string          `json:"appName"`
	Cellphone   string          `json:"cellphone"`
	Description string          `json:"description"`
	Delivery    bool            `json:"delivery"`
	DeliveryTax float64         `json:"deliveryTax"`
	IDAddress   RegisterAddress `json:"idAddress"`
	Status      int             `json:"status"`
}

// RegisterRequest is the full registration request body.
type RegisterRequest struct {
	EntityType string `json:"entityType"`
	UserData   struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"userData"`
	EntityData RegisterEntity `json:"entityData"`
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }
