// Package http exposes the merchant profile endpoints over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apierrors "github.com/sustentabag/business-dashboard/internal/shared/errors"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/business/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/business/ports"
	userhttp "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/http"
	usersdomain "github.com/sustentabag/business-dashboard/internal/domains/users/domain"
)

// ServiceFactory resolves the profile service bound to one dashboard session.
type ServiceFactory func(session *usersdomain.Session) ports.Service

// API wires HTTP transport with the business bounded context service.
type API struct {
	services ServiceFactory
}

// NewAPI creates an API that resolves a session-scoped service per request.
func NewAPI(services ServiceFactory) API {
	return API{services: services}
}

type businessPayload struct {
	LegalName    string          `json:"legalName"`
	CNPJ         string          `json:"cnpj"`
	AppName      string          `json:"appName"`
	Cellphone    string          `json:"cellphone"`
	Description  string          `json:"description"`
	Delivery     bool            `json:"delivery"`
	DeliveryTax  decimal.Decimal `json:"deliveryTax"`
	DeliveryTime int             `json:"deliveryTime"`
	OpeningHours string          `json:"openingHours"`
	IDAddress    int64           `json:"idAddress"`
	LogoURL      string          `json:"logoUrl"`
}

type businessView struct {
	ID           int64           `json:"id"`
	LegalName    string          `json:"legalName"`
	CNPJ         string          `json:"cnpj"`
	AppName      string          `json:"appName"`
	Cellphone    string          `json:"cellphone"`
	Description  string          `json:"description"`
	Delivery     bool            `json:"delivery"`
	DeliveryTax  decimal.Decimal `json:"deliveryTax"`
	DeliveryTime int             `json:"deliveryTime"`
	OpeningHours string          `json:"openingHours"`
	IDAddress    int64           `json:"idAddress"`
	LogoURL      string          `json:"logoUrl,omitempty"`
}

// Get /api/business
func (api *API) GetBusiness(c *gin.Context) {
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	business, err := service.Get(c.Request.Context())
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainBusiness(business))
}

// Put /api/business
func (api *API) UpdateBusiness(c *gin.Context) {
	var payload businessPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	updated, err := service.Update(c.Request.Context(), &domain.Business{
		LegalName:    payload.LegalName,
		CNPJ:         payload.CNPJ,
		AppName:      payload.AppName,
		Cellphone:    payload.Cellphone,
		Description:  payload.Description,
		Delivery:     payload.Delivery,
		DeliveryTax:  payload.DeliveryTax,
		DeliveryTime: payload.DeliveryTime,
		OpeningHours: payload.OpeningHours,
		AddressID:    payload.IDAddress,
		LogoURL:      payload.LogoURL,
	})
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainBusiness(updated))
}

func (api *API) serviceFor(c *gin.Context) (ports.Service, bool) {
	session := userhttp.SessionFrom(c)
	if session == nil {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return nil, false
	}
	return api.services(session), true
}

func fromDomainBusiness(b *domain.Business) businessView {
	return businessView{
		ID:           b.ID,
		LegalName:    b.LegalName,
		CNPJ:         b.CNPJ,
		AppName:      b.AppName,
		Cellphone:    b.Cellphone,
		Description:  b.Description,
		Delivery:     b.Delivery,
		DeliveryTax:  b.DeliveryTax,
		DeliveryTime: b.DeliveryTime,
		OpeningHours: b.OpeningHours,
		IDAddress:    b.AddressID,
		LogoURL:      b.LogoURL,
	}
}

func respondBusinessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.NewNotFoundProblem("business", "current"))
	case errors.Is(err, domain.ErrEmptyLegalName),
		errors.Is(err, domain.ErrEmptyCNPJ),
		errors.Is(err, domain.ErrNegativeTax):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrMalformed):
		apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(err.Error()))
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(apiErr.Message))
			return
		}
		apierrors.Respond(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
