// Package http exposes the bag listing endpoints over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apierrors "github.com/sustentabag/business-dashboard/internal/shared/errors"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/bags/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/bags/ports"
	userhttp "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/http"
	usersdomain "github.com/sustentabag/business-dashboard/internal/domains/users/domain"
)

// ServiceFactory resolves the bag service bound to one dashboard session.
type ServiceFactory func(session *usersdomain.Session) ports.Service

// API wires HTTP transport with the bags bounded context service.
type API struct {
	services ServiceFactory
}

// NewAPI creates an API that resolves a session-scoped service per request.
func NewAPI(services ServiceFactory) API {
	return API{services: services}
}

type bagPayload struct {
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Status      int             `json:"status"`
	Tags        []string        `json:"tags"`
}

type bagView struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	BusinessID  int64           `json:"businessId"`
	Status      int             `json:"status"`
	Tags        []string        `json:"tags"`
}

// Post /api/bags
func (api *API) CreateBag(c *gin.Context) {
	var payload bagPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	bag := toDomainBag(payload)
	if bag.Status == 0 {
		bag.Status = domain.StatusActive
	}
	created, err := service.Create(c.Request.Context(), bag)
	if err != nil {
		respondBagError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainBag(created))
}

// Get /api/bags
func (api *API) ListBags(c *gin.Context) {
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	bags, err := service.List(c.Request.Context())
	if err != nil {
		respondBagError(c, err)
		return
	}
	views := make([]bagView, 0, len(bags))
	for i := range bags {
		views = append(views, fromDomainBag(&bags[i]))
	}
	c.JSON(http.StatusOK, views)
}

// Put /api/bags/:bagId
func (api *API) UpdateBag(c *gin.Context) {
	id, ok := parseBagID(c)
	if !ok {
		return
	}
	var payload bagPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	updated, err := service.Update(c.Request.Context(), id, toDomainBag(payload))
	if err != nil {
		respondBagError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainBag(updated))
}

// Delete /api/bags/:bagId
func (api *API) DeleteBag(c *gin.Context) {
	id, ok := parseBagID(c)
	if !ok {
		return
	}
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	if err := service.Delete(c.Request.Context(), id); err != nil {
		respondBagError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *API) serviceFor(c *gin.Context) (ports.Service, bool) {
	session := userhttp.SessionFrom(c)
	if session == nil {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return nil, false
	}
	return api.services(session), true
}

func parseBagID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("bagId"), 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("bagId must be an integer"))
		return 0, false
	}
	return id, true
}

func toDomainBag(payload bagPayload) *domain.Bag {
	return &domain.Bag{
		Type:        domain.Type(payload.Type),
		Price:       payload.Price,
		Description: payload.Description,
		Status:      payload.Status,
		Tags:        payload.Tags,
	}
}

func fromDomainBag(bag *domain.Bag) bagView {
	tags := bag.Tags
	if tags == nil {
		tags = []string{}
	}
	return bagView{
		ID:          bag.ID,
		Type:        string(bag.Type),
		Price:       bag.Price,
		Description: bag.Description,
		BusinessID:  bag.BusinessID,
		Status:      bag.Status,
		Tags:        tags,
	}
}

func respondBagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.NewNotFoundProblem("bag", c.Param("bagId")))
	case errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrInvalidTag),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrEmptyDescription):
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
