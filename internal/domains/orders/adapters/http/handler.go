// Package http exposes the order dashboard endpoints over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/sustentabag/business-dashboard/internal/shared/errors"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	ordermapper "github.com/sustentabag/business-dashboard/internal/domains/orders/adapters/http/mapper"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
	userhttp "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/http"
	usersdomain "github.com/sustentabag/business-dashboard/internal/domains/users/domain"
)

// ServiceFactory resolves the order service bound to one dashboard session.
type ServiceFactory func(session *usersdomain.Session) ports.Service

// API wires HTTP transport with the orders bounded context service.
type API struct {
	services ServiceFactory
}

// NewAPI creates an API that resolves a session-scoped service per request.
func NewAPI(services ServiceFactory) API {
	return API{services: services}
}

// Get /api/orders
// Lists orders filtered by tab, search term, and date range, paginated.
func (api *API) ListOrders(c *gin.Context) {
	query, ok := parseListQuery(c)
	if !ok {
		return
	}
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	page, err := service.List(c.Request.Context(), query)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromPage(page))
}

// Get /api/orders/statistics
func (api *API) GetStatistics(c *gin.Context) {
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	stats, err := service.Statistics(c.Request.Context())
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromStatistics(stats))
}

// Get /api/orders/:orderId
func (api *API) GetOrder(c *gin.Context) {
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	order, err := service.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromOrder(order))
}

type statusPayload struct {
	Status string `json:"status"`
}

// Patch /api/orders/:orderId/status
// Moves an order along its lifecycle; the marketplace is updated first and
// the local view only after it accepts.
func (api *API) UpdateOrderStatus(c *gin.Context) {
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	status := domain.Status(payload.Status)
	if !status.Valid() {
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail("unknown status: "+payload.Status))
		return
	}
	service, ok := api.serviceFor(c)
	if !ok {
		return
	}
	order, err := service.UpdateStatus(c.Request.Context(), c.Param("orderId"), status)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromOrder(order))
}

func (api *API) serviceFor(c *gin.Context) (ports.Service, bool) {
	session := userhttp.SessionFrom(c)
	if session == nil {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return nil, false
	}
	return api.services(session), true
}

func parseListQuery(c *gin.Context) (ports.ListQuery, bool) {
	query := ports.ListQuery{
		Tab:    c.DefaultQuery("tab", domain.TabAll),
		Search: c.Query("search"),
	}
	switch raw := c.Query("dateRange"); domain.DateRange(raw) {
	case domain.DateRangeAny, domain.DateRangeToday, domain.DateRangeWeek, domain.DateRangeMonth:
		query.DateRange = domain.DateRange(raw)
	default:
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail("unknown dateRange: "+c.Query("dateRange")))
		return ports.ListQuery{}, false
	}
	var ok bool
	if query.Page, ok = parseIntQuery(c, "page"); !ok {
		return ports.ListQuery{}, false
	}
	if query.PageSize, ok = parseIntQuery(c, "pageSize"); !ok {
		return ports.ListQuery{}, false
	}
	return query, true
}

func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(name+" must be an integer"))
		return 0, false
	}
	return value, true
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.NewNotFoundProblem("order", c.Param("orderId")))
	case errors.Is(err, domain.ErrIllegalTransition):
		apierrors.Respond(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, domain.ErrInvalidStatus):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrMalformed):
		apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(err.Error()))
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == http.StatusNotFound {
				apierrors.Respond(c, apierrors.NewNotFoundProblem("order", c.Param("orderId")))
				return
			}
			apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(apiErr.Message))
			return
		}
		apierrors.Respond(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
