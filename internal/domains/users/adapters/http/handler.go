// Package http exposes the auth and session endpoints over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/sustentabag/business-dashboard/internal/shared/errors"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/users/application"
	"github.com/sustentabag/business-dashboard/internal/domains/users/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/users/ports"
)

// API wires HTTP transport with the users bounded context service.
type API struct {
	service ports.Service
}

// NewAPI creates an API backed by the provided service.
func NewAPI(service ports.Service) API {
	return API{service: service}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addressPayload struct {
	ZipCode    string `json:"zipCode"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
}

type registerPayload struct {
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	LegalName   string         `json:"legalName"`
	CNPJ        string         `json:"cnpj"`
	AppName     string         `json:"appName"`
	Cellphone   string         `json:"cellphone"`
	Description string         `json:"description,omitempty"`
	Delivery    bool           `json:"delivery"`
	DeliveryTax float64        `json:"deliveryTax"`
	Address     addressPayload `json:"address"`
}

type sessionView struct {
	Token      string `json:"token"`
	Email      string `json:"email"`
	UserID     int64  `json:"userId"`
	BusinessID int64  `json:"businessId"`
	ExpiresAt  string `json:"expiresAt"`
}

// Post /api/auth/login
func (api *API) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	creds := domain.Credentials{Email: payload.Email, Password: payload.Password}
	result, err := api.service.Login(c.Request.Context(), creds)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionView(result))
}

// Post /api/auth/register
func (api *API) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	reg := domain.Registration{
		Email:       payload.Email,
		Password:    payload.Password,
		LegalName:   payload.LegalName,
		CNPJ:        payload.CNPJ,
		AppName:     payload.AppName,
		Cellphone:   payload.Cellphone,
		Description: payload.Description,
		Delivery:    payload.Delivery,
		DeliveryTax: payload.DeliveryTax,
		Address: domain.Address{
			ZipCode:    payload.Address.ZipCode,
			State:      payload.Address.State,
			City:       payload.Address.City,
			Street:     payload.Address.Street,
			Number:     payload.Address.Number,
			Complement: payload.Address.Complement,
		},
	}
	result, err := api.service.Register(c.Request.Context(), reg)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionView(result))
}

// Post /api/auth/logout
func (api *API) Logout(c *gin.Context) {
	session := SessionFrom(c)
	if session == nil {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	if err := api.service.Logout(c.Request.Context(), session.ID); err != nil {
		respondAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/auth/me
func (api *API) Me(c *gin.Context) {
	session := SessionFrom(c)
	if session == nil {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":      session.Email,
		"userId":     session.UserID,
		"businessId": session.BusinessID,
		"expiresAt":  session.ExpiresAt.Format(timeLayout),
	})
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func toSessionView(result *ports.LoginResult) sessionView {
	return sessionView{
		Token:      result.Token,
		Email:      result.Session.Email,
		UserID:     result.Session.UserID,
		BusinessID: result.Session.BusinessID,
		ExpiresAt:  result.Session.ExpiresAt.Format(timeLayout),
	}
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrInvalidCredentials),
		errors.Is(err, application.ErrTokenInvalid),
		errors.Is(err, application.ErrTokenExpired),
		errors.Is(err, ports.ErrSessionNotFound):
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
	case errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyLegalName),
		errors.Is(err, domain.ErrEmptyCNPJ):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrMalformed):
		apierrors.Respond(c, apierrors.ErrUpstream.WithDetail(err.Error()))
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(apiErr.Message))
			return
		}
		apierrors.Respond(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
