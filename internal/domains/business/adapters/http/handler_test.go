package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sustentabag/business-dashboard/internal/domains/business/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/business/ports"
	userhttp "github.com/sustentabag/business-dashboard/internal/domains/users/adapters/http"
	usersdomain "github.com/sustentabag/business-dashboard/internal/domains/users/domain"
	usersports "github.com/sustentabag/business-dashboard/internal/domains/users/ports"
)

type staticAuthService struct {
	session *usersdomain.Session
}

func (s *staticAuthService) Login(context.Context, usersdomain.Credentials) (*usersports.LoginResult, error) {
	return nil, usersports.ErrInvalidCredentials
}

func (s *staticAuthService) Register(context.Context, usersdomain.Registration) (*usersports.LoginResult, error) {
	return nil, usersports.ErrInvalidCredentials
}

func (s *staticAuthService) Logout(context.Context, string) error { return nil }

func (s *staticAuthService) Authenticate(context.Context, string) (*usersdomain.Session, error) {
	return s.session, nil
}

var _ usersports.Service = (*staticAuthService)(nil)

type recordingBusinessService struct {
	current *domain.Business
	updated *domain.Business
}

func (s *recordingBusinessService) Get(context.Context) (*domain.Business, error) {
	return s.current, nil
}

func (s *recordingBusinessService) Update(_ context.Context, business *domain.Business) (*domain.Business, error) {
	s.updated = business
	out := *business
	out.ID = 42
	return &out, nil
}

var _ ports.Service = (*recordingBusinessService)(nil)

func newBusinessRouter(service ports.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	session := &usersdomain.Session{
		ID:         "session-1",
		Token:      "backend-token",
		BusinessID: 42,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	auth := userhttp.RequireSession(&staticAuthService{session: session})
	api := NewAPI(func(*usersdomain.Session) ports.Service { return service })
	router := gin.New()
	group := router.Group("/api/business", auth)
	group.GET("", api.GetBusiness)
	group.PUT("", api.UpdateBusiness)
	return router
}

func TestUpdateBusiness_CarriesAddressThrough(t *testing.T) {
	service := &recordingBusinessService{}
	router := newBusinessRouter(service)

	raw, err := json.Marshal(map[string]any{
		"legalName":    "Padaria Central LTDA",
		"cnpj":         "12345678000190",
		"appName":      "Padaria Central",
		"cellphone":    "11999990000",
		"description":  "Paes e doces",
		"delivery":     true,
		"deliveryTax":  5.5,
		"deliveryTime": 30,
		"openingHours": "08:00-18:00",
		"idAddress":    7,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/business", bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer dashboard-token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, service.updated)
	require.EqualValues(t, 7, service.updated.AddressID)

	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.EqualValues(t, 7, view["idAddress"])
}

func TestGetBusiness_ExposesAddressID(t *testing.T) {
	service := &recordingBusinessService{current: &domain.Business{
		ID:          42,
		LegalName:   "Padaria Central LTDA",
		CNPJ:        "12345678000190",
		DeliveryTax: decimal.NewFromFloat(5.5),
		AddressID:   7,
	}}
	router := newBusinessRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/business", nil)
	req.Header.Set("Authorization", "Bearer dashboard-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.EqualValues(t, 7, view["idAddress"])
}
