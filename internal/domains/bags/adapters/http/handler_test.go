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
	"github.com/stretchr/testify/require"

	"github.com/sustentabag/business-dashboard/internal/domains/bags/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/bags/ports"
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

type recordingBagService struct {
	created   *domain.Bag
	updated   *domain.Bag
	updatedID int64
}

func (s *recordingBagService) Create(_ context.Context, bag *domain.Bag) (*domain.Bag, error) {
	s.created = bag
	out := *bag
	out.ID = 12
	out.BusinessID = 42
	return &out, nil
}

func (s *recordingBagService) List(context.Context) ([]domain.Bag, error) { return nil, nil }

func (s *recordingBagService) Update(_ context.Context, id int64, bag *domain.Bag) (*domain.Bag, error) {
	s.updatedID = id
	s.updated = bag
	out := *bag
	out.ID = id
	return &out, nil
}

func (s *recordingBagService) Delete(context.Context, int64) error { return nil }

var _ ports.Service = (*recordingBagService)(nil)

func newBagRouter(service ports.Service) *gin.Engine {
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
	group := router.Group("/api/bags", auth)
	group.POST("", api.CreateBag)
	group.PUT("/:bagId", api.UpdateBag)
	return router
}

func doBagRequest(t *testing.T, router *gin.Engine, method, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer dashboard-token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateBag_DefaultsStatusToActive(t *testing.T) {
	service := &recordingBagService{}
	router := newBagRouter(service)

	rec := doBagRequest(t, router, http.MethodPost, "/api/bags", map[string]any{
		"type":        "Doce",
		"price":       9.9,
		"description": "Sacola surpresa doce",
		"tags":        []string{"PODE_CONTER_GLUTEN"},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, service.created)
	require.Equal(t, domain.StatusActive, service.created.Status)

	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.EqualValues(t, domain.StatusActive, view["status"])
}

func TestUpdateBag_CarriesStatusThrough(t *testing.T) {
	service := &recordingBagService{}
	router := newBagRouter(service)

	rec := doBagRequest(t, router, http.MethodPut, "/api/bags/12", map[string]any{
		"type":        "Salgada",
		"price":       14.5,
		"description": "Sacola salgada",
		"status":      1,
		"tags":        []string{},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 12, service.updatedID)
	require.NotNil(t, service.updated)
	require.Equal(t, 1, service.updated.Status)
}
