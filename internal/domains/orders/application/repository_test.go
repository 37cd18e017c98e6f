package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
)

type fakeBackend struct {
	orders      []domain.Order
	listErr     error
	updateErr   error
	listCalls   int
	updateCalls int
	updatedID   string
	updatedTo   domain.Status
}

func (f *fakeBackend) ListOrders(context.Context) ([]domain.Order, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeBackend) UpdateOrderStatus(_ context.Context, id string, status domain.Status) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedTo = status
	return nil
}

var _ ports.Backend = (*fakeBackend)(nil)

func fixedClock() func() time.Time {
	at := time.Date(2025, time.August, 13, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func backendOrders() []domain.Order {
	return []domain.Order{
		{ID: "ord-1", ClientName: "Maria", Status: domain.StatusPending, TotalAmount: decimal.RequireFromString("10.00")},
		{ID: "ord-2", ClientName: "Joao", Status: domain.StatusPreparing, TotalAmount: decimal.RequireFromString("20.00")},
	}
}

func TestRefresh_ReplacesCacheAndRecomputesStats(t *testing.T) {
	backend := &fakeBackend{orders: backendOrders()}
	repo := NewRepository(backend, WithClock(fixedClock()))

	orders, err := repo.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	stats := repo.Statistics()
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.Pending)
	require.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("30.00")))
}

func TestRefresh_DropsDuplicateIDs(t *testing.T) {
	duplicated := append(backendOrders(), domain.Order{ID: "ord-1", Status: domain.StatusDelivered})
	backend := &fakeBackend{orders: duplicated}
	repo := NewRepository(backend)

	orders, err := repo.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first, err := repo.ByID("ord-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, first.Status)
}

func TestRefresh_FailureDegradesToEmpty(t *testing.T) {
	backend := &fakeBackend{orders: backendOrders()}
	repo := NewRepository(backend)

	_, err := repo.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.All(), 2)

	backend.listErr = errors.New("connection refused")
	_, err = repo.Refresh(context.Background())
	require.Error(t, err)
	require.Empty(t, repo.All())
	require.Equal(t, 0, repo.Statistics().Total)
}

func TestByID_UnknownOrder(t *testing.T) {
	repo := NewRepository(&fakeBackend{orders: backendOrders()})
	_, err := repo.Refresh(context.Background())
	require.NoError(t, err)

	_, err = repo.ByID("ord-99")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestByStatus(t *testing.T) {
	repo := NewRepository(&fakeBackend{orders: backendOrders()})
	_, err := repo.Refresh(context.Background())
	require.NoError(t, err)

	preparing := repo.ByStatus(domain.StatusPreparing)
	require.Len(t, preparing, 1)
	require.Equal(t, "ord-2", preparing[0].ID)
	require.Empty(t, repo.ByStatus(domain.StatusDelivered))
}

func TestUpdateStatus_RemoteFirstThenCache(t *testing.T) {
	backend := &fakeBackend{orders: backendOrders()}
	repo := NewRepository(backend, WithClock(fixedClock()))
	_, err := repo.Refresh(context.Background())
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(context.Background(), "ord-1", domain.StatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, 1, backend.updateCalls)
	require.Equal(t, "ord-1", backend.updatedID)
	require.Equal(t, domain.StatusConfirmed, backend.updatedTo)

	require.Equal(t, domain.StatusConfirmed, updated.Status)
	require.Len(t, updated.History, 1)
	require.Equal(t, "13/08/2025", updated.History[0].Date)
	require.Equal(t, "10:00", updated.History[0].Time)

	stats := repo.Statistics()
	require.Equal(t, 0, stats.Pending)
	require.Equal(t, 1, stats.Confirmed)
}

func TestUpdateStatus_UnknownIDSkipsRemote(t *testing.T) {
	backend := &fakeBackend{orders: backendOrders()}
	repo := NewRepository(backend)
	_, err := repo.Refresh(context.Background())
	require.NoError(t, err)

	_, err = repo.UpdateStatus(context.Background(), "ord-99", domain.StatusConfirmed)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.Equal(t, 0, backend.updateCalls)
}

func TestUpdateStatus_IllegalTransitionSkipsRemote(t *testing.T) {
	backend := &fakeBackend{orders: backendOrders()}
	repo := NewRepository(backend)
	_, err := repo.Refresh(context.Background())
	require.NoError(t, err)

	_, err = repo.UpdateStatus(context.Background(), "ord-1", domain.StatusDelivered)
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
	require.Equal(t, 0, backend.updateCalls)

	unchanged, err := repo.ByID("ord-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, unchanged.Status)
	require.Empty(t, unchanged.History)
}

func TestUpdateStatus_RemoteFailureLeavesCacheUntouched(t *testing.T) {
	backend := &fakeBackend{orders: backendOrders(), updateErr: errors.New("503 from backend")}
	repo := NewRepository(backend)
	_, err := repo.Refresh(context.Background())
	require.NoError(t, err)

	_, err = repo.UpdateStatus(context.Background(), "ord-1", domain.StatusConfirmed)
	require.Error(t, err)

	unchanged, err := repo.ByID("ord-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, unchanged.Status)
	require.Empty(t, unchanged.History)
	require.Equal(t, 1, repo.Statistics().Pending)
}

func TestRegistry_ReusesAndEvictsPerSession(t *testing.T) {
	factory := func(token string, businessID int64) ports.Backend {
		return &fakeBackend{}
	}
	registry := NewRegistry(factory)

	first := registry.For("session-a", "token-a", 1)
	again := registry.For("session-a", "token-a", 1)
	other := registry.For("session-b", "token-b", 2)
	require.Same(t, first, again)
	require.NotSame(t, first, other)

	registry.Evict("session-a")
	rebuilt := registry.For("session-a", "token-a", 1)
	require.NotSame(t, first, rebuilt)
}
