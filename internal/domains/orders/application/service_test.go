package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
)

func manyOrders(n int) []domain.Order {
	placed := time.Date(2025, time.August, 13, 8, 0, 0, 0, time.UTC)
	orders := make([]domain.Order, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, domain.Order{
			ID:         "ord-" + string(rune('a'+i)),
			ClientName: "Cliente",
			Status:     domain.StatusPending,
			PlacedAt:   placed,
		})
	}
	return orders
}

func newListService(orders []domain.Order) (*Service, *fakeBackend) {
	backend := &fakeBackend{orders: orders}
	repo := NewRepository(backend)
	svc := NewService(repo, WithServiceClock(fixedClock()))
	return svc, backend
}

func TestList_RefreshesAndDefaultsPagination(t *testing.T) {
	svc, backend := newListService(manyOrders(10))

	page, err := svc.List(context.Background(), ports.ListQuery{Tab: domain.TabAll})
	require.NoError(t, err)
	require.Equal(t, 1, backend.listCalls)
	require.Equal(t, 1, page.Page)
	require.Equal(t, DefaultPageSize, page.PageSize)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, 10, page.TotalMatched)
	require.Len(t, page.Orders, DefaultPageSize)
	require.Equal(t, 10, page.Statistics.Total)
}

func TestList_ClampsPageToLast(t *testing.T) {
	svc, _ := newListService(manyOrders(10))

	page, err := svc.List(context.Background(), ports.ListQuery{Tab: domain.TabAll, Page: 7})
	require.NoError(t, err)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Orders, 2)
}

func TestList_EmptyMatchIsAValidPage(t *testing.T) {
	svc, _ := newListService(manyOrders(4))

	page, err := svc.List(context.Background(), ports.ListQuery{Tab: "delivered"})
	require.NoError(t, err)
	require.Equal(t, 0, page.TotalMatched)
	require.Equal(t, 0, page.TotalPages)
	require.Equal(t, 1, page.Page)
	require.Empty(t, page.Orders)
	require.Equal(t, 4, page.Statistics.Total)
}

func TestList_PropagatesRefreshFailure(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("marketplace down")}
	svc := NewService(NewRepository(backend))

	_, err := svc.List(context.Background(), ports.ListQuery{Tab: domain.TabAll})
	require.Error(t, err)
}

func TestList_FiltersBeforePaginating(t *testing.T) {
	orders := manyOrders(6)
	orders[2].Status = domain.StatusConfirmed
	orders[5].Status = domain.StatusConfirmed
	svc, _ := newListService(orders)

	page, err := svc.List(context.Background(), ports.ListQuery{Tab: "confirmed", PageSize: 1, Page: 2})
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalMatched)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Orders, 1)
	require.Equal(t, orders[5].ID, page.Orders[0].ID)
}
