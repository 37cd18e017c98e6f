package sustentabag

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
)

func TestMapOrder_FullRecord(t *testing.T) {
	record := client.OrderRecord{
		ID:          "101",
		ClientName:  "Maria Souza",
		Status:      "preparing",
		TotalAmount: 25.555,
		CreatedAt:   "2025-08-13T10:15:00Z",
		Items: []client.OrderItemRecord{
			{IDBag: 12, Quantity: 2},
			{IDBag: 14, Quantity: 1},
		},
		Phone: "+55 11 91234-5678",
		Address: &client.AddressRecord{
			Street: "Rua das Flores", Number: "120", City: "Sao Paulo", State: "SP",
		},
		History: []client.OrderHistoryRecord{
			{Status: "pending", Date: "2025-08-13T09:00:00Z"},
			{Status: "confirmed", Date: "2025-08-13T09:30:00Z"},
		},
	}

	order := mapOrder(record)

	require.Equal(t, "101", order.ID)
	require.Equal(t, "Sacola #12", order.ProductLabel)
	require.Equal(t, 3, order.BagCount)
	require.Equal(t, domain.StatusPreparing, order.Status)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.56")))
	require.Equal(t, time.Date(2025, time.August, 13, 10, 15, 0, 0, time.UTC), order.PlacedAt)
	require.Equal(t, "Rua das Flores, 120 - Sao Paulo/SP", order.DeliveryAddress)

	require.Len(t, order.History, 2)
	require.Equal(t, domain.StatusConfirmed, order.History[1].Status)
	require.Equal(t, "13/08/2025", order.History[1].Date)
	require.Equal(t, "09:30", order.History[1].Time)
}

func TestMapOrder_SparseRecordDegradesGracefully(t *testing.T) {
	order := mapOrder(client.OrderRecord{ID: "ord-x", Status: "em preparo", CreatedAt: "not a date"})

	require.Equal(t, "Sacola", order.ProductLabel)
	require.Equal(t, 1, order.BagCount)
	require.Equal(t, domain.StatusPending, order.Status)
	require.True(t, order.PlacedAt.IsZero())
	require.Empty(t, order.DeliveryAddress)
	require.Nil(t, order.History)
}

func TestMapOrder_DateOnlyCreatedAt(t *testing.T) {
	order := mapOrder(client.OrderRecord{ID: "ord-y", Status: "pending", CreatedAt: "2025-08-01"})
	require.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), order.PlacedAt)
}
