package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_KnownValues(t *testing.T) {
	require.Equal(t, StatusConfirmed, ParseStatus("confirmed"))
	require.Equal(t, StatusPaid, ParseStatus("  PAID  "))
	require.Equal(t, StatusDelivered, ParseStatus("Delivered"))
}

func TestParseStatus_UnknownDegradesToPending(t *testing.T) {
	require.Equal(t, StatusPending, ParseStatus("shipped"))
	require.Equal(t, StatusPending, ParseStatus(""))
	require.Equal(t, StatusPending, ParseStatus("em preparo"))
}

func TestStatus_Terminal(t *testing.T) {
	require.True(t, StatusDelivered.Terminal())
	require.True(t, StatusCancelled.Terminal())
	require.False(t, StatusPending.Terminal())
	require.False(t, StatusReady.Terminal())
	require.False(t, Status("bogus").Terminal())
}

func TestStatus_CanTransition(t *testing.T) {
	require.True(t, StatusPending.CanTransition(StatusConfirmed))
	require.True(t, StatusPending.CanTransition(StatusCancelled))
	require.True(t, StatusConfirmed.CanTransition(StatusPreparing))
	require.True(t, StatusPaid.CanTransition(StatusPreparing))
	require.True(t, StatusPreparing.CanTransition(StatusReady))
	require.True(t, StatusReady.CanTransition(StatusDelivered))

	require.False(t, StatusPending.CanTransition(StatusDelivered))
	require.False(t, StatusDelivered.CanTransition(StatusPending))
	require.False(t, StatusCancelled.CanTransition(StatusConfirmed))
	require.False(t, StatusReady.CanTransition(StatusPreparing))
}

func TestOrder_TransitionAppendsHistory(t *testing.T) {
	order := Order{ID: "ord-1", Status: StatusPending}
	at := time.Date(2025, time.March, 14, 9, 26, 0, 0, time.UTC)

	require.NoError(t, order.Transition(StatusConfirmed, at))
	require.Equal(t, StatusConfirmed, order.Status)
	require.Len(t, order.History, 1)
	require.Equal(t, StatusConfirmed, order.History[0].Status)
	require.Equal(t, "14/03/2025", order.History[0].Date)
	require.Equal(t, "09:26", order.History[0].Time)
}

func TestOrder_TransitionFailsClosed(t *testing.T) {
	order := Order{ID: "ord-1", Status: StatusDelivered, History: []HistoryEntry{{Status: StatusDelivered}}}

	err := order.Transition(StatusPending, time.Now())
	require.ErrorIs(t, err, ErrIllegalTransition)
	require.Equal(t, StatusDelivered, order.Status)
	require.Len(t, order.History, 1)

	err = order.Transition(Status("bogus"), time.Now())
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Len(t, order.History, 1)
}

func TestOrder_Validate(t *testing.T) {
	valid := Order{ID: "ord-1", Status: StatusPending, TotalAmount: decimal.NewFromInt(10)}
	require.NoError(t, valid.Validate())

	missing := Order{Status: StatusPending}
	require.ErrorIs(t, missing.Validate(), ErrEmptyOrderID)

	negative := Order{ID: "ord-2", Status: StatusPending, TotalAmount: decimal.NewFromInt(-1)}
	require.ErrorIs(t, negative.Validate(), ErrNegativeAmount)

	invalid := Order{ID: "ord-3", Status: Status("bogus")}
	require.ErrorIs(t, invalid.Validate(), ErrInvalidStatus)
}

func TestComputeStatistics_CountsAndRevenue(t *testing.T) {
	orders := []Order{
		{ID: "a", Status: StatusPending, TotalAmount: decimal.RequireFromString("10.50")},
		{ID: "b", Status: StatusConfirmed, TotalAmount: decimal.RequireFromString("20.00")},
		{ID: "c", Status: StatusPaid, TotalAmount: decimal.RequireFromString("5.25")},
		{ID: "d", Status: StatusPreparing, TotalAmount: decimal.RequireFromString("8.00")},
		{ID: "e", Status: StatusDelivered, TotalAmount: decimal.RequireFromString("12.00")},
		{ID: "f", Status: StatusCancelled, TotalAmount: decimal.RequireFromString("99.99")},
	}

	stats := ComputeStatistics(orders)

	require.Equal(t, 6, stats.Total)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, 2, stats.Confirmed)
	require.Equal(t, 1, stats.Delivered)
	require.Equal(t, 1, stats.Cancelled)
	require.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("55.75")))
}

func TestComputeStatistics_TwoOrderScenario(t *testing.T) {
	orders := []Order{
		{ID: "a", Status: StatusDelivered, TotalAmount: decimal.RequireFromString("30.00")},
		{ID: "b", Status: StatusCancelled, TotalAmount: decimal.RequireFromString("45.00")},
	}

	stats := ComputeStatistics(orders)

	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.Delivered)
	require.Equal(t, 1, stats.Cancelled)
	require.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("30.00")))
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil)

	require.Equal(t, 0, stats.Total)
	require.True(t, stats.TotalRevenue.IsZero())
}
