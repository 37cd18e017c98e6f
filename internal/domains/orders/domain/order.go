package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPaid      Status = "paid"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrIllegalTransition = errors.New("status transition is not allowed")
	ErrEmptyOrderID      = errors.New("order id is required")
	ErrNegativeAmount    = errors.New("order amount must not be negative")
)

// transitions maps each status to the set of statuses reachable from it.
// Terminal states (delivered, cancelled) map to nothing.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusPaid, StatusCancelled},
	StatusConfirmed: {StatusPaid, StatusPreparing, StatusCancelled},
	StatusPaid:      {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCancelled},
	StatusDelivered: nil,
	StatusCancelled: nil,
}

// ParseStatus maps a raw status value from the remote backend onto the enum.
// Unrecognized values degrade to pending rather than leaking an undefined state.
func ParseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s.Valid() {
		return s
	}
	return StatusPending
}

// Valid reports whether the status is a member of the enumeration.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DisplayDateLayout is the day/month/year format shown to merchants.
const DisplayDateLayout = "02/01/2006"

// DisplayTimeLayout is the 24h hour:minute format used in history entries.
const DisplayTimeLayout = "15:04"

// HistoryEntry is one record of the append-only status transition log.
type HistoryEntry struct {
	Status Status `json:"status"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// Order is one customer purchase of bags from the business.
// History grows monotonically and is never truncated or reordered.
type Order struct {
	ID              string
	ClientName      string
	ProductLabel    string
	PlacedAt        time.Time
	TotalAmount     decimal.Decimal
	Status          Status
	BagCount        int
	Phone           string
	DeliveryAddress string
	Notes           string
	History         []HistoryEntry
}

// Validate enforces the aggregate invariants.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return ErrEmptyOrderID
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if o.TotalAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// PlacedAtDisplay renders the order date as day/month/year for display.
// PlacedAt remains the source of truth for comparisons.
func (o *Order) PlacedAtDisplay() string {
	return o.PlacedAt.Format(DisplayDateLayout)
}

// Transition moves the order to next and appends a history entry stamped with
// the supplied wall-clock time. It fails closed on unknown or unreachable states.
func (o *Order) Transition(next Status, at time.Time) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if !o.Status.CanTransition(next) {
		return ErrIllegalTransition
	}
	o.Status = next
	o.History = append(o.History, HistoryEntry{
		Status: next,
		Date:   at.Format(DisplayDateLayout),
		Time:   at.Format(DisplayTimeLayout),
	})
	return nil
}

// Statistics is the aggregate view derived from the full order set.
// It is always recomputed from scratch, never incrementally maintained.
type Statistics struct {
	Total        int             `json:"total"`
	Pending      int             `json:"pending"`
	Confirmed    int             `json:"confirmed"`
	Delivered    int             `json:"delivered"`
	Cancelled    int             `json:"cancelled"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// ComputeStatistics derives the dashboard aggregates from the given orders.
// Confirmed counts both confirmed and paid orders; cancelled orders are
// excluded from revenue.
func ComputeStatistics(orders []Order) Statistics {
	stats := Statistics{Total: len(orders), TotalRevenue: decimal.Zero}
	for _, o := range orders {
		switch o.Status {
		case StatusPending:
			stats.Pending++
		case StatusConfirmed, StatusPaid:
			stats.Confirmed++
		case StatusDelivered:
			stats.Delivered++
		case StatusCancelled:
			stats.Cancelled++
		}
		if o.Status != StatusCancelled {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		}
	}
	return stats
}
