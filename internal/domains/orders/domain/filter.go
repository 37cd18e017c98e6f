package domain

import (
	"strings"
	"time"
)

// DateRange buckets orders by calendar boundaries relative to "today".
type DateRange string

const (
	DateRangeAny   DateRange = ""
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "this_week"
	DateRangeMonth DateRange = "this_month"
)

// TabAll bypasses the status predicate.
const TabAll = "all"

// Filter describes the controller's search/date/status criteria.
type Filter struct {
	Tab       string
	Search    string
	DateRange DateRange
}

// Apply returns the orders matching every active criterion, preserving input
// order. Applying the same filter twice yields the same result set.
func (f Filter) Apply(orders []Order, today time.Time) []Order {
	result := make([]Order, 0, len(orders))
	term := strings.ToLower(strings.TrimSpace(f.Search))
	for _, o := range orders {
		if f.Tab != "" && f.Tab != TabAll && o.Status != Status(f.Tab) {
			continue
		}
		if term != "" && !matchesSearch(o, term) {
			continue
		}
		if !f.DateRange.contains(o.PlacedAt, today) {
			continue
		}
		result = append(result, o)
	}
	return result
}

// matchesSearch is a case-insensitive substring match against id, client name
// and product label; any single field match qualifies.
func matchesSearch(o Order, term string) bool {
	return strings.Contains(strings.ToLower(o.ID), term) ||
		strings.Contains(strings.ToLower(o.ClientName), term) ||
		strings.Contains(strings.ToLower(o.ProductLabel), term)
}

func (r DateRange) contains(placedAt, today time.Time) bool {
	day := truncateToDay(placedAt)
	now := truncateToDay(today)
	switch r {
	case DateRangeToday:
		return day.Equal(now)
	case DateRangeWeek:
		// Week starts on Sunday: today minus today's weekday index.
		weekStart := now.AddDate(0, 0, -int(now.Weekday()))
		return !day.Before(weekStart)
	case DateRangeMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return !day.Before(monthStart)
	default:
		return true
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Paginate slices orders into a fixed-size page. Pages are 1-based; a page
// beyond the end yields an empty slice.
func Paginate(orders []Order, pageSize, page int) []Order {
	if pageSize <= 0 || page <= 0 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(orders) {
		return []Order{}
	}
	end := start + pageSize
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}

// PageCount returns ceil(total / pageSize).
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Action is a status mutation the dashboard may offer for an order.
type Action string

const (
	ActionAccept        Action = "accept"
	ActionReject        Action = "reject"
	ActionStartPrepare  Action = "start_preparing"
	ActionMarkReady     Action = "mark_ready"
	ActionMarkDelivered Action = "mark_delivered"
)

// actionTargets maps each UI action to the status it assigns.
var actionTargets = map[Action]Status{
	ActionAccept:        StatusConfirmed,
	ActionReject:        StatusCancelled,
	ActionStartPrepare:  StatusPreparing,
	ActionMarkReady:     StatusReady,
	ActionMarkDelivered: StatusDelivered,
}

// Target returns the status the action assigns.
func (a Action) Target() (Status, bool) {
	s, ok := actionTargets[a]
	return s, ok
}

// ActionsFor is the presentation-level gating table: the subset of transitions
// the dashboard offers for each status. The domain transition table remains
// the enforcement point.
func ActionsFor(status Status) []Action {
	switch status {
	case StatusPending:
		return []Action{ActionAccept, ActionReject}
	case StatusConfirmed, StatusPaid:
		return []Action{ActionStartPrepare}
	case StatusPreparing:
		return []Action{ActionMarkReady}
	case StatusReady:
		return []Action{ActionMarkDelivered}
	default:
		return nil
	}
}
