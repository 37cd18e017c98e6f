// Package mapper converts order aggregates to their HTTP representations.
package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/ports"
)

// HistoryEntry is the HTTP representation of one lifecycle step.
type HistoryEntry struct {
	Status string `json:"status"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// Order is the HTTP representation of one order row on the dashboard.
// Actions lists the status transitions the merchant may trigger next.
type Order struct {
	ID              string          `json:"id"`
	ClientName      string          `json:"clientName"`
	ProductLabel    string          `json:"productLabel"`
	Date            string          `json:"date"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	BagCount        int             `json:"bagCount"`
	Phone           string          `json:"phone,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	History         []HistoryEntry  `json:"history"`
	Actions         []string        `json:"actions"`
}

// Statistics is the HTTP representation of the dashboard aggregates.
type Statistics struct {
	Total        int             `json:"total"`
	Pending      int             `json:"pending"`
	Confirmed    int             `json:"confirmed"`
	Delivered    int             `json:"delivered"`
	Cancelled    int             `json:"cancelled"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// Page is one rendered slice of the filtered order set.
type Page struct {
	Orders       []Order    `json:"orders"`
	Page         int        `json:"page"`
	PageSize     int        `json:"pageSize"`
	TotalPages   int        `json:"totalPages"`
	TotalMatched int        `json:"totalMatched"`
	Statistics   Statistics `json:"statistics"`
}

// FromOrder maps a domain order into its transport shape.
func FromOrder(o *domain.Order) Order {
	history := make([]HistoryEntry, 0, len(o.History))
	for _, entry := range o.History {
		history = append(history, HistoryEntry{
			Status: string(entry.Status),
			Date:   entry.Date,
			Time:   entry.Time,
		})
	}
	actions := domain.ActionsFor(o.Status)
	names := make([]string, 0, len(actions))
	for _, action := range actions {
		names = append(names, string(action))
	}
	return Order{
		ID:              o.ID,
		ClientName:      o.ClientName,
		ProductLabel:    o.ProductLabel,
		Date:            o.PlacedAtDisplay(),
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		BagCount:        o.BagCount,
		Phone:           o.Phone,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		History:         history,
		Actions:         names,
	}
}

// FromStatistics maps the derived aggregates into their transport shape.
func FromStatistics(stats domain.Statistics) Statistics {
	return Statistics{
		Total:        stats.Total,
		Pending:      stats.Pending,
		Confirmed:    stats.Confirmed,
		Delivered:    stats.Delivered,
		Cancelled:    stats.Cancelled,
		TotalRevenue: stats.TotalRevenue,
	}
}

// FromPage maps a service page into its transport shape.
func FromPage(page *ports.Page) Page {
	orders := make([]Order, 0, len(page.Orders))
	for i := range page.Orders {
		orders = append(orders, FromOrder(&page.Orders[i]))
	}
	return Page{
		Orders:       orders,
		Page:         page.Page,
		PageSize:     page.PageSize,
		TotalPages:   page.TotalPages,
		TotalMatched: page.TotalMatched,
		Statistics:   FromStatistics(page.Statistics),
	}
}
