package sustentabag

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	client "github.com/sustentabag/business-dashboard/internal/clients/http/sustentabag"
	"github.com/sustentabag/business-dashboard/internal/domains/orders/domain"
)

// mapOrder converts a raw backend record into the domain shape: status values
// are coerced onto the enum (unknown -> pending), the product label is derived
// from the first bag item, and bag counts are summed across items.
func mapOrder(record client.OrderRecord) domain.Order {
	order := domain.Order{
		ID:              record.ID.String(),
		ClientName:      record.ClientName,
		ProductLabel:    productLabel(record.Items),
		PlacedAt:        parseCreatedAt(record.CreatedAt),
		TotalAmount:     decimal.NewFromFloat(record.TotalAmount).Round(2),
		Status:          domain.ParseStatus(record.Status),
		BagCount:        bagCount(record.Items),
		Phone:           record.Phone,
		DeliveryAddress: formatAddress(record.Address),
		Notes:           record.Notes,
		History:         mapHistory(record.History),
	}
	return order
}

func productLabel(items []client.OrderItemRecord) string {
	if len(items) == 0 {
		return "Sacola"
	}
	return fmt.Sprintf("Sacola #%d", items[0].IDBag)
}

func bagCount(items []client.OrderItemRecord) int {
	if len(items) == 0 {
		return 1
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func parseCreatedAt(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatAddress(addr *client.AddressRecord) string {
	if addr == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s - %s/%s", addr.Street, addr.Number, addr.City, addr.State)
}

// mapHistory keeps the backend's append order; entries carry only
// display-formatted date and time.
func mapHistory(records []client.OrderHistoryRecord) []domain.HistoryEntry {
	if len(records) == 0 {
		return nil
	}
	entries := make([]domain.HistoryEntry, 0, len(records))
	for _, record := range records {
		entry := domain.HistoryEntry{Status: domain.ParseStatus(record.Status)}
		if t, err := time.Parse(time.RFC3339, record.Date); err == nil {
			entry.Date = t.Format(domain.DisplayDateLayout)
			entry.Time = t.Format(domain.DisplayTimeLayout)
		} else {
			entry.Date = strings.TrimSpace(record.Date)
		}
		entries = append(entries, entry)
	}
	return entries
}
