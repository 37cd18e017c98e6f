//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "sustentabag-api"
	ConsumerName = "business-dashboard"

	StateMerchantExists = "merchant dev@loja.com exists with business 42"
	StateOrdersExist    = "business 42 has orders"
	StateOrderPending   = "order 101 of business 42 is pending"
	StateBagsExist      = "business 42 has bag listings"
	StateBusinessExists = "business 42 exists"
)

const (
	BusinessID      int64 = 42
	ExistingBagID   int64 = 12
	ExistingOrderID       = "101"

	MerchantEmail    = "dev@loja.com"
	MerchantPassword = "pact-pass"
	BackendToken     = "pact-backend-token"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable order data for pact interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"id":          ExistingOrderID,
		"idBusiness":  BusinessID,
		"clientName":  "Maria Souza",
		"status":      "pending",
		"totalAmount": 25.5,
		"createdAt":   "2025-08-13T10:15:00Z",
		"items": []map[string]any{
			{"idBag": ExistingBagID, "quantity": 2, "price": "12.75"},
		},
	}
}

// ExampleBagPayload provides stable bag data for pact interactions.
func ExampleBagPayload() map[string]any {
	return map[string]any{
		"id":          ExistingBagID,
		"type":        "Doce",
		"price":       9.9,
		"description": "Sacola surpresa doce",
		"idBusiness":  BusinessID,
		"status":      1,
		"tags":        []string{"PODE_CONTER_GLUTEN"},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
