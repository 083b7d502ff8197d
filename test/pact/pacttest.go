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
	ProviderName = "warehouse-api"
	ConsumerName = "storefront-portal"

	StateProductsBaseline = "products baseline"
	StateProductExists    = "the pact widget product exists"
	StateProductMissing   = "no product with the missing id"
	StateProductStocked   = "the pact widget product has stock"
	StateProductLowStock  = "the pact gadget product is nearly out of stock"
)

const (
	ExistingProductID = "11111111-1111-4111-8111-111111111111"
	LowStockProductID = "22222222-2222-4222-8222-222222222222"
	MissingProductID  = "99999999-9999-4999-8999-999999999999"

	ExampleProductName  = "Pact Widget"
	LowStockProductName = "Pact Gadget"

	StockedQuantity  int64 = 10
	LowStockQuantity int64 = 1
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

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
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

// ExampleProductPayload provides stable test data for product interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":          ExistingProductID,
		"name":        ExampleProductName,
		"description": "A widget seeded for contract tests",
		"price":       9.99,
		"quantity":    StockedQuantity,
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
