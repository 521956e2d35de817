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
	ProviderName = "levaja-marketplace-api"
	ConsumerName = "levaja-shopper-app"

	StateDemoCatalog    = "the demo catalog is seeded"
	StateProductExists  = "product 1 exists"
	StateProductAbsent  = "no product with id ghost"
	StateConsumerExists = "consumer consumidor@levaja.com exists"
)

const (
	ExistingProductID = "1"
	MissingProductID  = "ghost"

	ConsumerEmail    = "consumidor@levaja.com"
	ConsumerPassword = "demo123"
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

// PactFile returns the canonical pact file path for the shopper app consumer.
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

// ExampleProductPayload is the demo bread product as the shopper app reads it.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":                 ExistingProductID,
		"name":               "Pão Integral Artesanal",
		"category":           "Padaria",
		"marketId":           "1",
		"marketName":         "Mercado Verde",
		"price":              8.5,
		"originalPrice":      12.9,
		"discountPercentage": 34,
		"status":             "near_expiry",
		"isNearExpiry":       true,
	}
}

// ExampleMarketPayload is the first demo market.
func ExampleMarketPayload() map[string]any {
	return map[string]any{
		"id":     "1",
		"name":   "Mercado Verde",
		"isOpen": true,
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
