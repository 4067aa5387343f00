package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{
		Shortages: []StockShortage{
			{ComponentId: 101, ComponentName: "Steel sheet", Required: decimal.NewFromInt(12), Available: decimal.NewFromInt(10)},
			{ComponentId: 103, ComponentName: "Primer", Required: decimal.NewFromFloat(2.5), Available: decimal.NewFromInt(1)},
		},
	}
	msg := err.Error()
	for _, want := range []string{"Steel sheet", "required 12", "available 10", "Primer"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error message missing %q: %s", want, msg)
		}
	}
}

func TestInsufficientStockErrorMatchesWithAs(t *testing.T) {
	var target *InsufficientStockError
	wrapped := fmt.Errorf("advance failed: %w", &InsufficientStockError{
		Shortages: []StockShortage{{ComponentId: 1}},
	})
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As must unwrap InsufficientStockError")
	}
	if len(target.Shortages) != 1 {
		t.Fatalf("expected 1 shortage, got %d", len(target.Shortages))
	}
}

func TestParseOrderKind(t *testing.T) {
	if _, err := ParseOrderKind("ForStock"); err != nil {
		t.Fatalf("ForStock must parse: %v", err)
	}
	if _, err := ParseOrderKind("ForDelivery"); err != nil {
		t.Fatalf("ForDelivery must parse: %v", err)
	}
	if _, err := ParseOrderKind("forStock"); err == nil {
		t.Fatal("lowercase kind must not parse")
	}
}
