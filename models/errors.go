package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrTerminalStage is returned when an advance is requested on an
	// order that is already Delivered.
	ErrTerminalStage = errors.New("order is already at its terminal stage")

	// ErrPriceNotFound is returned when a ForDelivery order reaches the
	// financial gate and the catalog has no price for its SKU.
	ErrPriceNotFound = errors.New("product price not found for sku")

	// ErrRecipeNotFound is returned when the order references a recipe
	// that no longer exists.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrConflict is surfaced after the transaction retry budget for a
	// conflicting concurrent advance is exhausted.
	ErrConflict = errors.New("conflicting concurrent transaction; retries exhausted")

	// ErrActorMissing is returned when no actor identity is resolvable
	// from the request context.
	ErrActorMissing = errors.New("actor identity is required")

	// ErrNegativeStock guards inventory mutations: a delta may never
	// drive a component's stock below zero.
	ErrNegativeStock = errors.New("stock delta would drive stock negative")
)

type StockShortage struct {
	ComponentId   int             `json:"component_id"`
	ComponentName string          `json:"component_name"`
	Required      decimal.Decimal `json:"required"`
	Available     decimal.Decimal `json:"available"`
}

// InsufficientStockError carries one shortage per component that cannot
// cover the order's requirement at the stock gate.
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (id=%d): required %s, available %s",
			s.ComponentName, s.ComponentId, s.Required.String(), s.Available.String()))
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}
