// internal/pricing/calculator.go
package pricing

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"hw-quote/internal/domain"

	"github.com/shopspring/decimal"
)

// Calculate returns
//
//	sum(price * quantity) * discountMultiplier - specialReduction
//
// Unknown items, placeholder picks and unknown discounts contribute nothing
// (multiplier 1). Non-finite numbers (NaN, ±Inf) are ignored the same way.
// The result is not clamped and may be negative.
func Calculate(cat domain.Catalog, selections []domain.Selection, discountID string, specialReduction float64) float64 {
	base := decimal.Zero
	for _, sel := range selections {
		if sel.ItemID == "" || sel.ItemID == domain.PlaceholderID(sel.Category) {
			continue
		}
		comp, ok := cat.FindComponent(sel.Category, sel.ItemID)
		if !ok {
			slog.Warn("Unknown component in selection, ignored", "category", sel.Category, "item_id", sel.ItemID)
			continue
		}
		price, okPrice := toDecimal(comp.Price)
		qty, okQty := toDecimal(sel.Quantity)
		if !okPrice || !okQty {
			slog.Warn("Non-finite price or quantity, ignored", "item_id", sel.ItemID, "price", comp.Price, "quantity", sel.Quantity)
			continue
		}
		base = base.Add(price.Mul(qty))
	}

	multiplier := decimal.NewFromInt(1)
	if discountID != "" {
		if d, ok := cat.FindDiscount(discountID); !ok {
			slog.Warn("Unknown discount, no discount applied", "discount_id", discountID)
		} else if m, ok := toDecimal(d.Multiplier); ok {
			multiplier = m
		} else {
			slog.Warn("Non-finite discount multiplier, no discount applied", "discount_id", discountID)
		}
	}

	reduction, ok := toDecimal(specialReduction)
	if !ok {
		slog.Warn("Non-finite special reduction, ignored", "value", specialReduction)
	}

	total := base.Mul(multiplier).Sub(reduction)
	return total.InexactFloat64()
}

// toDecimal reports false for NaN and infinities, which decimal.NewFromFloat
// panics on.
func toDecimal(v float64) (decimal.Decimal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(v), true
}

// DescribeSelections renders the chosen configuration as
// "Intel i5 * 1 | DDR5 16GB * 2", skipping empty and unknown picks.
func DescribeSelections(cat domain.Catalog, selections []domain.Selection) string {
	parts := make([]string, 0, len(selections))
	for _, sel := range selections {
		if sel.ItemID == "" || sel.ItemID == domain.PlaceholderID(sel.Category) || sel.Quantity <= 0 {
			continue
		}
		comp, ok := cat.FindComponent(sel.Category, sel.ItemID)
		if !ok {
			continue
		}
		parts = append(parts, comp.Name+" * "+strconv.FormatFloat(sel.Quantity, 'f', -1, 64))
	}
	return strings.Join(parts, " | ")
}
