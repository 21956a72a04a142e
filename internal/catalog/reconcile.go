// internal/catalog/reconcile.go
package catalog

import (
	"errors"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"hw-quote/internal/domain"

	"github.com/shopspring/decimal"
)

// Form key families of the admin submission:
//
//	component-{category}-{index}-{name|price}
//	discount-{index}-{name|multiplier}
const (
	componentPrefix = "component-"
	discountPrefix  = "discount-"
)

// Reconcile rebuilds components and discounts from a flat admin form.
// Categories are passed through from current untouched. Invalid rows
// (blank name, unparsable number) are skipped and logged, never returned
// as errors.
func Reconcile(current domain.Catalog, submission map[string]string) domain.Catalog {
	out := domain.Catalog{
		Categories: current.Categories,
		Components: reconcileComponents(submission),
		Discounts:  reconcileDiscounts(submission),
	}
	out.Normalize()
	return out
}

func reconcileComponents(submission map[string]string) map[string][]domain.Component {
	indices := map[string]map[string]struct{}{}
	for key := range submission {
		category, index, ok := parseComponentKey(key)
		if !ok {
			continue
		}
		if indices[category] == nil {
			indices[category] = map[string]struct{}{}
		}
		indices[category][index] = struct{}{}
	}

	components := make(map[string][]domain.Component, len(indices))
	for category, set := range indices {
		list := []domain.Component{domain.NewPlaceholder(category)}

		for _, index := range sortedIndices(set) {
			prefix := componentPrefix + category + "-" + index + "-"

			name := strings.TrimSpace(submission[prefix+"name"])
			if name == "" {
				continue
			}

			priceStr, ok := submission[prefix+"price"]
			if !ok {
				priceStr = "0"
			}
			price, err := parseNumber(priceStr)
			if err != nil {
				slog.Warn("Invalid component price, entry skipped",
					"category", category, "index", index, "name", name, "price", priceStr)
				continue
			}

			// id считается от уже принятых строк, а не от индекса формы
			list = append(list, domain.Component{
				ID:    domain.ComponentID(category, len(list)),
				Name:  name,
				Price: price,
			})
		}

		components[category] = list
	}
	return components
}

func reconcileDiscounts(submission map[string]string) []domain.Discount {
	set := map[string]struct{}{}
	for key := range submission {
		if index, ok := parseDiscountKey(key); ok {
			set[index] = struct{}{}
		}
	}

	discounts := []domain.Discount{}
	for _, index := range sortedIndices(set) {
		prefix := discountPrefix + index + "-"

		name := strings.TrimSpace(submission[prefix+"name"])
		if name == "" {
			continue
		}

		multStr, ok := submission[prefix+"multiplier"]
		if !ok {
			multStr = "1.0"
		}
		mult, err := parseNumber(multStr)
		if err != nil {
			slog.Warn("Invalid discount multiplier, entry skipped",
				"index", index, "name", name, "multiplier", multStr)
			continue
		}

		discounts = append(discounts, domain.Discount{
			ID:         domain.DiscountID(name),
			Name:       name,
			Multiplier: mult,
		})
	}
	return discounts
}

// parseComponentKey splits component-{category}-{index}-{field}. The key is
// read from the right so a category may itself contain dashes.
func parseComponentKey(key string) (category, index string, ok bool) {
	rest, found := strings.CutPrefix(key, componentPrefix)
	if !found {
		return "", "", false
	}
	parts := strings.Split(rest, "-")
	if len(parts) < 3 {
		slog.Debug("Malformed component key ignored", "key", key)
		return "", "", false
	}
	index = parts[len(parts)-2]
	category = strings.Join(parts[:len(parts)-2], "-")
	if category == "" || !validIndex(index) {
		slog.Warn("Malformed component key ignored", "key", key)
		return "", "", false
	}
	return category, index, true
}

func parseDiscountKey(key string) (index string, ok bool) {
	rest, found := strings.CutPrefix(key, discountPrefix)
	if !found {
		return "", false
	}
	parts := strings.Split(rest, "-")
	if len(parts) != 2 || !validIndex(parts[0]) {
		slog.Warn("Malformed discount key ignored", "key", key)
		return "", false
	}
	return parts[0], true
}

func validIndex(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}

// sortedIndices orders index strings numerically ("2" before "10").
func sortedIndices(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i])
		b, _ := strconv.Atoi(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}

var errOutOfRange = errors.New("number out of float64 range")

// parseNumber accepts decimal notation with optional exponent. NaN,
// infinities and values that overflow float64 ("1e400") are rejected.
func parseNumber(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errOutOfRange
	}
	return f, nil
}
