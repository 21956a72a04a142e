// internal/bot/parse.go
package bot

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"hw-quote/internal/domain"
	"hw-quote/internal/pricing"

	"golang.org/x/text/encoding/charmap"
)

// ParseCalc reads the arguments of /calc and /quote:
//
//	cpu_1*2 ram_3 discount=vip minus=500
//
// Items without "*qty" count once. Commas work as separators too.
func ParseCalc(args string) (pricing.Input, error) {
	in := pricing.Input{}
	fields := strings.FieldsFunc(args, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return in, fmt.Errorf("no items given, e.g. /calc cpu_1*2 ram_1 discount=vip minus=100")
	}

	for _, f := range fields {
		switch {
		case strings.HasPrefix(f, "discount="):
			in.DiscountID = strings.TrimPrefix(f, "discount=")

		case strings.HasPrefix(f, "minus="):
			v, err := parseFinite(strings.TrimPrefix(f, "minus="))
			if err != nil {
				return in, fmt.Errorf("invalid reduction: %q", f)
			}
			in.SpecialReduction = v

		default:
			itemID, qtyStr, hasQty := strings.Cut(f, "*")
			qty := 1.0
			if hasQty {
				v, err := parseFinite(qtyStr)
				if err != nil {
					return in, fmt.Errorf("invalid quantity: %q", f)
				}
				qty = v
			}
			category, ok := domain.CategoryOf(itemID)
			if !ok {
				return in, fmt.Errorf("invalid item id: %q (expected category_N)", itemID)
			}
			in.Selections = append(in.Selections, domain.Selection{
				Category: category,
				ItemID:   itemID,
				Quantity: qty,
			})
		}
	}
	return in, nil
}

// parseFinite is strconv.ParseFloat without NaN and infinities.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// SplitCommand separates "/calc@MyBot cpu_1" into ("/calc", "cpu_1").
func SplitCommand(text string) (cmd, args string) {
	text = strings.TrimSpace(text)
	cmd, args, _ = strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

// FixEncoding repairs Windows-1251 text that arrives as invalid UTF-8.
func FixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}
	return strings.ToValidUTF8(s, "")
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
