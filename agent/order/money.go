package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP renders an amount as Colombian pesos with thousands separators
// and no cents, e.g. $100,000 COP. All customer-facing amounts use it.
func FormatCOP(amount decimal.Decimal) string {
	raw := amount.Round(0).String()

	negative := strings.HasPrefix(raw, "-")
	digits := strings.TrimPrefix(raw, "-")

	var b strings.Builder
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}

	if negative {
		return "-$" + b.String() + " COP"
	}
	return "$" + b.String() + " COP"
}
