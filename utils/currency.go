package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyEUR formats an amount as a euro string with thousands
// separators, e.g. 15000.5 -> "15.000,50 €".
func FormatCurrencyEUR(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	negative := strings.HasPrefix(formatted, "-")
	formatted = strings.TrimPrefix(formatted, "-")

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := strings.Join(groups, ".") + "," + decimalPart
	if negative {
		result = "-" + result
	}
	return result + " €"
}
