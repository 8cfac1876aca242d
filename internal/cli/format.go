// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/roombudget/internal/catalog"
)

// FormatCurrency formats a whole-unit USD amount with thousands separators.
// e.g., 2129 -> "$2,129", -50 -> "-$50"
func FormatCurrency(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

// FormatRange formats a price range, e.g. "$700 - $2,500".
func FormatRange(r catalog.Range) string {
	return FormatCurrency(r.Min) + " - " + FormatCurrency(r.Max)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a rate already expressed in percent.
// e.g., 6.25 -> "6.25%", 3 -> "3%"
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// FormatDelta formats the difference between two amounts with a sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCurrency(delta)
	}
	return "-" + FormatCurrency(-delta)
}
