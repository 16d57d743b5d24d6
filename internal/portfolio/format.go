package portfolio

import (
	"strconv"
	"strings"
	"unicode"
)

// FormatPercentage renders a ratio as a percentage with two decimals:
// 0.1234 -> "12.34%". NaN and infinite inputs render verbatim ("NaN%",
// "+Inf%"), matching how the page has always displayed degenerate returns.
func FormatPercentage(x float64) string {
	return strconv.FormatFloat(x*100, 'f', 2, 64) + "%"
}

// FormatCurrency renders a dollar amount with two decimals: 10 -> "$10.00".
// No thousands separators; the page never used them.
func FormatCurrency(x float64) string {
	return "$" + strconv.FormatFloat(x, 'f', 2, 64)
}

// FormatQuantity renders a share quantity with its natural precision.
func FormatQuantity(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Capitalize upper-cases the first rune: "buy" -> "Buy".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// DateOnly strips any time-of-day suffix from a trade date by cutting at
// the first space: "2024-03-01 14:05:00" -> "2024-03-01".
func DateOnly(s string) string {
	date, _, _ := strings.Cut(s, " ")
	return date
}
