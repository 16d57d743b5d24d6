package portfolio

import (
	"math"

	"github.com/withlaguna/stonks-page/internal/models"
)

// Return computes a holding's total percentage return as a ratio.
// A zero cost basis yields +/-Inf (or NaN for 0/0); callers render these
// verbatim rather than trapping them.
func Return(value, costBasis float64) float64 {
	return value/costBasis - 1
}

// Denominator picks the return-calculation denominator for a holding: the
// cost basis when present and usable, else the quantity. The fallback is a
// deliberate approximation for positions such as cash that carry no cost
// basis, not a precise financial return.
func Denominator(costBasis *float64, quantity float64) float64 {
	if costBasis != nil && *costBasis != 0 && !math.IsNaN(*costBasis) {
		return *costBasis
	}
	return quantity
}

// PortfolioTotal sums institution value over the full snapshot, currency
// positions included. Allocation percentages are always taken against the
// whole account value even when currency rows are hidden from display.
func PortfolioTotal(holdings []models.Holding) float64 {
	var total float64
	for _, h := range holdings {
		total += h.InstitutionValue
	}
	return total
}

// Derive decorates each holding with its percentage return and allocation.
// The input snapshot is never mutated.
func Derive(holdings []models.Holding) []models.DerivedHolding {
	total := PortfolioTotal(holdings)
	out := make([]models.DerivedHolding, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, models.DerivedHolding{
			Holding:          h,
			PercentageReturn: Return(h.InstitutionValue, Denominator(h.CostBasis, h.Quantity)),
			Allocation:       h.InstitutionValue / total,
		})
	}
	return out
}
