package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/withlaguna/stonks-page/internal/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestReturn(t *testing.T) {
	assert.Equal(t, 0.5, Return(150, 100))
	assert.Equal(t, -0.5, Return(50, 100))
	assert.Equal(t, 0.0, Return(100, 100))
}

func TestReturnZeroCostBasisPropagates(t *testing.T) {
	// Division by zero is propagated, never trapped.
	assert.True(t, math.IsInf(Return(100, 0), 1))
	assert.True(t, math.IsInf(Return(-100, 0), -1))
	assert.True(t, math.IsNaN(Return(0, 0)))
}

func TestDenominator(t *testing.T) {
	tests := []struct {
		name      string
		costBasis *float64
		quantity  float64
		expected  float64
	}{
		{"uses cost basis when present", floatPtr(80), 10, 80},
		{"falls back on nil cost basis", nil, 10, 10},
		{"falls back on zero cost basis", floatPtr(0), 10, 10},
		{"falls back on NaN cost basis", floatPtr(math.NaN()), 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Denominator(tt.costBasis, tt.quantity))
		})
	}
}

func TestPortfolioTotalIncludesCurrencyPositions(t *testing.T) {
	holdings := []models.Holding{
		{TickerSymbol: "AAPL", InstitutionValue: 100},
		{TickerSymbol: "CUR:USD", InstitutionValue: 50},
		{TickerSymbol: "MSFT", InstitutionValue: 200},
	}
	assert.Equal(t, 350.0, PortfolioTotal(holdings))
}

func TestDerive(t *testing.T) {
	holdings := []models.Holding{
		{TickerSymbol: "AAPL", InstitutionValue: 100, CostBasis: floatPtr(80), Quantity: 5},
		{TickerSymbol: "CASH", InstitutionValue: 100, CostBasis: nil, Quantity: 100},
	}

	derived := Derive(holdings)

	assert.Len(t, derived, 2)
	assert.InDelta(t, 0.25, derived[0].PercentageReturn, 1e-9)
	assert.InDelta(t, 0.5, derived[0].Allocation, 1e-9)
	// Cash position returns value/quantity - 1.
	assert.InDelta(t, 0.0, derived[1].PercentageReturn, 1e-9)
	assert.InDelta(t, 0.5, derived[1].Allocation, 1e-9)
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	holdings := []models.Holding{
		{TickerSymbol: "AAPL", InstitutionValue: 100, CostBasis: floatPtr(80), Quantity: 5},
	}
	before := holdings[0]
	Derive(holdings)
	assert.Equal(t, before, holdings[0])
}
