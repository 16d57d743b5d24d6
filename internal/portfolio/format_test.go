package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"typical ratio", 0.1234, "12.34%"},
		{"zero", 0, "0.00%"},
		{"negative", -0.2, "-20.00%"},
		{"whole number", 1, "100.00%"},
		{"rounds to two decimals", 0.123456, "12.35%"},
		{"nan renders verbatim", math.NaN(), "NaN%"},
		{"positive infinity renders verbatim", math.Inf(1), "+Inf%"},
		{"negative infinity renders verbatim", math.Inf(-1), "-Inf%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPercentage(tt.input))
		})
	}
}

func TestFormatPercentageDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "12.34%", FormatPercentage(0.1234))
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"whole dollars", 10, "$10.00"},
		{"cents", 1234.5, "$1234.50"},
		{"no thousands separators", 1000000, "$1000000.00"},
		{"negative", -42.1, "$-42.10"},
		{"infinity renders verbatim", math.Inf(1), "$+Inf"},
		{"nan renders verbatim", math.NaN(), "$NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.input))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Buy", Capitalize("buy"))
	assert.Equal(t, "Sell", Capitalize("sell"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Already", Capitalize("Already"))
}

func TestDateOnly(t *testing.T) {
	assert.Equal(t, "2024-03-01", DateOnly("2024-03-01 14:05:00"))
	assert.Equal(t, "2024-03-01", DateOnly("2024-03-01"))
	assert.Equal(t, "", DateOnly(""))
}
