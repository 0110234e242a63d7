package pricing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/th3funto/ninja-store/internal/pricing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"800", 800},
		{" 5.50 ", 5.5},
		{"5,50", 5.5},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"12abc", 0},
		{"1.234,56", 0},
		{"-3", -3},
		{"NaN", 0},
		{"Inf", 0},
		{"1e400", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pricing.ParseAmount(tt.in), "ParseAmount(%q)", tt.in)
	}
}

func TestParseInputs(t *testing.T) {
	in := pricing.ParseInputs(pricing.RawInputs{
		ForeignPrice:  "800",
		ExchangeRate:  "5,5",
		ImportFeePct:  "",
		MarginPct:     "x",
		SmartRounding: true,
	})

	assert.Equal(t, pricing.Inputs{ForeignPrice: 800, ExchangeRate: 5.5, SmartRounding: true}, in)
	assert.Equal(t, pricing.DefaultInputs(), pricing.ParseInputs(pricing.DefaultRawInputs()))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4851, "4.851,00"},
		{0, "0,00"},
		{881.3054222997529, "881,31"},
		{545.3114459185969, "545,31"},
		{1234567.891, "1.234.567,89"},
		{999.995, "1.000,00"},
		{0.125, "0,13"},
		{-1500.5, "-1.500,50"},
		{-0.001, "0,00"},
		{math.Inf(1), "∞"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pricing.FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$\u00a04.850,00", pricing.FormatBRL(4850))
	assert.Equal(t, "-R$\u00a010,00", pricing.FormatBRL(-10))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "8.28%", pricing.FormatRate(8.28))
	assert.Equal(t, "12.40%", pricing.FormatRate(12.4))
}

func TestFormatting_DoesNotChangeValues(t *testing.T) {
	v := 881.3054222997529
	_ = pricing.FormatBRL(v)
	assert.Equal(t, 881.3054222997529, v)
	assert.Equal(t, pricing.FormatNumber(v), pricing.FormatNumber(v))
}
