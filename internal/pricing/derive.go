// Package pricing turns a foreign-currency unit cost into a local cash
// price and derives card-installment amounts that net the seller exactly
// that cash price.
//
// Everything here is pure: the same inputs always produce the same
// outputs and nothing is cached between calls.
package pricing

import "math"

const (
	DefaultExchangeRate = 5.50
	DefaultImportFeePct = 5.0
	DefaultMarginPct    = 5.0
	DefaultUSDPrice     = 800.0
	DefaultProductName  = "Iphone 16 / 125gb"

	roundingStep = 5.0
)

// Inputs are the already-coerced numeric inputs of Derive.
type Inputs struct {
	ForeignPrice  float64 `json:"foreign_price"`
	ExchangeRate  float64 `json:"exchange_rate"`
	ImportFeePct  float64 `json:"import_fee_pct"`
	MarginPct     float64 `json:"margin_pct"`
	SmartRounding bool    `json:"smart_rounding"`
}

// CostBreakdown is the result of Derive. TotalCost + Profit equals
// FinalCashPrice in both rounding modes.
type CostBreakdown struct {
	BaseCost       float64 `json:"base_cost"`
	ImportFee      float64 `json:"import_fee"`
	TotalCost      float64 `json:"total_cost"`
	Profit         float64 `json:"profit"`
	RawCashPrice   float64 `json:"raw_cash_price"`
	FinalCashPrice float64 `json:"final_cash_price"`
	Rounded        bool    `json:"rounded"`
}

// DefaultInputs mirrors the calculator's initial screen.
func DefaultInputs() Inputs {
	return Inputs{
		ForeignPrice:  DefaultUSDPrice,
		ExchangeRate:  DefaultExchangeRate,
		ImportFeePct:  DefaultImportFeePct,
		MarginPct:     DefaultMarginPct,
		SmartRounding: true,
	}
}

// Derive converts the foreign price, adds the import fee and the margin and
// optionally rounds the result to the nearest multiple of 5. When rounding
// applies, profit is back-solved from the rounded price so it absorbs the
// rounding delta.
func Derive(in Inputs) CostBreakdown {
	baseCost := in.ForeignPrice * in.ExchangeRate
	importFee := baseCost * in.ImportFeePct / 100
	totalCost := baseCost + importFee
	profit := totalCost * in.MarginPct / 100
	rawCashPrice := totalCost + profit

	finalCashPrice := rawCashPrice
	if in.SmartRounding {
		finalCashPrice = RoundToMultipleOf5(rawCashPrice)
		profit = finalCashPrice - totalCost
	}

	return CostBreakdown{
		BaseCost:       baseCost,
		ImportFee:      importFee,
		TotalCost:      totalCost,
		Profit:         profit,
		RawCashPrice:   rawCashPrice,
		FinalCashPrice: finalCashPrice,
		Rounded:        in.SmartRounding,
	}
}

// RoundToMultipleOf5 rounds v to the nearest multiple of 5, ties away from
// zero (4852.5 -> 4855).
func RoundToMultipleOf5(v float64) float64 {
	return math.Round(v/roundingStep) * roundingStep
}

// Slice is one part of the cash price, used to draw the cost composition.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
}

// Composition splits the cash price into base cost, import fee and profit.
// Shares are fractions of FinalCashPrice and are all zero when the price
// is zero.
func Composition(b CostBreakdown) []Slice {
	slices := []Slice{
		{Name: "Custo Base", Value: b.BaseCost},
		{Name: "Taxa Import.", Value: b.ImportFee},
		{Name: "Lucro/Venda", Value: b.Profit},
	}
	if b.FinalCashPrice == 0 {
		return slices
	}
	for i := range slices {
		slices[i].Share = slices[i].Value / b.FinalCashPrice
	}
	return slices
}
