package pricing

import (
	"math"
	"strconv"
	"strings"
)

// RawInputs are the calculator fields as the user typed them.
type RawInputs struct {
	ForeignPrice  string `json:"foreign_price"`
	ExchangeRate  string `json:"exchange_rate"`
	ImportFeePct  string `json:"import_fee_pct"`
	MarginPct     string `json:"margin_pct"`
	SmartRounding bool   `json:"smart_rounding"`
}

// ParseAmount reads a number typed by a user. A single comma is taken as
// the decimal separator. Blank, partial or otherwise invalid text reads
// as 0 so that half-typed values never block a recalculation.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseInputs coerces every field with ParseAmount.
func ParseInputs(raw RawInputs) Inputs {
	return Inputs{
		ForeignPrice:  ParseAmount(raw.ForeignPrice),
		ExchangeRate:  ParseAmount(raw.ExchangeRate),
		ImportFeePct:  ParseAmount(raw.ImportFeePct),
		MarginPct:     ParseAmount(raw.MarginPct),
		SmartRounding: raw.SmartRounding,
	}
}

// DefaultRawInputs is DefaultInputs in text form.
func DefaultRawInputs() RawInputs {
	return RawInputs{
		ForeignPrice:  strconv.FormatFloat(DefaultUSDPrice, 'f', -1, 64),
		ExchangeRate:  strconv.FormatFloat(DefaultExchangeRate, 'f', -1, 64),
		ImportFeePct:  strconv.FormatFloat(DefaultImportFeePct, 'f', -1, 64),
		MarginPct:     strconv.FormatFloat(DefaultMarginPct, 'f', -1, 64),
		SmartRounding: true,
	}
}
