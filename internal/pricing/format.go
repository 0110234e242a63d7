package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// currencyPrefix matches pt-BR Intl output, which puts a no-break space
// after the symbol.
const currencyPrefix = "R$\u00a0"

// FormatNumber renders v the pt-BR way with two decimals: 4.851,00.
// Halves round away from zero. Only the returned text is rounded.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}

	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	_, frac, _ := strings.Cut(d.StringFixed(2), ".")
	whole := strings.ReplaceAll(humanize.BigComma(d.BigInt()), ",", ".")
	return sign + whole + "," + frac
}

// FormatBRL renders v as Brazilian Real: R$ 4.851,00.
func FormatBRL(v float64) string {
	s := FormatNumber(v)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-" + currencyPrefix + rest
	}
	return currencyPrefix + s
}

// FormatRate renders a percentage rate with two decimals: 8.28%.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}
