package pricing

import (
	"fmt"
	"strings"
)

// Installment counts quoted in the shareable offer.
var offerPlans = [...]int{6, 10, 12}

// OfferText builds the shareable offer for product at cash price, quoting
// the 6x, 10x and 12x plans of profile:
//
//	📲Iphone 16 / 125gb
//	R$: 4.850,00 a vista.
//	💳6x R$881,31 | 10x R$545,31 | 12x R$461,38
//	*juros por conta do comprador.
func OfferText(product string, cash float64, profile FeeProfile) string {
	plans := make([]string, 0, len(offerPlans))
	for _, n := range offerPlans {
		row := creditRow(cash, profile, n)
		plans = append(plans, fmt.Sprintf("%dx R$%s", n, FormatNumber(row.PerInstallment)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📲%s\n", product)
	fmt.Fprintf(&b, "R$: %s a vista.\n", FormatNumber(cash))
	fmt.Fprintf(&b, "💳%s\n", strings.Join(plans, " | "))
	b.WriteString("*juros por conta do comprador.")
	return b.String()
}
