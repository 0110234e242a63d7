package pricing

import "fmt"

const DebitLabel = "Débito"

// InstallmentRow is one line of the installment table.
type InstallmentRow struct {
	Label          string  `json:"label"`
	Debit          bool    `json:"debit"`
	Count          int     `json:"count"`
	Rate           float64 `json:"rate"`
	TotalCharge    float64 `json:"total_charge"`
	PerInstallment float64 `json:"per_installment"`
}

// GrossUp returns the amount to bill so that, after the processor keeps
// ratePct percent of it, exactly cash is left. Rates of 100% or more have
// no such amount and yield 0.
func GrossUp(cash, ratePct float64) float64 {
	if ratePct >= 100 {
		return 0
	}
	return cash / (1 - ratePct/100)
}

func newRow(label string, debit bool, count int, cash, rate float64) InstallmentRow {
	total := GrossUp(cash, rate)
	return InstallmentRow{
		Label:          label,
		Debit:          debit,
		Count:          count,
		Rate:           rate,
		TotalCharge:    total,
		PerInstallment: total / float64(count),
	}
}

// CreditLabel is the display label of an n-installment credit row.
func CreditLabel(n int) string {
	return fmt.Sprintf("%dx Crédito", n)
}

// Project builds the 13-row table for cash under profile: debit first,
// then credit 1x through 12x.
func Project(cash float64, profile FeeProfile) []InstallmentRow {
	rows := make([]InstallmentRow, 0, MaxInstallments+1)
	rows = append(rows, newRow(DebitLabel, true, 1, cash, profile.Debit))
	for n := 1; n <= MaxInstallments; n++ {
		rows = append(rows, creditRow(cash, profile, n))
	}
	return rows
}

func creditRow(cash float64, profile FeeProfile, n int) InstallmentRow {
	return newRow(CreditLabel(n), false, n, cash, profile.Credit[n-1])
}

// Quote computes a single credit plan of n installments.
func Quote(cash float64, profile FeeProfile, n int) (InstallmentRow, error) {
	if _, err := profile.CreditRate(n); err != nil {
		return InstallmentRow{}, err
	}
	return creditRow(cash, profile, n), nil
}
