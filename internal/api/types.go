package api

import (
	"bytes"
	"encoding/json"

	"github.com/th3funto/ninja-store/internal/pricing"
)

// Number accepts a JSON number or a string holding one. Anything that
// does not parse decodes as 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(pricing.ParseAmount(s))
		return nil
	}
	*n = Number(pricing.ParseAmount(string(data)))
	return nil
}

// QuoteRequest fields left out of the body take the server defaults.
type QuoteRequest struct {
	Product       *string           `json:"product"`
	USDPrice      *Number           `json:"usd_price"`
	ExchangeRate  *Number           `json:"exchange_rate"`
	ImportFeePct  *Number           `json:"import_fee_pct"`
	MarginPct     *Number           `json:"margin_pct"`
	SmartRounding *bool             `json:"smart_rounding"`
	Profile       pricing.ProfileID `json:"profile"`
}

type QuoteResponse struct {
	Product      string                   `json:"product"`
	Inputs       pricing.Inputs           `json:"inputs"`
	Breakdown    pricing.CostBreakdown    `json:"breakdown"`
	Composition  []pricing.Slice          `json:"composition"`
	Profile      pricing.FeeProfile       `json:"profile"`
	Installments []pricing.InstallmentRow `json:"installments"`
	Offer        string                   `json:"offer"`
}

type InstallmentsResponse struct {
	Cash         float64                  `json:"cash"`
	Profile      pricing.FeeProfile       `json:"profile"`
	Installments []pricing.InstallmentRow `json:"installments"`
}

type errorResponse struct {
	Error string `json:"error"`
}
