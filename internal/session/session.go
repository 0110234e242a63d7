// Package session keeps the calculator fields of each chat between
// messages. Sessions expire; nothing outlives the TTL.
package session

import (
	"context"
	"errors"
	"strconv"

	"github.com/th3funto/ninja-store/internal/pricing"
)

// ErrNotFound is returned by a Store when a chat has no live session.
var ErrNotFound = errors.New("session not found")

// Step is the input the chat is currently expected to type.
type Step string

const (
	StepIdle         Step = ""
	StepProductName  Step = "product_name"
	StepUSDPrice     Step = "usd_price"
	StepExchangeRate Step = "exchange_rate"
	StepImportFee    Step = "import_fee"
	StepMargin       Step = "margin"
)

// Session is a chat's calculator. Numeric fields stay as typed and are
// coerced only when computing.
type Session struct {
	Step        Step              `json:"step"`
	ProductName string            `json:"product_name"`
	Inputs      pricing.RawInputs `json:"inputs"`
	Profile     pricing.ProfileID `json:"profile"`
}

// Breakdown recomputes the price from the current fields.
func (s Session) Breakdown() pricing.CostBreakdown {
	return pricing.Derive(pricing.ParseInputs(s.Inputs))
}

// FeeProfile resolves the selected card profile.
func (s Session) FeeProfile() (pricing.FeeProfile, error) {
	return pricing.Profile(s.Profile)
}

// Defaults seeds new and reset sessions.
type Defaults struct {
	ProductName string
	Inputs      pricing.Inputs
	Profile     pricing.ProfileID
}

// DefaultDefaults is the calculator's initial screen.
func DefaultDefaults() Defaults {
	return Defaults{
		ProductName: pricing.DefaultProductName,
		Inputs:      pricing.DefaultInputs(),
		Profile:     pricing.VisaMasterID,
	}
}

func (d Defaults) New() Session {
	return Session{
		ProductName: d.ProductName,
		Inputs: pricing.RawInputs{
			ForeignPrice:  formatInput(d.Inputs.ForeignPrice),
			ExchangeRate:  formatInput(d.Inputs.ExchangeRate),
			ImportFeePct:  formatInput(d.Inputs.ImportFeePct),
			MarginPct:     formatInput(d.Inputs.MarginPct),
			SmartRounding: d.Inputs.SmartRounding,
		},
		Profile: d.Profile,
	}
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Store persists sessions for their TTL.
type Store interface {
	Get(ctx context.Context, chatID int64) (Session, error)
	Save(ctx context.Context, chatID int64, s Session) error
	Clear(ctx context.Context, chatID int64) error
}
