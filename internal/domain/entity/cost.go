package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CostFigure is a cost amount in a single currency, as reported by the
// billing API for one query window.
type CostFigure struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ZeroCost returns a zero figure in the given currency. It stands in for
// windows the billing API holds no data for.
func ZeroCost(currency string) CostFigure {
	return CostFigure{Amount: decimal.Zero, Currency: currency}
}

// Direction classifies a period-over-period cost movement.
type Direction int

const (
	DirectionFlat Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "flat"
	}
}

// MarshalText renders the direction for JSON and YAML exports.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a direction written by MarshalText.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "up":
		*d = DirectionUp
	case "down":
		*d = DirectionDown
	case "flat":
		*d = DirectionFlat
	default:
		return fmt.Errorf("unknown direction %q", string(text))
	}
	return nil
}

// Comparison relates a current-period cost to its prior-period baseline.
// PercentChange carries the exact decimal result; rounding and sign
// decoration belong to the presentation layer. When NewSpend is set the
// baseline was zero, no ratio exists, and PercentChange must not be
// rendered as a number.
type Comparison struct {
	Current       CostFigure      `json:"current"`
	Previous      CostFigure      `json:"previous"`
	PercentChange decimal.Decimal `json:"percent_change"`
	Direction     Direction       `json:"direction"`
	NewSpend      bool            `json:"new_spend,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// Compare computes the signed percentage change from previous to current,
// (current - previous) / previous * 100. Spend appearing against a zero
// baseline has no defined ratio and comes back flagged as new spend.
func Compare(current, previous CostFigure) Comparison {
	cmp := Comparison{Current: current, Previous: previous}

	switch {
	case previous.Amount.IsZero() && current.Amount.IsZero():
		cmp.Direction = DirectionFlat
	case previous.Amount.IsZero():
		cmp.NewSpend = true
		if current.Amount.IsNegative() {
			cmp.Direction = DirectionDown
		} else {
			cmp.Direction = DirectionUp
		}
	default:
		cmp.PercentChange = current.Amount.Sub(previous.Amount).Div(previous.Amount).Mul(hundred)
		switch {
		case cmp.PercentChange.IsPositive():
			cmp.Direction = DirectionUp
		case cmp.PercentChange.IsNegative():
			cmp.Direction = DirectionDown
		default:
			cmp.Direction = DirectionFlat
		}
	}
	return cmp
}
