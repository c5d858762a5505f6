package gst

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Round2 rounds to two decimal places, half away from zero.
// Amounts are exact decimals, so no representation-error guard is needed.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// percentOf returns amount * rate / 100, unrounded.
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}
