package report

import "github.com/shopspring/decimal"

// Tone is the presentation hint attached to a performance label.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// Label describes period-over-period performance.
type Label struct {
	Label  string          `json:"label"`
	Tone   Tone            `json:"type"`
	Growth decimal.Decimal `json:"growth_percent"`
}

var (
	growthBetter = decimal.NewFromInt(20)
	growthWorse  = decimal.NewFromInt(-20)
	hundred      = decimal.NewFromInt(100)
)

// Performance labels current against previous. Growth is a percentage of previous.
// With no previous value, any non-zero current value is labelled High Growth Potential.
func Performance(current, previous decimal.Decimal) Label {
	if previous.IsZero() {
		switch {
		case current.IsPositive():
			return Label{Label: "High Growth Potential", Tone: TonePositive, Growth: decimal.Zero}
		case current.IsZero():
			return Label{Label: "Can Be Improved", Tone: ToneNeutral, Growth: decimal.Zero}
		default:
			return Label{Label: "High Growth Potential", Tone: ToneNeutral, Growth: decimal.Zero}
		}
	}

	growth := current.Sub(previous).Div(previous).Mul(hundred)
	shown := growth.Round(2)
	switch {
	case growth.GreaterThanOrEqual(growthBetter):
		return Label{Label: "Better", Tone: TonePositive, Growth: shown}
	case !growth.IsNegative():
		return Label{Label: "Can Be Improved", Tone: ToneNeutral, Growth: shown}
	case growth.GreaterThanOrEqual(growthWorse):
		return Label{Label: "Worse", Tone: ToneNegative, Growth: shown}
	default:
		return Label{Label: "High Growth Potential", Tone: ToneNeutral, Growth: shown}
	}
}
