// Package payment scores OCR text from a payment screenshot against an invoice.
package payment

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"onebill/internal/domain"
)

// Score weights and verdict thresholds.
const (
	WeightAmount     = 40
	WeightSuccess    = 20
	WeightUTR        = 20
	WeightDate       = 10
	WeightConfidence = 10

	VerifiedScore = 80
	FailedBelow   = 40

	minConfidence = 70
)

var (
	utrPattern      = regexp.MustCompile(`\b\d{12}\b`)
	successKeywords = []string{"successful", "paid", "success", "completed", "payment done"}
)

// AnalysisInput is the OCR output for a screenshot plus the invoice it should pay.
type AnalysisInput struct {
	Text       string
	Confidence float64
	GrandTotal decimal.Decimal
	Now        time.Time
}

// Analysis is the scored outcome of a screenshot.
type Analysis struct {
	Verdict      domain.PaymentVerdict `json:"verdict"`
	Score        int                   `json:"score"`
	FoundAmount  bool                  `json:"found_amount"`
	FoundSuccess bool                  `json:"found_success"`
	FoundUTR     bool                  `json:"found_utr"`
	FoundDate    bool                  `json:"found_date"`
	UTR          string                `json:"utr,omitempty"`
	Confidence   float64               `json:"confidence"`
	Reasons      []string              `json:"reasons"`
}

// Analyze applies the screenshot heuristics: amount match, success wording,
// a 12-digit UPI reference, today's date and OCR confidence.
func Analyze(in AnalysisInput) Analysis {
	text := strings.ToLower(in.Text)
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	a := Analysis{Confidence: in.Confidence, Reasons: []string{}}

	if containsAmount(text, in.GrandTotal) {
		a.FoundAmount = true
		a.Score += WeightAmount
		a.Reasons = append(a.Reasons, "amount matches invoice total")
	}
	for _, kw := range successKeywords {
		if strings.Contains(text, kw) {
			a.FoundSuccess = true
			a.Score += WeightSuccess
			a.Reasons = append(a.Reasons, "success keyword found")
			break
		}
	}
	if utr := utrPattern.FindString(text); utr != "" {
		a.FoundUTR = true
		a.UTR = utr
		a.Score += WeightUTR
		a.Reasons = append(a.Reasons, "UPI reference found")
	}
	if containsDate(text, now) {
		a.FoundDate = true
		a.Score += WeightDate
		a.Reasons = append(a.Reasons, "payment dated today")
	}
	if in.Confidence > minConfidence {
		a.Score += WeightConfidence
		a.Reasons = append(a.Reasons, "OCR confidence high")
	}

	switch {
	case a.Score >= VerifiedScore:
		a.Verdict = domain.PaymentVerified
	case a.Score < FailedBelow:
		a.Verdict = domain.PaymentFailed
	default:
		a.Verdict = domain.PaymentManualReview
	}
	return a
}

func containsAmount(text string, total decimal.Decimal) bool {
	fixed := total.StringFixed(2)
	return strings.Contains(text, fixed) ||
		strings.Contains(text, "₹"+fixed) ||
		strings.Contains(text, strings.Replace(fixed, ".", "", 1))
}

func containsDate(text string, now time.Time) bool {
	forms := []string{
		now.Format("02/01/2006"),
		now.Format("2/1/2006"),
		now.Format("2006-01-02"),
		strings.ToLower(now.Format("Jan 2")),
	}
	for _, f := range forms {
		if strings.Contains(text, f) {
			return true
		}
	}
	return false
}
