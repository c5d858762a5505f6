// Package check runs pre-issue rules over an invoice draft.
package check

import (
	"context"

	"onebill/internal/gst"
	"onebill/internal/hsn"
)

// Severity decides whether a failed rule blocks the invoice.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Draft is the invoice data the rules look at.
type Draft struct {
	BusinessGSTIN string
	BusinessState string
	ClientGSTIN   string
	ClientState   string
	IsGST         bool
	LineItems     []gst.LineItem
}

// Result is the outcome of one rule against one field.
type Result struct {
	RuleKey   string   `json:"rule_key"`
	Severity  Severity `json:"severity"`
	Passed    bool     `json:"passed"`
	FieldPath string   `json:"field_path"`
	Expected  string   `json:"expected,omitempty"`
	Actual    string   `json:"actual,omitempty"`
	Message   string   `json:"message"`
}

// Rule wraps a check function and its metadata.
type Rule struct {
	key  string
	name string
	sev  Severity
	fn   func(context.Context, *Draft) []Result
}

func (r *Rule) Key() string        { return r.key }
func (r *Rule) Name() string       { return r.name }
func (r *Rule) Severity() Severity { return r.sev }

// Check runs the rule and stamps its key and severity on every result.
func (r *Rule) Check(ctx context.Context, d *Draft) []Result {
	results := r.fn(ctx, d)
	for i := range results {
		results[i].RuleKey = r.key
		results[i].Severity = r.sev
	}
	return results
}

// Report collects the failed results of a run.
type Report struct {
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Checked  int      `json:"checked"`
}

// HasErrors reports whether any error-severity rule failed.
func (r Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Checker holds the rule set.
type Checker struct {
	rules []*Rule
}

// NewChecker builds a Checker with the built-in rules. HSN rules are
// included only when a catalogue is provided.
func NewChecker(catalog *hsn.Catalog) *Checker {
	rules := append(PartyRules(), LineItemRules()...)
	if catalog != nil {
		rules = append(rules, HSNRules(catalog)...)
	}
	return &Checker{rules: rules}
}

// Rules returns the rule set in evaluation order.
func (c *Checker) Rules() []*Rule {
	return c.rules
}

// Run evaluates every rule against d.
func (c *Checker) Run(ctx context.Context, d *Draft) Report {
	report := Report{Errors: []Result{}, Warnings: []Result{}}
	for _, rule := range c.rules {
		if ctx.Err() != nil {
			break
		}
		for _, res := range rule.Check(ctx, d) {
			report.Checked++
			if res.Passed {
				continue
			}
			if res.Severity == SeverityError {
				report.Errors = append(report.Errors, res)
			} else {
				report.Warnings = append(report.Warnings, res)
			}
		}
	}
	return report
}
