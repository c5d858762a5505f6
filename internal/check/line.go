package check

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"onebill/internal/gst"
	"onebill/internal/hsn"
)

var (
	hsnPattern = regexp.MustCompile(`^\d{4,8}$`)
	hundred    = decimal.NewFromInt(100)
)

// LineItemRules returns the per-line rules that need no external data.
func LineItemRules() []*Rule {
	return []*Rule{
		{
			key: "logic.line_item.required", name: "Logical: At Least One Line Item", sev: SeverityError,
			fn: func(_ context.Context, d *Draft) []Result {
				if len(d.LineItems) == 0 {
					return []Result{{FieldPath: "line_items", Expected: ">= 1 item", Actual: "0", Message: "invoice has no line items"}}
				}
				return []Result{{Passed: true, FieldPath: "line_items", Message: "invoice has line items"}}
			},
		},
		perItem("logic.line_item.quantity", "Logical: Non-negative Quantity", SeverityError, "quantity",
			func(_ *Draft, item *gst.LineItem) (bool, string, string) {
				return !item.Quantity.IsNegative(), ">= 0", item.Quantity.String()
			}),
		perItem("logic.line_item.unit_price", "Logical: Non-negative Unit Price", SeverityError, "unit_price",
			func(_ *Draft, item *gst.LineItem) (bool, string, string) {
				return !item.UnitPrice.IsNegative(), ">= 0", item.UnitPrice.String()
			}),
		perItem("logic.line_item.discount", "Logical: Discount Within 0-100%", SeverityError, "discount_percent",
			func(_ *Draft, item *gst.LineItem) (bool, string, string) {
				p := item.DiscountPercent
				return !p.IsNegative() && p.LessThanOrEqual(hundred), "0-100", p.String()
			}),
		perItem("logic.line_item.gst_rate", "Logical: Standard GST Rate", SeverityError, "gst_rate",
			func(d *Draft, item *gst.LineItem) (bool, string, string) {
				if !d.IsGST {
					return true, "any", item.GSTRate.String()
				}
				return gst.IsStandardRate(item.GSTRate), "0, 5, 12, 18 or 28", item.GSTRate.String()
			}),
		perItem("fmt.line_item.hsn_sac", "Format: HSN/SAC Code", SeverityError, "hsn_sac",
			func(_ *Draft, item *gst.LineItem) (bool, string, string) {
				if item.HSNSAC == "" {
					return true, "4-8 digits", ""
				}
				return hsnPattern.MatchString(item.HSNSAC), "4-8 digits", item.HSNSAC
			}),
	}
}

// HSNRules returns rules that consult the HSN/SAC catalogue. Both are warnings:
// the catalogue is advisory.
func HSNRules(catalog *hsn.Catalog) []*Rule {
	return []*Rule{
		perItem("logic.line_item.hsn_exists", "Logical: HSN Code Exists in Master", SeverityWarning, "hsn_sac",
			func(_ *Draft, item *gst.LineItem) (bool, string, string) {
				if item.HSNSAC == "" {
					return true, "code from master list", ""
				}
				return catalog.Exists(item.HSNSAC), "code from master list", item.HSNSAC
			}),
		perItem("xf.line_item.hsn_rate", "Cross-field: HSN Code GST Rate Match", SeverityWarning, "gst_rate",
			func(d *Draft, item *gst.LineItem) (bool, string, string) {
				if item.HSNSAC == "" || !d.IsGST || !catalog.Exists(item.HSNSAC) {
					return true, "", item.GSTRate.String()
				}
				matched, rates := catalog.RateMatches(item.HSNSAC, item.GSTRate)
				return matched, formatRates(rates), item.GSTRate.String() + "%"
			}),
	}
}

func perItem(key, name string, sev Severity, field string, ok func(*Draft, *gst.LineItem) (bool, string, string)) *Rule {
	return &Rule{
		key: key, name: name, sev: sev,
		fn: func(_ context.Context, d *Draft) []Result {
			results := make([]Result, 0, len(d.LineItems))
			for i := range d.LineItems {
				fp := fmt.Sprintf("line_items[%d].%s", i, field)
				passed, expected, actual := ok(d, &d.LineItems[i])
				msg := fmt.Sprintf("%s: %s ok", name, fp)
				if !passed {
					msg = fmt.Sprintf("%s: %s is %s, expected %s", name, fp, actual, expected)
				}
				results = append(results, Result{
					Passed: passed, FieldPath: fp,
					Expected: expected, Actual: actual, Message: msg,
				})
			}
			return results
		},
	}
}

func formatRates(rates []hsn.RateEntry) string {
	if len(rates) == 0 {
		return "no rates found"
	}
	s := ""
	for i, r := range rates {
		if i > 0 {
			s += ", "
		}
		s += r.Rate.String() + "%"
		if r.ConditionDesc != "" {
			s += " (" + r.ConditionDesc + ")"
		}
	}
	return s
}
