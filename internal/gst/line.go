package gst

import "github.com/shopspring/decimal"

// LineItem is one invoice row as entered by the caller.
type LineItem struct {
	Name            string          `json:"name,omitempty"`
	Description     string          `json:"description,omitempty"`
	HSNSAC          string          `json:"hsn_sac,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	GSTRate         decimal.Decimal `json:"gst_rate"`
}

// ComputedLineItem is a LineItem enriched with its computed amounts, each rounded to 2 places.
type ComputedLineItem struct {
	LineItem
	LineSubtotal   decimal.Decimal `json:"line_subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// LineTaxInput is the input to CalculateLineItemGST.
type LineTaxInput struct {
	IsIntraState  bool            `json:"is_intra_state"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
}

// LineTax is the GST split for one taxable amount.
type LineTax struct {
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	TotalWithTax decimal.Decimal `json:"total_with_tax"`
}

// CalculateLineItemGST splits the tax on a taxable amount into CGST+SGST (intra-state)
// or IGST (inter-state). A zero rate or zero amount yields no tax.
func CalculateLineItemGST(in LineTaxInput) LineTax {
	amount, rate := in.TaxableAmount, in.GSTRate

	if rate.IsZero() || amount.IsZero() {
		return LineTax{
			CGST:         decimal.Zero,
			SGST:         decimal.Zero,
			IGST:         decimal.Zero,
			TotalTax:     decimal.Zero,
			TotalWithTax: amount,
		}
	}

	if in.IsIntraState {
		half := Round2(percentOf(amount, rate.Div(two)))
		total := half.Add(half)
		return LineTax{
			CGST:         half,
			SGST:         half,
			IGST:         decimal.Zero,
			TotalTax:     total,
			TotalWithTax: amount.Add(total),
		}
	}

	igst := Round2(percentOf(amount, rate))
	return LineTax{
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         igst,
		TotalTax:     igst,
		TotalWithTax: amount.Add(igst),
	}
}

// ComputeLineItem derives discount, taxable base and, when isGST is set, the tax split for item.
func ComputeLineItem(item LineItem, isIntraState, isGST bool) ComputedLineItem {
	subtotal := Round2(item.Quantity.Mul(item.UnitPrice))
	discount := Round2(percentOf(subtotal, item.DiscountPercent))
	taxable := Round2(subtotal.Sub(discount))

	tax := LineTax{
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         decimal.Zero,
		TotalTax:     decimal.Zero,
		TotalWithTax: taxable,
	}
	if isGST {
		tax = CalculateLineItemGST(LineTaxInput{
			IsIntraState:  isIntraState,
			TaxableAmount: taxable,
			GSTRate:       item.GSTRate,
		})
	}

	return ComputedLineItem{
		LineItem:       item,
		LineSubtotal:   subtotal,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		CGST:           tax.CGST,
		SGST:           tax.SGST,
		IGST:           tax.IGST,
		TotalTax:       tax.TotalTax,
		LineTotal:      tax.TotalWithTax,
	}
}
