package gst

import "github.com/shopspring/decimal"

// InvoiceInput is everything the aggregator needs to total one invoice.
type InvoiceInput struct {
	BusinessGSTIN string     `json:"business_gstin"`
	ClientGSTIN   string     `json:"client_gstin"`
	BusinessState string     `json:"business_state"`
	ClientState   string     `json:"client_state"`
	LineItems     []LineItem `json:"line_items"`
	IsGST         bool       `json:"is_gst"`
	RoundOff      bool       `json:"round_off"`
}

// InvoiceTotals is the full computed result for an invoice.
type InvoiceTotals struct {
	LineItems         []ComputedLineItem `json:"line_items"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	CGST              decimal.Decimal    `json:"cgst"`
	SGST              decimal.Decimal    `json:"sgst"`
	IGST              decimal.Decimal    `json:"igst"`
	TotalTax          decimal.Decimal    `json:"total_tax"`
	TotalBeforeRound  decimal.Decimal    `json:"total_before_round"`
	RoundOff          decimal.Decimal    `json:"round_off"`
	GrandTotal        decimal.Decimal    `json:"grand_total"`
	IsIntraState      bool               `json:"is_intra_state"`
	PlaceOfSupply     string             `json:"place_of_supply"`
	PlaceOfSupplyCode string             `json:"place_of_supply_code,omitempty"`
}

// CalculateInvoiceTotals resolves the place of supply once, computes every line against it
// and folds the lines into invoice totals. With RoundOff set the grand total is rounded to
// the nearest rupee and the residual reported in RoundOff.
func CalculateInvoiceTotals(in InvoiceInput) InvoiceTotals {
	place := ResolvePlaceOfSupply(SupplyParties{
		BusinessGSTIN: in.BusinessGSTIN,
		ClientGSTIN:   in.ClientGSTIN,
		BusinessState: in.BusinessState,
		ClientState:   in.ClientState,
	})

	items := make([]ComputedLineItem, 0, len(in.LineItems))
	subtotal, cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero

	for _, item := range in.LineItems {
		line := ComputeLineItem(item, place.IsIntraState, in.IsGST)
		subtotal = subtotal.Add(line.TaxableAmount)
		cgst = cgst.Add(line.CGST)
		sgst = sgst.Add(line.SGST)
		igst = igst.Add(line.IGST)
		items = append(items, line)
	}

	subtotal = Round2(subtotal)
	cgst = Round2(cgst)
	sgst = Round2(sgst)
	igst = Round2(igst)

	totalTax := Round2(cgst.Add(sgst).Add(igst))
	beforeRound := Round2(subtotal.Add(totalTax))

	grandTotal := beforeRound
	roundOff := decimal.Zero
	if in.RoundOff {
		grandTotal = beforeRound.Round(0)
		roundOff = Round2(grandTotal.Sub(beforeRound))
	}

	return InvoiceTotals{
		LineItems:         items,
		Subtotal:          subtotal,
		CGST:              cgst,
		SGST:              sgst,
		IGST:              igst,
		TotalTax:          totalTax,
		TotalBeforeRound:  beforeRound,
		RoundOff:          roundOff,
		GrandTotal:        grandTotal,
		IsIntraState:      place.IsIntraState,
		PlaceOfSupply:     place.PlaceOfSupply,
		PlaceOfSupplyCode: place.PlaceOfSupplyCode,
	}
}
