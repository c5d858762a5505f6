// Package report aggregates invoices and purchases into GST summaries.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"onebill/internal/domain"
)

// TaxHeads splits a tax amount by head.
type TaxHeads struct {
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	IGST  decimal.Decimal `json:"igst"`
	Total decimal.Decimal `json:"total"`
}

func (h TaxHeads) add(cgst, sgst, igst decimal.Decimal) TaxHeads {
	h.CGST = h.CGST.Add(cgst)
	h.SGST = h.SGST.Add(sgst)
	h.IGST = h.IGST.Add(igst)
	h.Total = h.CGST.Add(h.SGST).Add(h.IGST)
	return h
}

func (h TaxHeads) sub(o TaxHeads) TaxHeads {
	return TaxHeads{
		CGST:  h.CGST.Sub(o.CGST),
		SGST:  h.SGST.Sub(o.SGST),
		IGST:  h.IGST.Sub(o.IGST),
		Total: h.Total.Sub(o.Total),
	}
}

// Month is one row of the monthly breakdown.
type Month struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Sales    decimal.Decimal `json:"sales"`
	Tax      decimal.Decimal `json:"tax"`
	Invoices int             `json:"invoices"`
}

// Summary is the GST position of a business over a set of invoices and purchases.
type Summary struct {
	InvoiceCount   int             `json:"invoice_count"`
	PurchaseCount  int             `json:"purchase_count"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TaxableSales   decimal.Decimal `json:"taxable_sales"`
	OutputTax      TaxHeads        `json:"output_tax"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	InputTaxCredit TaxHeads        `json:"input_tax_credit"`
	NetPayable     TaxHeads        `json:"net_payable"`
	Monthly        []Month         `json:"monthly"`
}

func zeroHeads() TaxHeads {
	return TaxHeads{CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero, Total: decimal.Zero}
}

// Summarize totals output tax from invoices and input tax credit from purchases.
// Deleted invoices and purchases are skipped. Monthly rows are keyed by invoice date
// and ordered chronologically.
func Summarize(invoices []domain.Invoice, purchases []domain.Purchase) Summary {
	s := Summary{
		TotalSales:     decimal.Zero,
		TaxableSales:   decimal.Zero,
		OutputTax:      zeroHeads(),
		TotalPurchases: decimal.Zero,
		InputTaxCredit: zeroHeads(),
		Monthly:        []Month{},
	}

	months := make(map[string]*Month)
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status == domain.InvoiceStatusDeleted {
			continue
		}
		s.InvoiceCount++
		s.TotalSales = s.TotalSales.Add(inv.GrandTotal)
		s.TaxableSales = s.TaxableSales.Add(inv.Subtotal)
		s.OutputTax = s.OutputTax.add(inv.CGST, inv.SGST, inv.IGST)

		key := inv.InvoiceDate.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &Month{Key: key, Label: MonthLabel(inv.InvoiceDate), Sales: decimal.Zero, Tax: decimal.Zero}
			months[key] = m
		}
		m.Sales = m.Sales.Add(inv.GrandTotal)
		m.Tax = m.Tax.Add(inv.CGST).Add(inv.SGST).Add(inv.IGST)
		m.Invoices++
	}

	for i := range purchases {
		p := &purchases[i]
		if p.IsDeleted {
			continue
		}
		s.PurchaseCount++
		s.TotalPurchases = s.TotalPurchases.Add(p.TotalAmount)
		s.InputTaxCredit = s.InputTaxCredit.add(p.CGST, p.SGST, p.IGST)
	}

	s.NetPayable = s.OutputTax.sub(s.InputTaxCredit)

	for _, m := range months {
		s.Monthly = append(s.Monthly, *m)
	}
	sort.Slice(s.Monthly, func(i, j int) bool { return s.Monthly[i].Key < s.Monthly[j].Key })
	return s
}

// MonthLabel renders t as "Jan 25".
func MonthLabel(t time.Time) string {
	return t.Format("Jan 06")
}
