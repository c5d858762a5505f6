// Package xlsxexport renders a GST report as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"onebill/internal/domain"
	"onebill/internal/report"
)

// Sheet names in the order they appear in the workbook.
const (
	SheetSummary   = "Summary"
	SheetMonthly   = "Monthly"
	SheetSales     = "Sales"
	SheetPurchases = "Purchases"
)

// moneyFormat is the built-in "#,##0.00" number format.
const moneyFormat = 4

// Report is everything the workbook renders.
type Report struct {
	BusinessName string
	GSTIN        string
	Period       string
	Summary      report.Summary
	Invoices     []domain.InvoiceRegisterRow
	Purchases    []domain.Purchase
}

type builder struct {
	f     *excelize.File
	bold  int
	money int
}

// Write renders r as an .xlsx workbook to w.
func Write(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	b := &builder{f: f}
	var err error
	if b.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return fmt.Errorf("xlsx bold style: %w", err)
	}
	if b.money, err = f.NewStyle(&excelize.Style{NumFmt: moneyFormat}); err != nil {
		return fmt.Errorf("xlsx money style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("xlsx rename sheet: %w", err)
	}
	for _, name := range []string{SheetMonthly, SheetSales, SheetPurchases} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx new sheet %s: %w", name, err)
		}
	}

	steps := []func(*Report) error{b.summary, b.monthly, b.sales, b.purchases}
	for _, step := range steps {
		if err := step(r); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func (b *builder) summary(r *Report) error {
	s := r.Summary
	rows := [][]interface{}{
		{"Business", r.BusinessName},
		{"GSTIN", r.GSTIN},
		{"Period", r.Period},
		{},
		{"Invoices", s.InvoiceCount},
		{"Purchases", s.PurchaseCount},
		{"Total Sales", money(s.TotalSales)},
		{"Taxable Sales", money(s.TaxableSales)},
		{"Total Purchases", money(s.TotalPurchases)},
		{},
		{"", "CGST", "SGST", "IGST", "Total"},
		heads("Output Tax", s.OutputTax),
		heads("Input Tax Credit", s.InputTaxCredit),
		heads("Net Payable", s.NetPayable),
	}
	if err := b.writeRows(SheetSummary, rows); err != nil {
		return err
	}
	if err := b.f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), b.bold); err != nil {
		return fmt.Errorf("xlsx summary style: %w", err)
	}
	if err := b.f.SetCellStyle(SheetSummary, "B7", "E14", b.money); err != nil {
		return fmt.Errorf("xlsx summary style: %w", err)
	}
	return b.f.SetColWidth(SheetSummary, "A", "A", 20)
}

func (b *builder) monthly(r *Report) error {
	rows := [][]interface{}{{"Month", "Invoices", "Sales", "Tax"}}
	for _, m := range r.Summary.Monthly {
		rows = append(rows, []interface{}{m.Label, m.Invoices, money(m.Sales), money(m.Tax)})
	}
	return b.table(SheetMonthly, rows, "C", "D")
}

func (b *builder) sales(r *Report) error {
	rows := [][]interface{}{{
		"Invoice Number", "Invoice Date", "Status", "Client", "Client GSTIN", "Place of Supply",
		"Taxable", "CGST", "SGST", "IGST", "Total Tax", "Round Off", "Grand Total",
	}}
	for _, row := range r.Invoices {
		inv := row.Invoice
		rows = append(rows, []interface{}{
			inv.Number, inv.InvoiceDate.Format("2006-01-02"), string(inv.Status), row.ClientName, row.ClientGSTIN,
			inv.PlaceOfSupply, money(inv.Subtotal), money(inv.CGST), money(inv.SGST), money(inv.IGST),
			money(inv.TotalTax), money(inv.RoundOff), money(inv.GrandTotal),
		})
	}
	return b.table(SheetSales, rows, "G", "M")
}

func (b *builder) purchases(r *Report) error {
	rows := [][]interface{}{{
		"Bill Number", "Bill Date", "Vendor", "Vendor GSTIN", "Taxable", "CGST", "SGST", "IGST", "Total Tax", "Total",
	}}
	for i := range r.Purchases {
		p := &r.Purchases[i]
		rows = append(rows, []interface{}{
			p.BillNumber, p.BillDate.Format("2006-01-02"), p.VendorName, p.VendorGSTIN,
			money(p.TaxableAmount), money(p.CGST), money(p.SGST), money(p.IGST), money(p.TotalTax), money(p.TotalAmount),
		})
	}
	return b.table(SheetPurchases, rows, "E", "J")
}

// table writes rows with a bold header and applies the money format to columns firstMoney..lastMoney.
func (b *builder) table(sheet string, rows [][]interface{}, firstMoney, lastMoney string) error {
	if err := b.writeRows(sheet, rows); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return fmt.Errorf("xlsx %s: %w", sheet, err)
	}
	if err := b.f.SetCellStyle(sheet, "A1", lastCol+"1", b.bold); err != nil {
		return fmt.Errorf("xlsx %s header style: %w", sheet, err)
	}
	if len(rows) > 1 {
		end := fmt.Sprintf("%s%d", lastMoney, len(rows))
		if err := b.f.SetCellStyle(sheet, firstMoney+"2", end, b.money); err != nil {
			return fmt.Errorf("xlsx %s money style: %w", sheet, err)
		}
	}
	return b.f.SetColWidth(sheet, "A", lastCol, 16)
}

func (b *builder) writeRows(sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx %s: %w", sheet, err)
		}
		if err := b.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func heads(label string, h report.TaxHeads) []interface{} {
	return []interface{}{label, money(h.CGST), money(h.SGST), money(h.IGST), money(h.Total)}
}

// money converts an exact amount to a spreadsheet number. Amounts are already
// rounded to paise, so the float conversion only affects display.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
