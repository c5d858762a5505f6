package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"onebill/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// invoiceColumns is the sales register header row.
var invoiceColumns = []string{
	"Invoice Number",
	"Invoice Date",
	"Status",
	"Client Name",
	"Client GSTIN",
	"Place of Supply",
	"Place of Supply Code",
	"Supply Type",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
	"Round Off",
	"Grand Total",
	"Currency",
	"Due Date",
	"Line Item Count",
	"Created At",
}

// purchaseColumns is the purchase register header row.
var purchaseColumns = []string{
	"Bill Number",
	"Bill Date",
	"Vendor Name",
	"Vendor GSTIN",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
	"Total Amount",
}

// Writer wraps csv.Writer for exporting GST registers.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteInvoiceHeader writes the sales register header row.
func (w *Writer) WriteInvoiceHeader() error {
	return w.csv.Write(invoiceColumns)
}

// WriteInvoices writes one row per invoice.
func (w *Writer) WriteInvoices(rows []domain.InvoiceRegisterRow) error {
	for i := range rows {
		if err := w.csv.Write(invoiceToRow(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// WritePurchaseHeader writes the purchase register header row.
func (w *Writer) WritePurchaseHeader() error {
	return w.csv.Write(purchaseColumns)
}

// WritePurchases writes one row per purchase bill.
func (w *Writer) WritePurchases(purchases []domain.Purchase) error {
	for i := range purchases {
		p := &purchases[i]
		row := []string{
			p.BillNumber,
			formatDate(p.BillDate),
			p.VendorName,
			p.VendorGSTIN,
			formatMoney(p.TaxableAmount),
			formatMoney(p.CGST),
			formatMoney(p.SGST),
			formatMoney(p.IGST),
			formatMoney(p.TotalTax),
			formatMoney(p.TotalAmount),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func invoiceToRow(r *domain.InvoiceRegisterRow) []string {
	inv := r.Invoice
	return []string{
		inv.Number,
		formatDate(inv.InvoiceDate),
		string(inv.Status),
		r.ClientName,
		r.ClientGSTIN,
		inv.PlaceOfSupply,
		inv.PlaceOfSupplyCode,
		supplyType(inv),
		formatMoney(inv.Subtotal),
		formatMoney(inv.CGST),
		formatMoney(inv.SGST),
		formatMoney(inv.IGST),
		formatMoney(inv.TotalTax),
		formatMoney(inv.RoundOff),
		formatMoney(inv.GrandTotal),
		inv.Currency,
		formatOptionalDate(inv.DueDate),
		strconv.Itoa(len(inv.LineItems)),
		inv.CreatedAt.Format(time.RFC3339),
	}
}

func supplyType(inv *domain.Invoice) string {
	switch {
	case !inv.IsGST:
		return "Non-GST"
	case inv.IsIntraState:
		return "Intra-State"
	default:
		return "Inter-State"
	}
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a business name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{kind}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, kind, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", SanitizeFilename(name), kind, now.Format("2006-01-02"), ext)
}
