package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"onebill/internal/gst"
)

// Business is a GST-registered (or unregistered) seller issuing invoices.
type Business struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	GSTIN           string    `db:"gstin" json:"gstin"`
	State           string    `db:"state" json:"state"`
	StateCode       string    `db:"state_code" json:"state_code"`
	Address         string    `db:"address" json:"address"`
	Email           string    `db:"email" json:"email"`
	InvoiceTemplate string    `db:"invoice_template" json:"invoice_template"`
	InvoiceCounter  int64     `db:"invoice_counter" json:"invoice_counter"`
	IsGST           bool      `db:"is_gst" json:"is_gst"`
	RoundOff        bool      `db:"round_off" json:"round_off"`
	Currency        string    `db:"currency" json:"currency"`
	BankName        string    `db:"bank_name" json:"bank_name"`
	AccountNumber   string    `db:"account_number" json:"account_number"`
	IFSCCode        string    `db:"ifsc_code" json:"ifsc_code"`
	UPIID           string    `db:"upi_id" json:"upi_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Client is a buyer invoiced by a business.
type Client struct {
	ID         uuid.UUID `db:"id" json:"id"`
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	GSTIN      string    `db:"gstin" json:"gstin"`
	State      string    `db:"state" json:"state"`
	StateCode  string    `db:"state_code" json:"state_code"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	Address    string    `db:"address" json:"address"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// LineItems is the computed line item list persisted as JSONB.
type LineItems []gst.ComputedLineItem

// Value implements driver.Valuer.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *LineItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = LineItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("LineItems.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(raw, l)
}

// Invoice is a persisted, fully computed sales invoice.
type Invoice struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	BusinessID        uuid.UUID       `db:"business_id" json:"business_id"`
	ClientID          uuid.UUID       `db:"client_id" json:"client_id"`
	Number            string          `db:"number" json:"number"`
	InvoiceDate       time.Time       `db:"invoice_date" json:"invoice_date"`
	DueDate           *time.Time      `db:"due_date" json:"due_date"`
	Status            InvoiceStatus   `db:"status" json:"status"`
	PlaceOfSupply     string          `db:"place_of_supply" json:"place_of_supply"`
	PlaceOfSupplyCode string          `db:"place_of_supply_code" json:"place_of_supply_code"`
	IsIntraState      bool            `db:"is_intra_state" json:"is_intra_state"`
	IsGST             bool            `db:"is_gst" json:"is_gst"`
	Currency          string          `db:"currency" json:"currency"`
	Subtotal          decimal.Decimal `db:"subtotal" json:"subtotal"`
	CGST              decimal.Decimal `db:"cgst" json:"cgst"`
	SGST              decimal.Decimal `db:"sgst" json:"sgst"`
	IGST              decimal.Decimal `db:"igst" json:"igst"`
	TotalTax          decimal.Decimal `db:"total_tax" json:"total_tax"`
	RoundOff          decimal.Decimal `db:"round_off" json:"round_off"`
	GrandTotal        decimal.Decimal `db:"grand_total" json:"grand_total"`
	AmountInWords     string          `db:"amount_in_words" json:"amount_in_words"`
	LineItems         LineItems       `db:"line_items" json:"line_items"`
	Notes             string          `db:"notes" json:"notes"`
	SentAt            *time.Time      `db:"sent_at" json:"sent_at"`
	PaidAt            *time.Time      `db:"paid_at" json:"paid_at"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// ApplyTotals copies the computed totals onto the invoice.
func (inv *Invoice) ApplyTotals(t gst.InvoiceTotals) {
	inv.PlaceOfSupply = t.PlaceOfSupply
	inv.PlaceOfSupplyCode = t.PlaceOfSupplyCode
	inv.IsIntraState = t.IsIntraState
	inv.Subtotal = t.Subtotal
	inv.CGST = t.CGST
	inv.SGST = t.SGST
	inv.IGST = t.IGST
	inv.TotalTax = t.TotalTax
	inv.RoundOff = t.RoundOff
	inv.GrandTotal = t.GrandTotal
	inv.LineItems = t.LineItems
}

// InvoiceRegisterRow is an invoice plus the client fields a register export shows.
type InvoiceRegisterRow struct {
	Invoice     *Invoice
	ClientName  string
	ClientGSTIN string
}

// Purchase is an inward supply bill used for input tax credit.
type Purchase struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	BusinessID    uuid.UUID       `db:"business_id" json:"business_id"`
	VendorName    string          `db:"vendor_name" json:"vendor_name"`
	VendorGSTIN   string          `db:"vendor_gstin" json:"vendor_gstin"`
	BillNumber    string          `db:"bill_number" json:"bill_number"`
	BillDate      time.Time       `db:"bill_date" json:"bill_date"`
	TaxableAmount decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	CGST          decimal.Decimal `db:"cgst" json:"cgst"`
	SGST          decimal.Decimal `db:"sgst" json:"sgst"`
	IGST          decimal.Decimal `db:"igst" json:"igst"`
	TotalTax      decimal.Decimal `db:"total_tax" json:"total_tax"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	IsDeleted     bool            `db:"is_deleted" json:"is_deleted"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// PaymentProof is a screenshot a client submitted as evidence of payment.
type PaymentProof struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	InvoiceID     uuid.UUID      `db:"invoice_id" json:"invoice_id"`
	BusinessID    uuid.UUID      `db:"business_id" json:"business_id"`
	StorageBucket string         `db:"storage_bucket" json:"-"`
	StorageKey    string         `db:"storage_key" json:"-"`
	FileType      FileType       `db:"file_type" json:"file_type"`
	Verdict       PaymentVerdict `db:"verdict" json:"verdict"`
	Score         int            `db:"score" json:"score"`
	UTR           string         `db:"utr" json:"utr"`
	AmountMatched bool           `db:"amount_matched" json:"amount_matched"`
	Reasons       StringList     `db:"reasons" json:"reasons"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// StringList is a []string persisted as JSONB.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return errors.New("StringList.Scan: unsupported type")
}

// HSNCode is a row of the HSN/SAC master list.
type HSNCode struct {
	Code        string          `db:"code" json:"code"`
	Description string          `db:"description" json:"description"`
	GSTRate     decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	Condition   string          `db:"condition_desc" json:"condition_desc,omitempty"`
}

// ListFilter carries pagination and an optional date window for list queries.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int
}
