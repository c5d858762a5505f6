package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"onebill/internal/check"
	"onebill/internal/config"
	"onebill/internal/format"
	"onebill/internal/gst"
	"onebill/internal/hsn"
)

// LineTaxInput is the DTO for computing the tax split on one taxable amount.
type LineTaxInput struct {
	IsIntraState  bool `json:"is_intra_state"`
	TaxableAmount any  `json:"taxable_amount"`
	GSTRate       any  `json:"gst_rate"`
}

// ComputeLineInput is the DTO for computing a single line item.
type ComputeLineInput struct {
	LineItemInput
	IsIntraState *bool `json:"is_intra_state"`
	IsGST        *bool `json:"is_gst"`
}

// TotalsInput is the DTO for computing invoice totals without persisting anything.
type TotalsInput struct {
	BusinessGSTIN string          `json:"business_gstin"`
	ClientGSTIN   string          `json:"client_gstin"`
	BusinessState string          `json:"business_state"`
	ClientState   string          `json:"client_state"`
	LineItems     []LineItemInput `json:"line_items"`
	IsGST         *bool           `json:"is_gst"`
	RoundOff      *bool           `json:"round_off"`
}

// CheckInput is the DTO for running the draft checks.
type CheckInput struct {
	BusinessGSTIN string          `json:"business_gstin"`
	ClientGSTIN   string          `json:"client_gstin"`
	BusinessState string          `json:"business_state"`
	ClientState   string          `json:"client_state"`
	IsGST         *bool           `json:"is_gst"`
	LineItems     []LineItemInput `json:"line_items"`
}

// GSTService exposes the tax engine, formatters and reference tables.
// strict asks for malformed numbers to be rejected instead of read as zero; it is
// forced on when the engine is configured strict.
type GSTService interface {
	ValidateGSTIN(gstin string) gst.GSTINValidation
	PlaceOfSupply(parties gst.SupplyParties) gst.PlaceOfSupply
	LineTax(input LineTaxInput, strict bool) (gst.LineTax, error)
	ComputeLine(input ComputeLineInput, strict bool) (gst.ComputedLineItem, error)
	Totals(input TotalsInput, strict bool) (gst.InvoiceTotals, error)
	AmountInWords(amount any, strict bool) (string, error)
	FormatCurrency(amount any, currency string, strict bool) (string, error)
	Check(ctx context.Context, input CheckInput, strict bool) (check.Report, error)
	States() []gst.State
	Rates() []decimal.Decimal
	SearchHSN(query string, limit int) []hsn.Suggestion
}

type gstService struct {
	catalog *hsn.Catalog
	checker *check.Checker
	cfg     *config.EngineConfig
}

// NewGSTService creates a new GSTService implementation.
func NewGSTService(catalog *hsn.Catalog, checker *check.Checker, cfg *config.EngineConfig) GSTService {
	return &gstService{catalog: catalog, checker: checker, cfg: cfg}
}

func (s *gstService) strict(requested bool) bool {
	return requested || s.cfg.StrictNumbers
}

func (s *gstService) ValidateGSTIN(gstin string) gst.GSTINValidation {
	return gst.ValidateGSTIN(strings.TrimSpace(gstin))
}

func (s *gstService) PlaceOfSupply(parties gst.SupplyParties) gst.PlaceOfSupply {
	return gst.ResolvePlaceOfSupply(parties)
}

func (s *gstService) LineTax(input LineTaxInput, strict bool) (gst.LineTax, error) {
	strict = s.strict(strict)
	amount, err := number(input.TaxableAmount, strict, "taxable_amount")
	if err != nil {
		return gst.LineTax{}, err
	}
	rate, err := number(input.GSTRate, strict, "gst_rate")
	if err != nil {
		return gst.LineTax{}, err
	}
	return gst.CalculateLineItemGST(gst.LineTaxInput{
		IsIntraState:  input.IsIntraState,
		TaxableAmount: amount,
		GSTRate:       rate,
	}), nil
}

func (s *gstService) ComputeLine(input ComputeLineInput, strict bool) (gst.ComputedLineItem, error) {
	item, err := input.toLineItem(s.strict(strict), 0)
	if err != nil {
		return gst.ComputedLineItem{}, err
	}
	return gst.ComputeLineItem(item, boolOr(input.IsIntraState, true), boolOr(input.IsGST, true)), nil
}

func (s *gstService) Totals(input TotalsInput, strict bool) (gst.InvoiceTotals, error) {
	items, err := toLineItems(input.LineItems, s.strict(strict))
	if err != nil {
		return gst.InvoiceTotals{}, err
	}
	return gst.CalculateInvoiceTotals(gst.InvoiceInput{
		BusinessGSTIN: strings.TrimSpace(input.BusinessGSTIN),
		ClientGSTIN:   strings.TrimSpace(input.ClientGSTIN),
		BusinessState: input.BusinessState,
		ClientState:   input.ClientState,
		LineItems:     items,
		IsGST:         boolOr(input.IsGST, true),
		RoundOff:      boolOr(input.RoundOff, true),
	}), nil
}

func (s *gstService) AmountInWords(amount any, strict bool) (string, error) {
	d, err := number(amount, s.strict(strict), "amount")
	if err != nil {
		return "", err
	}
	return format.AmountInWords(d), nil
}

func (s *gstService) FormatCurrency(amount any, currency string, strict bool) (string, error) {
	d, err := number(amount, s.strict(strict), "amount")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(currency) == "" {
		currency = s.cfg.DefaultCurrency
	}
	return format.FormatCurrency(d, currency), nil
}

func (s *gstService) Check(ctx context.Context, input CheckInput, strict bool) (check.Report, error) {
	items, err := toLineItems(input.LineItems, s.strict(strict))
	if err != nil {
		return check.Report{}, err
	}
	return s.checker.Run(ctx, &check.Draft{
		BusinessGSTIN: strings.TrimSpace(input.BusinessGSTIN),
		BusinessState: input.BusinessState,
		ClientGSTIN:   strings.TrimSpace(input.ClientGSTIN),
		ClientState:   input.ClientState,
		IsGST:         boolOr(input.IsGST, true),
		LineItems:     items,
	}), nil
}

func (s *gstService) States() []gst.State {
	return gst.States()
}

func (s *gstService) Rates() []decimal.Decimal {
	return gst.GSTRates()
}

func (s *gstService) SearchHSN(query string, limit int) []hsn.Suggestion {
	return s.catalog.Search(query, limit)
}
