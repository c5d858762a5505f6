package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onebill/internal/config"
	"onebill/internal/gst"
	"onebill/internal/hsn"
	"onebill/internal/service"
)

func setupGSTService(strict bool) service.GSTService {
	cfg := engineConfig()
	cfg.StrictNumbers = strict
	return service.NewGSTService(hsn.NewCatalog(nil), testChecker(), cfg)
}

func TestGSTService_LineTax(t *testing.T) {
	svc := setupGSTService(false)

	tax, err := svc.LineTax(service.LineTaxInput{IsIntraState: true, TaxableAmount: "1000", GSTRate: 18.0}, false)
	require.NoError(t, err)
	assert.True(t, dec("90").Equal(tax.CGST))
	assert.True(t, dec("90").Equal(tax.SGST))
	assert.True(t, dec("1180").Equal(tax.TotalWithTax))
}

func TestGSTService_LineTax_StrictRejectsGarbage(t *testing.T) {
	svc := setupGSTService(false)

	_, err := svc.LineTax(service.LineTaxInput{TaxableAmount: "12abc", GSTRate: 18}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gst.ErrInvalidNumber))

	var inv *gst.InvalidNumberError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "taxable_amount", inv.Field)
}

func TestGSTService_LineTax_LenientCoercesGarbage(t *testing.T) {
	svc := setupGSTService(false)

	tax, err := svc.LineTax(service.LineTaxInput{TaxableAmount: "12abc", GSTRate: 18}, false)
	require.NoError(t, err)
	assert.True(t, tax.TotalWithTax.IsZero())
}

func TestGSTService_ConfiguredStrictOverridesRequest(t *testing.T) {
	svc := setupGSTService(true)

	_, err := svc.AmountInWords("ten", false)
	assert.True(t, errors.Is(err, gst.ErrInvalidNumber))
}

func TestGSTService_ComputeLine_Defaults(t *testing.T) {
	svc := setupGSTService(false)

	line, err := svc.ComputeLine(service.ComputeLineInput{
		LineItemInput: service.LineItemInput{Name: " Design ", Quantity: 2, UnitPrice: "500", DiscountPercent: 10, GSTRate: 18},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, "Design", line.Name)
	assert.True(t, dec("1000").Equal(line.LineSubtotal))
	assert.True(t, dec("100").Equal(line.DiscountAmount))
	assert.True(t, dec("81").Equal(line.CGST))
	assert.True(t, line.IGST.IsZero())
}

func TestGSTService_ComputeLine_NonGST(t *testing.T) {
	svc := setupGSTService(false)
	isGST := false

	line, err := svc.ComputeLine(service.ComputeLineInput{
		LineItemInput: service.LineItemInput{Quantity: 1, UnitPrice: 100, GSTRate: 18},
		IsGST:         &isGST,
	}, false)
	require.NoError(t, err)
	assert.True(t, line.TotalTax.IsZero())
	assert.True(t, dec("100").Equal(line.LineTotal))
}

func TestGSTService_Totals(t *testing.T) {
	svc := setupGSTService(false)

	tests := []struct {
		name        string
		client      string
		wantIntra   bool
		wantIGST    string
		wantCGST    string
		wantInWords string
	}{
		{name: "intra-state", client: mhBuyer, wantIntra: true, wantIGST: "0", wantCGST: "90"},
		{name: "inter-state", client: kaGSTIN, wantIntra: false, wantIGST: "180", wantCGST: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := svc.Totals(service.TotalsInput{
				BusinessGSTIN: mhGSTIN,
				ClientGSTIN:   tt.client,
				LineItems: []service.LineItemInput{
					{Quantity: 2, UnitPrice: 500, GSTRate: 18},
				},
			}, false)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntra, totals.IsIntraState)
			assert.True(t, dec(tt.wantIGST).Equal(totals.IGST))
			assert.True(t, dec(tt.wantCGST).Equal(totals.CGST))
			assert.True(t, dec("1180").Equal(totals.GrandTotal))
		})
	}
}

func TestGSTService_Totals_RoundOff(t *testing.T) {
	svc := setupGSTService(false)
	off := false

	items := []service.LineItemInput{{Quantity: 1, UnitPrice: "99.99", GSTRate: 5}}

	rounded, err := svc.Totals(service.TotalsInput{LineItems: items}, false)
	require.NoError(t, err)
	assert.True(t, dec("105").Equal(rounded.GrandTotal))
	assert.True(t, dec("0.01").Equal(rounded.RoundOff))

	exact, err := svc.Totals(service.TotalsInput{LineItems: items, RoundOff: &off}, false)
	require.NoError(t, err)
	assert.True(t, dec("104.99").Equal(exact.GrandTotal))
	assert.True(t, exact.RoundOff.IsZero())
}

func TestGSTService_AmountInWords(t *testing.T) {
	svc := setupGSTService(false)

	words, err := svc.AmountInWords("1180", false)
	require.NoError(t, err)
	assert.Equal(t, "One Thousand One Hundred and Eighty Rupees Only", words)
}

func TestGSTService_FormatCurrency_DefaultsFromConfig(t *testing.T) {
	svc := setupGSTService(false)

	got, err := svc.FormatCurrency(123456.75, "", false)
	require.NoError(t, err)
	assert.Equal(t, "₹1,23,456.75", got)

	got, err = svc.FormatCurrency("1234567.891", "usd", false)
	require.NoError(t, err)
	assert.Equal(t, "$1,234,567.89", got)
}

func TestGSTService_Check(t *testing.T) {
	svc := setupGSTService(false)

	report, err := svc.Check(context.Background(), service.CheckInput{
		BusinessGSTIN: mhGSTIN,
		ClientGSTIN:   mhGSTIN,
		LineItems:     []service.LineItemInput{{Quantity: 1, UnitPrice: 100, GSTRate: 7}},
	}, false)
	require.NoError(t, err)
	require.True(t, report.HasErrors())

	keys := make([]string, 0, len(report.Errors))
	for _, r := range report.Errors {
		keys = append(keys, r.RuleKey)
	}
	assert.Contains(t, keys, "logic.parties.distinct")
	assert.Contains(t, keys, "logic.line_item.gst_rate")
}

func TestGSTService_ReferenceTables(t *testing.T) {
	svc := service.NewGSTService(hsn.NewCatalog(nil), testChecker(), &config.EngineConfig{DefaultCurrency: "INR"})

	assert.Len(t, svc.States(), 38)
	assert.Len(t, svc.Rates(), 5)
	assert.True(t, svc.ValidateGSTIN(" "+mhGSTIN+" ").Valid)
	assert.Equal(t, "Maharashtra", svc.PlaceOfSupply(gst.SupplyParties{BusinessGSTIN: mhGSTIN, ClientGSTIN: mhBuyer}).PlaceOfSupply)
	assert.NotEmpty(t, svc.SearchHSN("consult", 5))
}
