package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onebill/internal/gst"
)

func twoLineInvoice() gst.InvoiceInput {
	return gst.InvoiceInput{
		BusinessState: "Karnataka",
		ClientState:   "Karnataka",
		IsGST:         true,
		RoundOff:      true,
		LineItems: []gst.LineItem{
			{Name: "Design", Quantity: d("1"), UnitPrice: d("1000"), GSTRate: d("18")},
			{Name: "Hosting", Quantity: d("2"), UnitPrice: d("425"), GSTRate: d("18")},
		},
	}
}

func TestCalculateInvoiceTotals_IntraState(t *testing.T) {
	got := gst.CalculateInvoiceTotals(twoLineInvoice())

	require.Len(t, got.LineItems, 2)
	assertMoney(t, "1850", got.Subtotal)
	assertMoney(t, "166.50", got.CGST)
	assertMoney(t, "166.50", got.SGST)
	assertMoney(t, "0", got.IGST)
	assertMoney(t, "333", got.TotalTax)
	assertMoney(t, "2183", got.TotalBeforeRound)
	assertMoney(t, "0", got.RoundOff)
	assertMoney(t, "2183", got.GrandTotal)
	assert.True(t, got.IsIntraState)
	assert.Equal(t, "Karnataka", got.PlaceOfSupply)
	assert.Empty(t, got.PlaceOfSupplyCode)
}

func TestCalculateInvoiceTotals_GSTINWins(t *testing.T) {
	in := twoLineInvoice()
	in.BusinessGSTIN = "29AAAAA0000A1Z5"
	in.ClientGSTIN = "27BBBBB1111B1Z5"

	got := gst.CalculateInvoiceTotals(in)

	assert.False(t, got.IsIntraState)
	assert.Equal(t, "Maharashtra", got.PlaceOfSupply)
	assert.Equal(t, "27", got.PlaceOfSupplyCode)
	assertMoney(t, "0", got.CGST)
	assertMoney(t, "333", got.IGST)
	for _, line := range got.LineItems {
		assert.True(t, line.CGST.IsZero())
		assert.True(t, line.SGST.IsZero())
	}
}

func TestCalculateInvoiceTotals_RoundOff(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		roundOff bool
		before   string
		adjust   string
		grand    string
	}{
		{name: "rounds up at half", price: "1000.42", roundOff: true, before: "1180.50", adjust: "0.50", grand: "1181"},
		{name: "rounds down", price: "1000.41", roundOff: true, before: "1180.48", adjust: "-0.48", grand: "1180"},
		{name: "disabled", price: "1000.41", roundOff: false, before: "1180.48", adjust: "0", grand: "1180.48"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gst.CalculateInvoiceTotals(gst.InvoiceInput{
				BusinessState: "Goa",
				ClientState:   "Kerala",
				IsGST:         true,
				RoundOff:      tt.roundOff,
				LineItems:     []gst.LineItem{{Quantity: d("1"), UnitPrice: d(tt.price), GSTRate: d("18")}},
			})
			assertMoney(t, tt.before, got.TotalBeforeRound)
			assertMoney(t, tt.adjust, got.RoundOff)
			assertMoney(t, tt.grand, got.GrandTotal)
			assert.True(t, got.GrandTotal.Equal(got.Subtotal.Add(got.TotalTax).Add(got.RoundOff).Round(2)))
		})
	}
}

func TestCalculateInvoiceTotals_Empty(t *testing.T) {
	got := gst.CalculateInvoiceTotals(gst.InvoiceInput{IsGST: true, RoundOff: true})

	assert.NotNil(t, got.LineItems)
	assert.Empty(t, got.LineItems)
	assertMoney(t, "0", got.Subtotal)
	assertMoney(t, "0", got.TotalTax)
	assertMoney(t, "0", got.GrandTotal)
	assert.True(t, got.IsIntraState)
	assert.Equal(t, gst.UnknownPlace, got.PlaceOfSupply)
}

func TestCalculateInvoiceTotals_NonGST(t *testing.T) {
	in := twoLineInvoice()
	in.IsGST = false

	got := gst.CalculateInvoiceTotals(in)

	assertMoney(t, "0", got.TotalTax)
	assertMoney(t, "1850", got.GrandTotal)
}

func TestCalculateInvoiceTotals_Deterministic(t *testing.T) {
	in := twoLineInvoice()
	first := gst.CalculateInvoiceTotals(in)
	second := gst.CalculateInvoiceTotals(in)
	assert.Equal(t, first, second)
}
