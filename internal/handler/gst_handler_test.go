package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onebill/internal/check"
	"onebill/internal/config"
	"onebill/internal/domain"
	"onebill/internal/handler"
	"onebill/internal/hsn"
	"onebill/internal/service"
)

func newGSTHandler(strict bool) *handler.GSTHandler {
	catalog := hsn.NewCatalog([]domain.HSNCode{
		{Code: "998314", Description: "IT design and development services", GSTRate: decimal.NewFromInt(18)},
	})
	cfg := &config.EngineConfig{StrictNumbers: strict, DefaultCurrency: "INR", NumberTemplate: "INV-{YYYY}{MM}-{SEQ4}"}
	return handler.NewGSTHandler(service.NewGSTService(catalog, check.NewChecker(catalog), cfg))
}

func dataMap(t *testing.T, resp handler.APIResponse) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	return data
}

func TestGSTHandler_ValidateGSTIN(t *testing.T) {
	tests := []struct {
		gstin     string
		wantValid bool
		wantState string
	}{
		{"27AAAAA0000A1Z5", true, "Maharashtra"},
		{" 29bbbbb1111b1z5 ", true, "Karnataka"},
		{"99AAAAA0000A1Z5", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.gstin, func(t *testing.T) {
			c, w := newContext(http.MethodPost, "/gst/validate-gstin", gin.H{"gstin": tt.gstin})
			newGSTHandler(false).ValidateGSTIN(c)

			assert.Equal(t, http.StatusOK, w.Code)
			data := dataMap(t, decodeResponse(t, w))
			assert.Equal(t, tt.wantValid, data["valid"])
			if tt.wantState != "" {
				assert.Equal(t, tt.wantState, data["state_name"])
			}
		})
	}
}

func TestGSTHandler_PlaceOfSupply(t *testing.T) {
	c, w := newContext(http.MethodPost, "/gst/place-of-supply", gin.H{
		"business_gstin": "27AAAAA0000A1Z5",
		"client_gstin":   "29BBBBB1111B1Z5",
	})
	newGSTHandler(false).PlaceOfSupply(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeResponse(t, w))
	assert.Equal(t, false, data["is_intra_state"])
	assert.Equal(t, "29", data["place_of_supply_code"])
}

func TestGSTHandler_LineTax(t *testing.T) {
	c, w := newContext(http.MethodPost, "/gst/line-tax", gin.H{
		"is_intra_state": true,
		"taxable_amount": "1000",
		"gst_rate":       18,
	})
	newGSTHandler(false).LineTax(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeResponse(t, w))
	assert.Equal(t, "90", data["cgst"])
	assert.Equal(t, "90", data["sgst"])
	assert.Equal(t, "0", data["igst"])
	assert.Equal(t, "1180", data["total_with_tax"])
}

func TestGSTHandler_LineTax_StrictRejectsMalformed(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		configured bool
		wantCode   int
	}{
		{"lenient reads zero", "", false, http.StatusOK},
		{"strict query", "?strict=true", false, http.StatusBadRequest},
		{"strict config", "", true, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(http.MethodPost, "/gst/line-tax"+tt.query, gin.H{
				"taxable_amount": "12abc",
				"gst_rate":       18,
			})
			newGSTHandler(tt.configured).LineTax(c)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusBadRequest {
				assert.Equal(t, "INVALID_NUMBER", decodeResponse(t, w).Error.Code)
			}
		})
	}
}

func TestGSTHandler_Totals(t *testing.T) {
	c, w := newContext(http.MethodPost, "/gst/totals", gin.H{
		"business_gstin": "27AAAAA0000A1Z5",
		"client_gstin":   "27BBBBB1111B1Z5",
		"line_items": []gin.H{
			{"name": "Consulting", "quantity": 2, "unit_price": "1000", "gst_rate": 18},
		},
	})
	newGSTHandler(false).Totals(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeResponse(t, w))
	assert.Equal(t, "2000", data["subtotal"])
	assert.Equal(t, "180", data["cgst"])
	assert.Equal(t, "180", data["sgst"])
	assert.Equal(t, "2360", data["grand_total"])
	assert.Equal(t, true, data["is_intra_state"])
}

func TestGSTHandler_Check_ReportsBadRate(t *testing.T) {
	c, w := newContext(http.MethodPost, "/gst/check", gin.H{
		"business_gstin": "27AAAAA0000A1Z5",
		"client_gstin":   "27BBBBB1111B1Z5",
		"line_items": []gin.H{
			{"name": "Consulting", "hsn_sac": "998314", "quantity": 1, "unit_price": 100, "gst_rate": 7},
		},
	})
	newGSTHandler(false).Check(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeResponse(t, w))
	assert.NotEmpty(t, data["errors"])
}

func TestGSTHandler_AmountInWords(t *testing.T) {
	c, w := newContext(http.MethodPost, "/gst/words", gin.H{"amount": "2183"})
	newGSTHandler(false).AmountInWords(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeResponse(t, w))
	assert.Equal(t, "Two Thousand One Hundred and Eighty Three Rupees Only", data["words"])
}

func TestGSTHandler_FormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
		want string
	}{
		{"default currency", gin.H{"amount": "123456.75"}, "₹1,23,456.75"},
		{"explicit usd", gin.H{"amount": "1234567.891", "currency": "USD"}, "$1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(http.MethodPost, "/gst/currency", tt.body)
			newGSTHandler(false).FormatCurrency(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, dataMap(t, decodeResponse(t, w))["formatted"])
		})
	}
}

func TestGSTHandler_ReferenceTables(t *testing.T) {
	h := newGSTHandler(false)

	c, w := newContext(http.MethodGet, "/gst/states", nil)
	h.States(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data, 38)

	c, w = newContext(http.MethodGet, "/gst/rates", nil)
	h.Rates(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeResponse(t, w).Data)
}

func TestGSTHandler_SearchHSN(t *testing.T) {
	h := newGSTHandler(false)

	c, w := newContext(http.MethodGet, "/gst/hsn?q=9983&limit=500", nil)
	h.SearchHSN(c)

	assert.Equal(t, http.StatusOK, w.Code)
	hits := decodeResponse(t, w).Data.([]interface{})
	assert.NotEmpty(t, hits)
	assert.LessOrEqual(t, len(hits), 10)

	c, w = newContext(http.MethodGet, "/gst/hsn", nil)
	h.SearchHSN(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeResponse(t, w).Data)
}
