package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"onebill/internal/gst"
	"onebill/internal/service"
)

// GSTHandler exposes the stateless tax engine.
type GSTHandler struct {
	gstService service.GSTService
}

// NewGSTHandler creates a new GSTHandler.
func NewGSTHandler(gstService service.GSTService) *GSTHandler {
	return &GSTHandler{gstService: gstService}
}

type validateGSTINRequest struct {
	GSTIN string `json:"gstin"`
}

type amountRequest struct {
	Amount   any    `json:"amount"`
	Currency string `json:"currency"`
}

// ValidateGSTIN handles POST /api/v1/gst/validate-gstin
// Validation failures are reported in the body with a 200.
func (h *GSTHandler) ValidateGSTIN(c *gin.Context) {
	var req validateGSTINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	RespondOK(c, h.gstService.ValidateGSTIN(req.GSTIN))
}

// PlaceOfSupply handles POST /api/v1/gst/place-of-supply
func (h *GSTHandler) PlaceOfSupply(c *gin.Context) {
	var req gst.SupplyParties
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	RespondOK(c, h.gstService.PlaceOfSupply(req))
}

// LineTax handles POST /api/v1/gst/line-tax
func (h *GSTHandler) LineTax(c *gin.Context) {
	var req service.LineTaxInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	tax, err := h.gstService.LineTax(req, strictParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tax)
}

// Line handles POST /api/v1/gst/line
func (h *GSTHandler) Line(c *gin.Context) {
	var req service.ComputeLineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	line, err := h.gstService.ComputeLine(req, strictParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, line)
}

// Totals handles POST /api/v1/gst/totals
func (h *GSTHandler) Totals(c *gin.Context) {
	var req service.TotalsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	totals, err := h.gstService.Totals(req, strictParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, totals)
}

// Check handles POST /api/v1/gst/check
func (h *GSTHandler) Check(c *gin.Context) {
	var req service.CheckInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	report, err := h.gstService.Check(c.Request.Context(), req, strictParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// AmountInWords handles POST /api/v1/gst/words
func (h *GSTHandler) AmountInWords(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	words, err := h.gstService.AmountInWords(req.Amount, strictParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"words": words})
}

// FormatCurrency handles POST /api/v1/gst/currency
func (h *GSTHandler) FormatCurrency(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	formatted, err := h.gstService.FormatCurrency(req.Amount, req.Currency, strictParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"formatted": formatted})
}

// States handles GET /api/v1/gst/states
func (h *GSTHandler) States(c *gin.Context) {
	RespondOK(c, h.gstService.States())
}

// Rates handles GET /api/v1/gst/rates
func (h *GSTHandler) Rates(c *gin.Context) {
	RespondOK(c, h.gstService.Rates())
}

// SearchHSN handles GET /api/v1/gst/hsn?q=
func (h *GSTHandler) SearchHSN(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	RespondOK(c, h.gstService.SearchHSN(c.Query("q"), limit))
}
