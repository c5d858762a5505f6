package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"onebill/internal/service"
)

// PaymentHandler handles payment proof endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// SubmitProof handles POST /api/v1/invoices/:id/payment-proofs
// The form carries the screenshot as "file" plus the client-side OCR output
// as "ocr_text" and "ocr_confidence".
func (h *PaymentHandler) SubmitProof(c *gin.Context) {
	invoiceID, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	var confidence float64
	if raw := c.PostForm("ocr_confidence"); raw != "" {
		confidence, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "ocr_confidence must be a number")
			return
		}
	}

	result, err := h.paymentService.SubmitProof(c.Request.Context(), service.SubmitProofInput{
		InvoiceID:     invoiceID,
		File:          file,
		Header:        header,
		OCRText:       c.PostForm("ocr_text"),
		OCRConfidence: confidence,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// ListProofs handles GET /api/v1/invoices/:id/payment-proofs
func (h *PaymentHandler) ListProofs(c *gin.Context) {
	invoiceID, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	proofs, err := h.paymentService.ListProofs(c.Request.Context(), invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, proofs)
}
