package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onebill/internal/domain"
	"onebill/internal/middleware"
	"onebill/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type updateStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required"`
}

// Preview handles POST /api/v1/businesses/:businessID/invoices/preview
func (h *InvoiceHandler) Preview(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	preview, err := h.invoiceService.Preview(c.Request.Context(), businessID, input, strictParam(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// Create handles POST /api/v1/businesses/:businessID/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), businessID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// List handles GET /api/v1/businesses/:businessID/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	invoices, total, err := h.invoiceService.List(c.Request.Context(), businessID, domain.ListFilter{
		From: from, To: to, Offset: offset, Limit: limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// UpdateStatus handles PATCH /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// Send handles POST /api/v1/invoices/:id/send
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}
