package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onebill/internal/domain"
	"onebill/internal/middleware"
	"onebill/internal/service"
)

// PurchaseHandler handles the purchase register endpoints.
type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Create handles POST /api/v1/businesses/:businessID/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var input service.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), businessID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, purchase)
}

// List handles GET /api/v1/businesses/:businessID/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
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

	purchases, total, err := h.purchaseService.List(c.Request.Context(), businessID, domain.ListFilter{
		From: from, To: to, Offset: offset, Limit: limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, purchases, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/v1/businesses/:businessID/purchases/:purchaseID
func (h *PurchaseHandler) Delete(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	purchaseID, ok := parseID(c, "purchaseID", "purchase")
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), businessID, purchaseID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "purchase deleted"})
}
