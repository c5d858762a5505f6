package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onebill/internal/middleware"
	"onebill/internal/service"
)

// BusinessHandler handles business management endpoints.
type BusinessHandler struct {
	businessService service.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businessService service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Create handles POST /api/v1/businesses
func (h *BusinessHandler) Create(c *gin.Context) {
	var input service.CreateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	business, err := h.businessService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, business)
}

// List handles GET /api/v1/businesses
func (h *BusinessHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	businesses, total, err := h.businessService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, businesses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/businesses/:businessID
func (h *BusinessHandler) GetByID(c *gin.Context) {
	id, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	business, err := h.businessService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, business)
}

// Update handles PUT /api/v1/businesses/:businessID
func (h *BusinessHandler) Update(c *gin.Context) {
	id, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var input service.UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	business, err := h.businessService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, business)
}
