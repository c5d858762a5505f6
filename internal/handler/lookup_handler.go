package handler

import (
	"github.com/gin-gonic/gin"

	"onebill/internal/port"
)

// LookupHandler proxies public GSTIN and IFSC registries.
type LookupHandler struct {
	registry port.TaxpayerRegistry
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(registry port.TaxpayerRegistry) *LookupHandler {
	return &LookupHandler{registry: registry}
}

// GSTIN handles GET /api/v1/lookup/gstin/:gstin
func (h *LookupHandler) GSTIN(c *gin.Context) {
	taxpayer, err := h.registry.LookupGSTIN(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, taxpayer)
}

// IFSC handles GET /api/v1/lookup/ifsc/:ifsc
func (h *LookupHandler) IFSC(c *gin.Context) {
	branch, err := h.registry.LookupIFSC(c.Request.Context(), c.Param("ifsc"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, branch)
}
