package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"onebill/internal/middleware"
	"onebill/internal/service"
)

// ClientHandler handles client endpoints nested under a business.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create handles POST /api/v1/businesses/:businessID/clients
func (h *ClientHandler) Create(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	var input service.CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), businessID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, client)
}

// List handles GET /api/v1/businesses/:businessID/clients
func (h *ClientHandler) List(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	offset, limit := parsePagination(c)

	clients, total, err := h.clientService.List(c.Request.Context(), businessID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, clients, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/businesses/:businessID/clients/:clientID
func (h *ClientHandler) GetByID(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	clientID, ok := parseID(c, "clientID", "client")
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), businessID, clientID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, client)
}

// Update handles PUT /api/v1/businesses/:businessID/clients/:clientID
func (h *ClientHandler) Update(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	clientID, ok := parseID(c, "clientID", "client")
	if !ok {
		return
	}

	var input service.UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), businessID, clientID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, client)
}

// Delete handles DELETE /api/v1/businesses/:businessID/clients/:clientID
func (h *ClientHandler) Delete(c *gin.Context) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	clientID, ok := parseID(c, "clientID", "client")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), businessID, clientID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "client deleted"})
}
