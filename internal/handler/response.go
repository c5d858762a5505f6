package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"onebill/internal/domain"
	"onebill/internal/gst"
	"onebill/internal/logger"
	"onebill/internal/registry"
	"onebill/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrInvalidGSTIN):
		return http.StatusBadRequest, "INVALID_GSTIN", err.Error()
	case errors.Is(err, gst.ErrInvalidNumber):
		return http.StatusBadRequest, "INVALID_NUMBER", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrInvalidTemplate):
		return http.StatusBadRequest, "INVALID_TEMPLATE", err.Error()
	case errors.Is(err, domain.ErrDuplicateGSTIN):
		return http.StatusConflict, "DUPLICATE_GSTIN", "a business with this GSTIN already exists"
	case errors.Is(err, domain.ErrInvalidInvoice):
		return http.StatusUnprocessableEntity, "INVALID_INVOICE", "invoice failed validation"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error()
	case errors.Is(err, domain.ErrInvoiceDeleted):
		return http.StatusConflict, "INVOICE_DELETED", "invoice has been deleted"
	case errors.Is(err, domain.ErrClientBusinessMismatch):
		return http.StatusBadRequest, "CLIENT_BUSINESS_MISMATCH", "client does not belong to this business"
	case errors.Is(err, domain.ErrMissingRecipient):
		return http.StatusBadRequest, "MISSING_RECIPIENT", "client has no email address"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrRegistryUnavailable):
		return http.StatusServiceUnavailable, "REGISTRY_UNAVAILABLE", "taxpayer registry is unavailable; try again later"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Failed invoice checks are returned as details; rate limits set Retry-After.
func HandleError(c *gin.Context, err error) {
	var rateErr *registry.RateLimitError
	if errors.As(err, &rateErr) {
		c.Header("Retry-After", strconv.Itoa(int(rateErr.RetryAfter/time.Second)))
		RespondError(c, http.StatusTooManyRequests, "RATE_LIMITED", "taxpayer registry rate limit reached")
		return
	}

	status, code, msg := MapDomainError(err)

	var invErr *service.InvalidInvoiceError
	if errors.As(err, &invErr) {
		c.JSON(status, APIResponse{
			Success: false,
			Error:   &APIError{Code: code, Message: msg, Details: invErr.Report},
		})
		return
	}

	if status >= 500 {
		logger.FromContext(c.Request.Context()).Error("internal error", zap.Error(err))
	}
	RespondError(c, status, code, msg)
}

// parsePagination reads offset and limit query parameters with the default page size.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseDateRange reads the optional from and to query parameters.
func parseDateRange(c *gin.Context) (from, to *time.Time, ok bool) {
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &from}, {"to", &to}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid '"+p.name+"' date: must be YYYY-MM-DD")
			return nil, nil, false
		}
		*p.dst = &t
	}
	return from, to, true
}

// strictParam reports whether the caller asked for strict number parsing.
func strictParam(c *gin.Context) bool {
	strict, _ := strconv.ParseBool(c.Query("strict"))
	return strict
}

// parseID parses the named uuid route parameter, writing a 400 on failure.
func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}
