package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"onebill/internal/middleware"
	"onebill/internal/service"
)

// ReportHandler handles GST report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseReportFilter extracts the business scope and date window.
func parseReportFilter(c *gin.Context) (uuid.UUID, service.ReportFilter, bool) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		HandleError(c, err)
		return uuid.Nil, service.ReportFilter{}, false
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return uuid.Nil, service.ReportFilter{}, false
	}
	return businessID, service.ReportFilter{From: from, To: to}, true
}

// Summary handles GET /api/v1/businesses/:businessID/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	businessID, filter, ok := parseReportFilter(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), businessID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// ExportCSV handles GET /api/v1/businesses/:businessID/reports/export.csv
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	h.export(c, h.reportService.ExportCSV)
}

// ExportXLSX handles GET /api/v1/businesses/:businessID/reports/export.xlsx
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	h.export(c, h.reportService.ExportXLSX)
}

type exportFunc func(ctx context.Context, businessID uuid.UUID, filter service.ReportFilter) (*service.Export, error)

// export streams the file, or returns its presigned link when the export was uploaded.
func (h *ReportHandler) export(c *gin.Context, run exportFunc) {
	businessID, filter, ok := parseReportFilter(c)
	if !ok {
		return
	}

	export, err := run(c.Request.Context(), businessID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	if export.URL != "" {
		RespondOK(c, export)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
