package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"onebill/internal/config"
	"onebill/internal/csvexport"
	"onebill/internal/domain"
	"onebill/internal/logger"
	"onebill/internal/port"
	"onebill/internal/report"
	"onebill/internal/xlsxexport"
)

// Content types of the report exports.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportFilter selects the invoices and purchases a report covers.
type ReportFilter struct {
	From *time.Time
	To   *time.Time
}

// SummaryResult is the GST summary plus month-on-month sales performance.
type SummaryResult struct {
	report.Summary
	Performance report.Label `json:"performance"`
}

// Export is a rendered report. When exports are uploaded, URL is a presigned link
// and Data is empty.
type Export struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	URL         string `json:"url,omitempty"`
}

// ReportService defines the GST reporting contract.
type ReportService interface {
	Summary(ctx context.Context, businessID uuid.UUID, filter ReportFilter) (*SummaryResult, error)
	ExportCSV(ctx context.Context, businessID uuid.UUID, filter ReportFilter) (*Export, error)
	ExportXLSX(ctx context.Context, businessID uuid.UUID, filter ReportFilter) (*Export, error)
}

type reportService struct {
	businessRepo port.BusinessRepository
	clientRepo   port.ClientRepository
	invoiceRepo  port.InvoiceRepository
	purchaseRepo port.PurchaseRepository
	storage      port.ObjectStorage
	s3cfg        *config.S3Config
	cfg          *config.ReportConfig
	now          func() time.Time
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	businessRepo port.BusinessRepository,
	clientRepo port.ClientRepository,
	invoiceRepo port.InvoiceRepository,
	purchaseRepo port.PurchaseRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
	cfg *config.ReportConfig,
) ReportService {
	return &reportService{
		businessRepo: businessRepo,
		clientRepo:   clientRepo,
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		storage:      storage,
		s3cfg:        s3cfg,
		cfg:          cfg,
		now:          time.Now,
	}
}

// dataset is everything a report over one business and window needs.
type dataset struct {
	business  *domain.Business
	invoices  []domain.Invoice
	purchases []domain.Purchase
}

func (s *reportService) load(ctx context.Context, businessID uuid.UUID, filter ReportFilter) (*dataset, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	lf := domain.ListFilter{From: filter.From, To: filter.To, Limit: exportPageSize}

	var invoices []domain.Invoice
	for {
		page, total, err := s.invoiceRepo.ListByBusiness(ctx, businessID, lf)
		if err != nil {
			return nil, fmt.Errorf("loading invoices: %w", err)
		}
		invoices = append(invoices, page...)
		if len(page) == 0 || len(invoices) >= total {
			break
		}
		lf.Offset += len(page)
	}

	lf.Offset = 0
	var purchases []domain.Purchase
	for {
		page, total, err := s.purchaseRepo.ListByBusiness(ctx, businessID, lf)
		if err != nil {
			return nil, fmt.Errorf("loading purchases: %w", err)
		}
		purchases = append(purchases, page...)
		if len(page) == 0 || len(purchases) >= total {
			break
		}
		lf.Offset += len(page)
	}

	return &dataset{business: business, invoices: invoices, purchases: purchases}, nil
}

func (s *reportService) Summary(ctx context.Context, businessID uuid.UUID, filter ReportFilter) (*SummaryResult, error) {
	data, err := s.load(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}
	summary := report.Summarize(data.invoices, data.purchases)
	return &SummaryResult{
		Summary:     summary,
		Performance: monthOnMonth(summary, s.now()),
	}, nil
}

// monthOnMonth compares sales in the month containing now with the month before it.
func monthOnMonth(summary report.Summary, now time.Time) report.Label {
	current := now.Format("2006-01")
	previous := now.AddDate(0, 0, -now.Day()).Format("2006-01")

	cur, prev := decimal.Zero, decimal.Zero
	for _, m := range summary.Monthly {
		switch m.Key {
		case current:
			cur = m.Sales
		case previous:
			prev = m.Sales
		}
	}
	return report.Performance(cur, prev)
}

func (s *reportService) ExportCSV(ctx context.Context, businessID uuid.UUID, filter ReportFilter) (*Export, error) {
	data, err := s.load(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.registerRows(ctx, data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteInvoiceHeader(); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteInvoices(rows); err != nil {
		return nil, fmt.Errorf("writing csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	export := &Export{
		Filename:    csvexport.BuildFilename(data.business.Name, "sales", "csv", s.now()),
		ContentType: ContentTypeCSV,
		Data:        buf.Bytes(),
	}
	return s.publish(ctx, businessID, export)
}

func (s *reportService) ExportXLSX(ctx context.Context, businessID uuid.UUID, filter ReportFilter) (*Export, error) {
	data, err := s.load(ctx, businessID, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.registerRows(ctx, data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = xlsxexport.Write(&buf, &xlsxexport.Report{
		BusinessName: data.business.Name,
		GSTIN:        data.business.GSTIN,
		Period:       periodLabel(filter),
		Summary:      report.Summarize(data.invoices, data.purchases),
		Invoices:     rows,
		Purchases:    data.purchases,
	})
	if err != nil {
		return nil, err
	}

	export := &Export{
		Filename:    csvexport.BuildFilename(data.business.Name, "gst_report", "xlsx", s.now()),
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
	}
	return s.publish(ctx, businessID, export)
}

// registerRows joins invoices with their client's name and GSTIN.
func (s *reportService) registerRows(ctx context.Context, data *dataset) ([]domain.InvoiceRegisterRow, error) {
	clients := make(map[uuid.UUID]*domain.Client)
	rows := make([]domain.InvoiceRegisterRow, 0, len(data.invoices))
	for i := range data.invoices {
		inv := &data.invoices[i]
		c, ok := clients[inv.ClientID]
		if !ok {
			var err error
			c, err = s.clientRepo.GetByID(ctx, inv.BusinessID, inv.ClientID)
			if err != nil {
				return nil, fmt.Errorf("loading client %s: %w", inv.ClientID, err)
			}
			clients[inv.ClientID] = c
		}
		rows = append(rows, domain.InvoiceRegisterRow{Invoice: inv, ClientName: c.Name, ClientGSTIN: c.GSTIN})
	}
	return rows, nil
}

// publish uploads the export and swaps its body for a presigned link when uploads are on.
func (s *reportService) publish(ctx context.Context, businessID uuid.UUID, export *Export) (*Export, error) {
	if !s.cfg.UploadExports {
		return export, nil
	}

	key := fmt.Sprintf("businesses/%s/exports/%s", businessID, export.Filename)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(export.Data),
		ContentType: export.ContentType,
		Size:        int64(len(export.Data)),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.PresignGet(ctx, s.s3cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning export: %w", err)
	}

	logger.FromContext(ctx).Info("report exported",
		zap.String("business_id", businessID.String()),
		zap.String("key", key),
		zap.Int("bytes", len(export.Data)),
	)
	export.URL = url
	export.Data = nil
	return export, nil
}

func periodLabel(f ReportFilter) string {
	switch {
	case f.From != nil && f.To != nil:
		return f.From.Format(dateLayout) + " to " + f.To.Format(dateLayout)
	case f.From != nil:
		return "from " + f.From.Format(dateLayout)
	case f.To != nil:
		return "up to " + f.To.Format(dateLayout)
	}
	return "All time"
}
