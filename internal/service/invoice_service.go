package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"onebill/internal/check"
	"onebill/internal/config"
	"onebill/internal/domain"
	"onebill/internal/format"
	"onebill/internal/gst"
	"onebill/internal/logger"
	"onebill/internal/port"
)

// CreateInvoiceInput is the DTO for previewing or issuing an invoice.
// IsGST and RoundOff default to the business settings.
type CreateInvoiceInput struct {
	ClientID    uuid.UUID       `json:"client_id" binding:"required"`
	InvoiceDate string          `json:"invoice_date"`
	DueDate     string          `json:"due_date"`
	LineItems   []LineItemInput `json:"line_items"`
	Notes       string          `json:"notes"`
	IsGST       *bool           `json:"is_gst"`
	RoundOff    *bool           `json:"round_off"`
}

// InvoicePreview is a computed but unsaved invoice.
type InvoicePreview struct {
	Totals        gst.InvoiceTotals `json:"totals"`
	AmountInWords string            `json:"amount_in_words"`
	GrandTotal    string            `json:"grand_total_formatted"`
	Checks        check.Report      `json:"checks"`
}

// InvalidInvoiceError carries the failed checks of a rejected invoice.
type InvalidInvoiceError struct {
	Report check.Report
}

func (e *InvalidInvoiceError) Error() string {
	msgs := make([]string, 0, len(e.Report.Errors))
	for _, r := range e.Report.Errors {
		msgs = append(msgs, r.Message)
	}
	return "invoice failed validation: " + strings.Join(msgs, "; ")
}

func (e *InvalidInvoiceError) Unwrap() error { return domain.ErrInvalidInvoice }

// InvoiceService defines the invoice lifecycle contract.
type InvoiceService interface {
	Preview(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput, strict bool) (*InvoicePreview, error)
	Create(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Send(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
}

type invoiceService struct {
	businessRepo port.BusinessRepository
	clientRepo   port.ClientRepository
	invoiceRepo  port.InvoiceRepository
	email        port.EmailSender
	checker      *check.Checker
	engine       *config.EngineConfig
	frontendURL  string
	now          func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	businessRepo port.BusinessRepository,
	clientRepo port.ClientRepository,
	invoiceRepo port.InvoiceRepository,
	email port.EmailSender,
	checker *check.Checker,
	engine *config.EngineConfig,
	frontendURL string,
) InvoiceService {
	return &invoiceService{
		businessRepo: businessRepo,
		clientRepo:   clientRepo,
		invoiceRepo:  invoiceRepo,
		email:        email,
		checker:      checker,
		engine:       engine,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		now:          time.Now,
	}
}

// draft is the loaded context shared by Preview and Create.
type draft struct {
	business    *domain.Business
	client      *domain.Client
	items       []gst.LineItem
	isGST       bool
	roundOff    bool
	invoiceDate time.Time
	dueDate     *time.Time
}

func (s *invoiceService) load(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput, strict bool) (*draft, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, businessID, input.ClientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrClientBusinessMismatch
		}
		return nil, err
	}

	items, err := toLineItems(input.LineItems, strict)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	invoiceDate, err := parseDate(input.InvoiceDate, today)
	if err != nil {
		return nil, err
	}
	var due *time.Time
	if strings.TrimSpace(input.DueDate) != "" {
		d, err := parseDate(input.DueDate, time.Time{})
		if err != nil {
			return nil, err
		}
		if d.Before(invoiceDate) {
			return nil, fmt.Errorf("%w: due_date is before invoice_date", domain.ErrInvalidInput)
		}
		due = &d
	}

	return &draft{
		business:    business,
		client:      client,
		items:       items,
		isGST:       boolOr(input.IsGST, business.IsGST),
		roundOff:    boolOr(input.RoundOff, business.RoundOff),
		invoiceDate: invoiceDate,
		dueDate:     due,
	}, nil
}

func (d *draft) totals() gst.InvoiceTotals {
	return gst.CalculateInvoiceTotals(gst.InvoiceInput{
		BusinessGSTIN: d.business.GSTIN,
		ClientGSTIN:   d.client.GSTIN,
		BusinessState: d.business.State,
		ClientState:   d.client.State,
		LineItems:     d.items,
		IsGST:         d.isGST,
		RoundOff:      d.roundOff,
	})
}

func (s *invoiceService) run(ctx context.Context, d *draft) check.Report {
	return s.checker.Run(ctx, &check.Draft{
		BusinessGSTIN: d.business.GSTIN,
		BusinessState: d.business.State,
		ClientGSTIN:   d.client.GSTIN,
		ClientState:   d.client.State,
		IsGST:         d.isGST,
		LineItems:     d.items,
	})
}

func (s *invoiceService) currency(b *domain.Business) string {
	if b.Currency != "" {
		return b.Currency
	}
	return s.engine.DefaultCurrency
}

func (s *invoiceService) Preview(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput, strict bool) (*InvoicePreview, error) {
	d, err := s.load(ctx, businessID, input, strict || s.engine.StrictNumbers)
	if err != nil {
		return nil, err
	}
	totals := d.totals()
	return &InvoicePreview{
		Totals:        totals,
		AmountInWords: format.AmountInWords(totals.GrandTotal),
		GrandTotal:    format.FormatCurrency(totals.GrandTotal, s.currency(d.business)),
		Checks:        s.run(ctx, d),
	}, nil
}

// Create issues an invoice. Numbers are always parsed strictly and any failing
// error-severity check rejects the invoice before a number is allocated.
func (s *invoiceService) Create(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	log := logger.FromContext(ctx)

	d, err := s.load(ctx, businessID, input, true)
	if err != nil {
		return nil, err
	}

	report := s.run(ctx, d)
	if report.HasErrors() {
		return nil, &InvalidInvoiceError{Report: report}
	}
	totals := d.totals()

	seq, err := s.businessRepo.NextInvoiceSequence(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("allocating invoice number: %w", err)
	}
	template := d.business.InvoiceTemplate
	if template == "" {
		template = s.engine.NumberTemplate
	}
	number, err := format.FormatInvoiceNumber(template, d.invoiceDate, seq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTemplate, err)
	}

	inv := &domain.Invoice{
		ID:            uuid.New(),
		BusinessID:    businessID,
		ClientID:      d.client.ID,
		Number:        number,
		InvoiceDate:   d.invoiceDate,
		DueDate:       d.dueDate,
		Status:        domain.InvoiceStatusDraft,
		IsGST:         d.isGST,
		Currency:      s.currency(d.business),
		AmountInWords: format.AmountInWords(totals.GrandTotal),
		Notes:         input.Notes,
	}
	inv.ApplyTotals(totals)

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		log.Error("failed to persist invoice", zap.String("number", number), zap.Error(err))
		return nil, err
	}

	log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
		zap.String("grand_total", inv.GrandTotal.StringFixed(2)),
		zap.Bool("intra_state", inv.IsIntraState),
		zap.Int("warnings", len(report.Warnings)),
	)
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Invoice, int, error) {
	filter.Offset, filter.Limit = clampPage(filter.Offset, filter.Limit)
	return s.invoiceRepo.ListByBusiness(ctx, businessID, filter)
}

func (s *invoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, inv, status); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) transition(ctx context.Context, inv *domain.Invoice, next domain.InvoiceStatus) error {
	if inv.Status == domain.InvoiceStatusDeleted {
		return domain.ErrInvoiceDeleted
	}
	if !inv.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatus, inv.Status, next)
	}

	at := s.now().UTC()
	if err := s.invoiceRepo.UpdateStatus(ctx, inv.ID, next, at); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("invoice status changed",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("from", string(inv.Status)),
		zap.String("to", string(next)),
	)
	inv.Status = next
	inv.UpdatedAt = at
	switch next {
	case domain.InvoiceStatusSent:
		inv.SentAt = &at
	case domain.InvoiceStatusPaid:
		inv.PaidAt = &at
	}
	return nil
}

// Delete soft-deletes the invoice. Its number stays allocated.
func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.UpdateStatus(ctx, id, domain.InvoiceStatusDeleted)
	return err
}

// Send emails the invoice to the client and moves a draft to sent.
func (s *invoiceService) Send(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceStatusDeleted {
		return nil, domain.ErrInvoiceDeleted
	}

	business, err := s.businessRepo.GetByID(ctx, inv.BusinessID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, inv.BusinessID, inv.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Email == "" {
		return nil, domain.ErrMissingRecipient
	}

	msg := port.InvoiceEmail{
		ToEmail:       client.Email,
		ToName:        client.Name,
		BusinessName:  business.Name,
		InvoiceNumber: inv.Number,
		Amount:        format.FormatCurrency(inv.GrandTotal, inv.Currency),
		AmountInWords: inv.AmountInWords,
	}
	if inv.DueDate != nil {
		msg.DueDate = inv.DueDate.Format("02 Jan 2006")
	}
	if s.frontendURL != "" {
		msg.ViewURL = fmt.Sprintf("%s/invoices/%s", s.frontendURL, inv.ID)
	}

	if err := s.email.SendInvoiceEmail(ctx, msg); err != nil {
		logger.FromContext(ctx).Error("failed to send invoice email",
			zap.String("invoice_id", inv.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("sending invoice email: %w", err)
	}

	if inv.Status == domain.InvoiceStatusDraft {
		if err := s.transition(ctx, inv, domain.InvoiceStatusSent); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

