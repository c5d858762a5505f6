package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"onebill/internal/config"
	"onebill/internal/domain"
	"onebill/internal/logger"
	"onebill/internal/payment"
	"onebill/internal/port"
)

// SubmitProofInput is a payment screenshot plus the OCR output extracted from it.
type SubmitProofInput struct {
	InvoiceID     uuid.UUID
	File          multipart.File
	Header        *multipart.FileHeader
	OCRText       string
	OCRConfidence float64
}

// ProofResult is the stored proof, its analysis and the invoice afterwards.
type ProofResult struct {
	Proof    *domain.PaymentProof `json:"proof"`
	Analysis payment.Analysis     `json:"analysis"`
	Invoice  *domain.Invoice      `json:"invoice"`
}

// PaymentService defines the payment proof contract.
type PaymentService interface {
	SubmitProof(ctx context.Context, input SubmitProofInput) (*ProofResult, error)
	ListProofs(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentProof, error)
}

type paymentService struct {
	invoiceRepo port.InvoiceRepository
	proofRepo   port.PaymentProofRepository
	invoices    InvoiceService
	storage     port.ObjectStorage
	cfg         *config.S3Config
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(
	invoiceRepo port.InvoiceRepository,
	proofRepo port.PaymentProofRepository,
	invoices InvoiceService,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) PaymentService {
	return &paymentService{
		invoiceRepo: invoiceRepo,
		proofRepo:   proofRepo,
		invoices:    invoices,
		storage:     storage,
		cfg:         cfg,
		now:         time.Now,
	}
}

// SubmitProof stores the screenshot, scores it against the invoice total and marks
// the invoice paid when the verdict is verified.
func (s *paymentService) SubmitProof(ctx context.Context, input SubmitProofInput) (*ProofResult, error) {
	log := logger.FromContext(ctx)

	inv, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceStatusDeleted {
		return nil, domain.ErrInvoiceDeleted
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Header.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	// Sniff the first 512 bytes so a renamed file cannot pass as an image.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	contentType := domain.AllowedFileTypes[fileType]
	if detected := http.DetectContentType(buf[:n]); detected != contentType {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	proofID := uuid.New()
	key := fmt.Sprintf("businesses/%s/invoices/%s/payment-proofs/%s.%s", inv.BusinessID, inv.ID, proofID, ext)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	}); err != nil {
		log.Error("payment proof upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	analysis := payment.Analyze(payment.AnalysisInput{
		Text:       input.OCRText,
		Confidence: input.OCRConfidence,
		GrandTotal: inv.GrandTotal,
		Now:        s.now(),
	})

	proof := &domain.PaymentProof{
		ID:            proofID,
		InvoiceID:     inv.ID,
		BusinessID:    inv.BusinessID,
		StorageBucket: s.cfg.Bucket,
		StorageKey:    key,
		FileType:      fileType,
		Verdict:       analysis.Verdict,
		Score:         analysis.Score,
		UTR:           analysis.UTR,
		AmountMatched: analysis.FoundAmount,
		Reasons:       analysis.Reasons,
	}
	if err := s.proofRepo.Create(ctx, proof); err != nil {
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			log.Warn("failed to clean up orphaned payment proof", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	log.Info("payment proof analysed",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("verdict", string(analysis.Verdict)),
		zap.Int("score", analysis.Score),
	)

	if analysis.Verdict == domain.PaymentVerified && inv.Status.CanTransitionTo(domain.InvoiceStatusPaid) {
		updated, err := s.invoices.UpdateStatus(ctx, inv.ID, domain.InvoiceStatusPaid)
		if err != nil {
			return nil, fmt.Errorf("marking invoice paid: %w", err)
		}
		inv = updated
	}

	return &ProofResult{Proof: proof, Analysis: analysis, Invoice: inv}, nil
}

func (s *paymentService) ListProofs(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentProof, error) {
	if _, err := s.invoiceRepo.GetByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.proofRepo.ListByInvoice(ctx, invoiceID)
}
