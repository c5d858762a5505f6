package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"onebill/internal/domain"
	"onebill/internal/port"
)

type paymentProofRepo struct {
	db *sqlx.DB
}

// NewPaymentProofRepo creates a new PostgreSQL-backed PaymentProofRepository.
func NewPaymentProofRepo(db *sqlx.DB) port.PaymentProofRepository {
	return &paymentProofRepo{db: db}
}

func (r *paymentProofRepo) Create(ctx context.Context, p *domain.PaymentProof) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()

	query := `INSERT INTO payment_proofs (id, invoice_id, business_id, storage_bucket, storage_key,
		file_type, verdict, score, utr, amount_matched, reasons, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.InvoiceID, p.BusinessID, p.StorageBucket, p.StorageKey, p.FileType,
		p.Verdict, p.Score, p.UTR, p.AmountMatched, p.Reasons, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("paymentProofRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentProofRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentProof, error) {
	var proofs []domain.PaymentProof
	err := r.db.SelectContext(ctx, &proofs,
		"SELECT * FROM payment_proofs WHERE invoice_id = $1 ORDER BY created_at DESC", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("paymentProofRepo.ListByInvoice: %w", err)
	}
	return proofs, nil
}
