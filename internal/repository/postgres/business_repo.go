package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"onebill/internal/domain"
	"onebill/internal/port"
)

type businessRepo struct {
	db *sqlx.DB
}

// NewBusinessRepo creates a new PostgreSQL-backed BusinessRepository.
func NewBusinessRepo(db *sqlx.DB) port.BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, b *domain.Business) error {
	b.ID = uuid.New()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `INSERT INTO businesses (id, name, gstin, state, state_code, address, email,
		invoice_template, invoice_counter, is_gst, round_off, currency,
		bank_name, account_number, ifsc_code, upi_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Name, b.GSTIN, b.State, b.StateCode, b.Address, b.Email,
		b.InvoiceTemplate, b.InvoiceCounter, b.IsGST, b.RoundOff, b.Currency,
		b.BankName, b.AccountNumber, b.IFSCCode, b.UPIID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "gstin") {
			return domain.ErrDuplicateGSTIN
		}
		return fmt.Errorf("businessRepo.Create: %w", err)
	}
	return nil
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var b domain.Business
	err := r.db.GetContext(ctx, &b, "SELECT * FROM businesses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("businessRepo.GetByID: %w", err)
	}
	return &b, nil
}

func (r *businessRepo) List(ctx context.Context, offset, limit int) ([]domain.Business, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM businesses")
	if err != nil {
		return nil, 0, fmt.Errorf("businessRepo.List count: %w", err)
	}

	var businesses []domain.Business
	err = r.db.SelectContext(ctx, &businesses,
		"SELECT * FROM businesses ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("businessRepo.List: %w", err)
	}
	return businesses, total, nil
}

func (r *businessRepo) Update(ctx context.Context, b *domain.Business) error {
	b.UpdatedAt = time.Now().UTC()
	query := `UPDATE businesses SET name = $1, gstin = $2, state = $3, state_code = $4,
		address = $5, email = $6, invoice_template = $7, is_gst = $8, round_off = $9,
		currency = $10, bank_name = $11, account_number = $12, ifsc_code = $13, upi_id = $14,
		updated_at = $15
		WHERE id = $16`
	result, err := r.db.ExecContext(ctx, query,
		b.Name, b.GSTIN, b.State, b.StateCode, b.Address, b.Email, b.InvoiceTemplate,
		b.IsGST, b.RoundOff, b.Currency, b.BankName, b.AccountNumber, b.IFSCCode, b.UPIID,
		b.UpdatedAt, b.ID)
	if err != nil {
		if isUniqueViolation(err, "gstin") {
			return domain.ErrDuplicateGSTIN
		}
		return fmt.Errorf("businessRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *businessRepo) NextInvoiceSequence(ctx context.Context, id uuid.UUID) (int64, error) {
	var seq int64
	err := r.db.GetContext(ctx, &seq,
		`UPDATE businesses SET invoice_counter = invoice_counter + 1, updated_at = NOW()
		 WHERE id = $1 RETURNING invoice_counter`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("businessRepo.NextInvoiceSequence: %w", err)
	}
	return seq, nil
}
