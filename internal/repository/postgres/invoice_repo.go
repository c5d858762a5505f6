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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (id, business_id, client_id, number, invoice_date, due_date, status,
		place_of_supply, place_of_supply_code, is_intra_state, is_gst, currency,
		subtotal, cgst, sgst, igst, total_tax, round_off, grand_total, amount_in_words,
		line_items, notes, sent_at, paid_at, created_at, updated_at)
		VALUES (:id, :business_id, :client_id, :number, :invoice_date, :due_date, :status,
		:place_of_supply, :place_of_supply_code, :is_intra_state, :is_gst, :currency,
		:subtotal, :cgst, :sgst, :igst, :total_tax, :round_off, :grand_total, :amount_in_words,
		:line_items, :notes, :sent_at, :paid_at, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, inv)
	if err != nil {
		if isUniqueViolation(err, "number") {
			return fmt.Errorf("invoiceRepo.Create: invoice number %s already issued: %w", inv.Number, domain.ErrInvalidInvoice)
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Invoice, int, error) {
	where, args := buildDateWindow(
		"WHERE business_id = $1 AND status <> 'deleted'",
		[]interface{}{businessID}, "invoice_date", filter)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByBusiness count: %w", err)
	}

	n := len(args)
	args = append(args, filter.Limit, filter.Offset)
	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices,
		fmt.Sprintf("SELECT * FROM invoices %s ORDER BY invoice_date DESC, number DESC LIMIT $%d OFFSET $%d", where, n+1, n+2),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByBusiness: %w", err)
	}
	return invoices, total, nil
}

// UpdateStatus sets status and stamps sent_at or paid_at when the new status calls for it.
func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1,
		   sent_at = CASE WHEN $1 = 'sent' THEN $2 ELSE sent_at END,
		   paid_at = CASE WHEN $1 = 'paid' THEN $2 ELSE paid_at END,
		   updated_at = $2
		 WHERE id = $3`,
		status, at, id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
