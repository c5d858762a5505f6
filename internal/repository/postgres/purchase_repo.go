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

type purchaseRepo struct {
	db *sqlx.DB
}

// NewPurchaseRepo creates a new PostgreSQL-backed PurchaseRepository.
func NewPurchaseRepo(db *sqlx.DB) port.PurchaseRepository {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()

	query := `INSERT INTO purchases (id, business_id, vendor_name, vendor_gstin, bill_number, bill_date,
		taxable_amount, cgst, sgst, igst, total_tax, total_amount, is_deleted, created_at)
		VALUES (:id, :business_id, :vendor_name, :vendor_gstin, :bill_number, :bill_date,
		:taxable_amount, :cgst, :sgst, :igst, :total_tax, :total_amount, :is_deleted, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("purchaseRepo.Create: %w", err)
	}
	return nil
}

func (r *purchaseRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Purchase, int, error) {
	where, args := buildDateWindow(
		"WHERE business_id = $1 AND is_deleted = FALSE",
		[]interface{}{businessID}, "bill_date", filter)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchases "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.ListByBusiness count: %w", err)
	}

	n := len(args)
	args = append(args, filter.Limit, filter.Offset)
	var purchases []domain.Purchase
	err = r.db.SelectContext(ctx, &purchases,
		fmt.Sprintf("SELECT * FROM purchases %s ORDER BY bill_date DESC LIMIT $%d OFFSET $%d", where, n+1, n+2),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.ListByBusiness: %w", err)
	}
	return purchases, total, nil
}

// Delete soft-deletes a purchase so it drops out of input tax credit.
func (r *purchaseRepo) Delete(ctx context.Context, businessID, purchaseID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE purchases SET is_deleted = TRUE WHERE id = $1 AND business_id = $2 AND is_deleted = FALSE",
		purchaseID, businessID)
	if err != nil {
		return fmt.Errorf("purchaseRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
