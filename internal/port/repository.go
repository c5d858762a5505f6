package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"onebill/internal/domain"
)

// BusinessRepository defines the contract for business persistence.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	List(ctx context.Context, offset, limit int) ([]domain.Business, int, error)
	Update(ctx context.Context, business *domain.Business) error
	// NextInvoiceSequence atomically increments and returns the business's invoice counter.
	NextInvoiceSequence(ctx context.Context, id uuid.UUID) (int64, error)
}

// ClientRepository defines the contract for client persistence.
// All query methods are scoped by business.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Client, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, businessID, clientID uuid.UUID) error
}

// InvoiceRepository defines the contract for invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus, at time.Time) error
}

// PurchaseRepository defines the contract for purchase bill persistence.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Purchase, int, error)
	Delete(ctx context.Context, businessID, purchaseID uuid.UUID) error
}

// PaymentProofRepository defines the contract for payment proof persistence.
type PaymentProofRepository interface {
	Create(ctx context.Context, proof *domain.PaymentProof) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentProof, error)
}
