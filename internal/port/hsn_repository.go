package port

import (
	"context"

	"onebill/internal/domain"
)

// HSNRepository defines the contract for HSN/SAC master data access.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]domain.HSNCode, error)
}
