package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"onebill/internal/domain"
)

// MockPaymentProofRepo is a mock implementation of port.PaymentProofRepository.
type MockPaymentProofRepo struct {
	mock.Mock
}

func (m *MockPaymentProofRepo) Create(ctx context.Context, proof *domain.PaymentProof) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

func (m *MockPaymentProofRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentProof, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentProof), args.Error(1)
}
