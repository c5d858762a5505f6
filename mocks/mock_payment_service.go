package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"onebill/internal/domain"
	"onebill/internal/service"
)

// MockPaymentService is a mock implementation of service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) SubmitProof(ctx context.Context, input service.SubmitProofInput) (*service.ProofResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProofResult), args.Error(1)
}

func (m *MockPaymentService) ListProofs(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentProof, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentProof), args.Error(1)
}
