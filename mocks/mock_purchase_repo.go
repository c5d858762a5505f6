package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"onebill/internal/domain"
)

// MockPurchaseRepo is a mock implementation of port.PurchaseRepository.
type MockPurchaseRepo struct {
	mock.Mock
}

func (m *MockPurchaseRepo) Create(ctx context.Context, purchase *domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Purchase, int, error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Purchase), args.Int(1), args.Error(2)
}

func (m *MockPurchaseRepo) Delete(ctx context.Context, businessID, purchaseID uuid.UUID) error {
	args := m.Called(ctx, businessID, purchaseID)
	return args.Error(0)
}
