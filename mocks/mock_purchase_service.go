package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"onebill/internal/domain"
	"onebill/internal/service"
)

// MockPurchaseService is a mock implementation of service.PurchaseService.
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) Create(ctx context.Context, businessID uuid.UUID, input service.CreatePurchaseInput) (*domain.Purchase, error) {
	args := m.Called(ctx, businessID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseService) List(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Purchase, int, error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Purchase), args.Int(1), args.Error(2)
}

func (m *MockPurchaseService) Delete(ctx context.Context, businessID, purchaseID uuid.UUID) error {
	args := m.Called(ctx, businessID, purchaseID)
	return args.Error(0)
}
