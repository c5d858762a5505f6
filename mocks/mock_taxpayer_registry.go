package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"onebill/internal/port"
)

// MockTaxpayerRegistry is a mock implementation of port.TaxpayerRegistry.
type MockTaxpayerRegistry struct {
	mock.Mock
}

func (m *MockTaxpayerRegistry) LookupGSTIN(ctx context.Context, gstin string) (*port.Taxpayer, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.Taxpayer), args.Error(1)
}

func (m *MockTaxpayerRegistry) LookupIFSC(ctx context.Context, ifsc string) (*port.BankBranch, error) {
	args := m.Called(ctx, ifsc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.BankBranch), args.Error(1)
}
