package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"onebill/internal/domain"
	"onebill/internal/service"
	"onebill/mocks"
)

func setupPurchaseService() (service.PurchaseService, *mocks.MockBusinessRepo, *mocks.MockPurchaseRepo, *domain.Business) {
	businessRepo := new(mocks.MockBusinessRepo)
	purchaseRepo := new(mocks.MockPurchaseRepo)
	b := &domain.Business{ID: uuid.New(), GSTIN: mhGSTIN, State: "Maharashtra", StateCode: "27"}
	businessRepo.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	return service.NewPurchaseService(businessRepo, purchaseRepo), businessRepo, purchaseRepo, b
}

func TestPurchaseService_Create_DerivesSplitFromRate(t *testing.T) {
	tests := []struct {
		name        string
		vendorGSTIN string
		vendorState string
		wantCGST    string
		wantIGST    string
	}{
		{name: "inter-state vendor", vendorGSTIN: kaGSTIN, wantCGST: "0", wantIGST: "180"},
		{name: "intra-state vendor", vendorGSTIN: mhBuyer, wantCGST: "90", wantIGST: "0"},
		{name: "unregistered vendor in same state", vendorState: "maharashtra", wantCGST: "90", wantIGST: "0"},
		{name: "unregistered vendor in other state", vendorState: "Karnataka", wantCGST: "0", wantIGST: "180"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, purchaseRepo, b := setupPurchaseService()
			purchaseRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Purchase")).Return(nil)

			p, err := svc.Create(context.Background(), b.ID, service.CreatePurchaseInput{
				VendorName:    "Paper Mart",
				VendorGSTIN:   tt.vendorGSTIN,
				VendorState:   tt.vendorState,
				BillNumber:    "B-77",
				BillDate:      "2025-04-02",
				TaxableAmount: "1000",
				GSTRate:       18,
			})

			require.NoError(t, err)
			assert.True(t, dec(tt.wantCGST).Equal(p.CGST), "cgst %s", p.CGST)
			assert.True(t, dec(tt.wantIGST).Equal(p.IGST), "igst %s", p.IGST)
			assert.True(t, dec("180").Equal(p.TotalTax))
			assert.True(t, dec("1180").Equal(p.TotalAmount))
			assert.Equal(t, "2025-04-02", p.BillDate.Format("2006-01-02"))
		})
	}
}

func TestPurchaseService_Create_ExplicitHeadsWin(t *testing.T) {
	svc, _, purchaseRepo, b := setupPurchaseService()
	purchaseRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Purchase")).Return(nil)

	p, err := svc.Create(context.Background(), b.ID, service.CreatePurchaseInput{
		VendorName:    "Paper Mart",
		VendorGSTIN:   kaGSTIN,
		TaxableAmount: 1000,
		GSTRate:       18,
		CGST:          "45",
		SGST:          "45",
	})

	require.NoError(t, err)
	assert.True(t, dec("45").Equal(p.CGST))
	assert.True(t, p.IGST.IsZero())
	assert.True(t, dec("90").Equal(p.TotalTax))
	assert.True(t, dec("1090").Equal(p.TotalAmount))
}

func TestPurchaseService_Create_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   service.CreatePurchaseInput
		wantErr error
	}{
		{name: "negative amount", input: service.CreatePurchaseInput{VendorName: "V", TaxableAmount: -5}, wantErr: domain.ErrInvalidInput},
		{name: "malformed amount", input: service.CreatePurchaseInput{VendorName: "V", TaxableAmount: "abc"}, wantErr: nil},
		{name: "bad date", input: service.CreatePurchaseInput{VendorName: "V", BillDate: "yesterday"}, wantErr: domain.ErrInvalidInput},
		{name: "bad vendor gstin", input: service.CreatePurchaseInput{VendorName: "V", VendorGSTIN: "XX"}, wantErr: domain.ErrInvalidGSTIN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, purchaseRepo, b := setupPurchaseService()

			p, err := svc.Create(context.Background(), b.ID, tt.input)

			assert.Nil(t, p)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			purchaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPurchaseService_ListAndDelete(t *testing.T) {
	svc, _, purchaseRepo, b := setupPurchaseService()
	id := uuid.New()

	purchaseRepo.On("ListByBusiness", mock.Anything, b.ID, domain.ListFilter{Limit: 20}).Return([]domain.Purchase{{ID: id}}, 1, nil)
	purchaseRepo.On("Delete", mock.Anything, b.ID, id).Return(nil)

	items, total, err := svc.List(context.Background(), b.ID, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, svc.Delete(context.Background(), b.ID, id))
	purchaseRepo.AssertExpectations(t)
}
