package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"onebill/internal/domain"
	"onebill/internal/service"
	"onebill/mocks"
)

func setupBusinessService() (service.BusinessService, *mocks.MockBusinessRepo) {
	repo := new(mocks.MockBusinessRepo)
	return service.NewBusinessService(repo, engineConfig()), repo
}

func TestBusinessService_Create_Success(t *testing.T) {
	svc, repo := setupBusinessService()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Business")).Return(nil)

	b, err := svc.Create(context.Background(), service.CreateBusinessInput{
		Name:     "  Acme Studio ",
		GSTIN:    "27aaaaa0000a1z5",
		State:    "Karnataka",
		IFSCCode: "hdfc0001234",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Studio", b.Name)
	assert.Equal(t, mhGSTIN, b.GSTIN)
	assert.Equal(t, "Maharashtra", b.State)
	assert.Equal(t, "27", b.StateCode)
	assert.Equal(t, "INV-{YYYY}{MM}-{SEQ4}", b.InvoiceTemplate)
	assert.Equal(t, "INR", b.Currency)
	assert.Equal(t, "HDFC0001234", b.IFSCCode)
	assert.True(t, b.IsGST)
	assert.True(t, b.RoundOff)
	repo.AssertExpectations(t)
}

func TestBusinessService_Create_UnregisteredUsesStateName(t *testing.T) {
	svc, repo := setupBusinessService()
	isGST := false

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Business")).Return(nil)

	b, err := svc.Create(context.Background(), service.CreateBusinessInput{
		Name:  "Corner Shop",
		State: "kerala",
		IsGST: &isGST,
	})

	require.NoError(t, err)
	assert.Empty(t, b.GSTIN)
	assert.Equal(t, "Kerala", b.State)
	assert.Equal(t, "32", b.StateCode)
	assert.False(t, b.IsGST)
}

func TestBusinessService_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   service.CreateBusinessInput
		wantErr error
	}{
		{
			name:    "bad gstin",
			input:   service.CreateBusinessInput{Name: "X", GSTIN: "27AAAAA0000"},
			wantErr: domain.ErrInvalidGSTIN,
		},
		{
			name:    "bad template",
			input:   service.CreateBusinessInput{Name: "X", InvoiceTemplate: "INV-{BOGUS}"},
			wantErr: domain.ErrInvalidTemplate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setupBusinessService()

			b, err := svc.Create(context.Background(), tt.input)

			assert.Nil(t, b)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestBusinessService_Create_DuplicateGSTIN(t *testing.T) {
	svc, repo := setupBusinessService()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Business")).Return(domain.ErrDuplicateGSTIN)

	_, err := svc.Create(context.Background(), service.CreateBusinessInput{Name: "X", GSTIN: mhGSTIN})
	assert.ErrorIs(t, err, domain.ErrDuplicateGSTIN)
}

func TestBusinessService_List_ClampsPage(t *testing.T) {
	svc, repo := setupBusinessService()

	repo.On("List", mock.Anything, 0, 20).Return([]domain.Business{{Name: "A"}}, 1, nil)

	items, total, err := svc.List(context.Background(), -5, 1000)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, total)
	repo.AssertExpectations(t)
}

func TestBusinessService_Update_PartialFields(t *testing.T) {
	svc, repo := setupBusinessService()
	id := uuid.New()

	existing := &domain.Business{
		ID: id, Name: "Old", GSTIN: mhGSTIN, State: "Maharashtra", StateCode: "27",
		InvoiceTemplate: "INV-{SEQ}", Currency: "INR", IsGST: true,
	}
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Business")).Return(nil)

	name, gstin, currency := "New Name", kaGSTIN, "usd"
	b, err := svc.Update(context.Background(), id, service.UpdateBusinessInput{
		Name:     &name,
		GSTIN:    &gstin,
		Currency: &currency,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", b.Name)
	assert.Equal(t, kaGSTIN, b.GSTIN)
	assert.Equal(t, "Karnataka", b.State)
	assert.Equal(t, "29", b.StateCode)
	assert.Equal(t, "USD", b.Currency)
	assert.Equal(t, "INV-{SEQ}", b.InvoiceTemplate)
	assert.True(t, b.IsGST)
	repo.AssertExpectations(t)
}

func TestBusinessService_Update_NotFound(t *testing.T) {
	svc, repo := setupBusinessService()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.Update(context.Background(), id, service.UpdateBusinessInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBusinessService_Update_BadTemplate(t *testing.T) {
	svc, repo := setupBusinessService()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&domain.Business{ID: id}, nil)

	tpl := "{NOPE}"
	_, err := svc.Update(context.Background(), id, service.UpdateBusinessInput{InvoiceTemplate: &tpl})
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
