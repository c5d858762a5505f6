package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"onebill/internal/domain"
	"onebill/internal/gst"
	"onebill/internal/port"
	"onebill/internal/service"
	"onebill/mocks"
)

type invoiceFixture struct {
	svc          service.InvoiceService
	businessRepo *mocks.MockBusinessRepo
	clientRepo   *mocks.MockClientRepo
	invoiceRepo  *mocks.MockInvoiceRepo
	email        *mocks.MockEmailSender
	business     *domain.Business
	client       *domain.Client
}

func setupInvoiceService() *invoiceFixture {
	f := &invoiceFixture{
		businessRepo: new(mocks.MockBusinessRepo),
		clientRepo:   new(mocks.MockClientRepo),
		invoiceRepo:  new(mocks.MockInvoiceRepo),
		email:        new(mocks.MockEmailSender),
	}
	f.business = &domain.Business{
		ID: uuid.New(), Name: "Acme Studio", GSTIN: mhGSTIN, State: "Maharashtra", StateCode: "27",
		InvoiceTemplate: "INV-{YYYY}{MM}-{SEQ4}", IsGST: true, RoundOff: true, Currency: "INR",
	}
	f.client = &domain.Client{
		ID: uuid.New(), BusinessID: f.business.ID, Name: "Kaveri Stores", GSTIN: kaGSTIN,
		State: "Karnataka", StateCode: "29", Email: "accounts@kaveri.in",
	}
	f.svc = service.NewInvoiceService(f.businessRepo, f.clientRepo, f.invoiceRepo, f.email,
		testChecker(), engineConfig(), "https://app.onebill.in/")
	return f
}

func (f *invoiceFixture) expectParties() {
	f.businessRepo.On("GetByID", mock.Anything, f.business.ID).Return(f.business, nil)
	f.clientRepo.On("GetByID", mock.Anything, f.business.ID, f.client.ID).Return(f.client, nil)
}

func (f *invoiceFixture) input(items ...service.LineItemInput) service.CreateInvoiceInput {
	return service.CreateInvoiceInput{
		ClientID:    f.client.ID,
		InvoiceDate: "2025-04-10",
		DueDate:     "2025-04-25",
		LineItems:   items,
	}
}

func TestInvoiceService_Preview(t *testing.T) {
	f := setupInvoiceService()
	f.expectParties()

	preview, err := f.svc.Preview(context.Background(), f.business.ID,
		f.input(service.LineItemInput{Name: "Design", HSNSAC: "998314", Quantity: 2, UnitPrice: "500", GSTRate: 18}), false)

	require.NoError(t, err)
	assert.False(t, preview.Totals.IsIntraState)
	assert.Equal(t, "Karnataka", preview.Totals.PlaceOfSupply)
	assert.True(t, dec("180").Equal(preview.Totals.IGST))
	assert.True(t, dec("1180").Equal(preview.Totals.GrandTotal))
	assert.Equal(t, "₹1,180.00", preview.GrandTotal)
	assert.Equal(t, "One Thousand One Hundred and Eighty Rupees Only", preview.AmountInWords)
	assert.False(t, preview.Checks.HasErrors())
	f.invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceService_Preview_LenientVsStrict(t *testing.T) {
	f := setupInvoiceService()
	f.expectParties()
	in := f.input(service.LineItemInput{Quantity: "two", UnitPrice: 100, GSTRate: 18})

	preview, err := f.svc.Preview(context.Background(), f.business.ID, in, false)
	require.NoError(t, err)
	assert.True(t, preview.Totals.GrandTotal.IsZero())

	_, err = f.svc.Preview(context.Background(), f.business.ID, in, true)
	assert.True(t, errors.Is(err, gst.ErrInvalidNumber))
}

func TestInvoiceService_Create_Success(t *testing.T) {
	f := setupInvoiceService()
	f.expectParties()
	f.businessRepo.On("NextInvoiceSequence", mock.Anything, f.business.ID).Return(int64(7), nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv, err := f.svc.Create(context.Background(), f.business.ID,
		f.input(service.LineItemInput{Name: "Design", Quantity: 1, UnitPrice: "2000", DiscountPercent: 10, GSTRate: 18}))

	require.NoError(t, err)
	assert.Equal(t, "INV-202504-0007", inv.Number)
	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "29", inv.PlaceOfSupplyCode)
	assert.True(t, dec("1800").Equal(inv.Subtotal))
	assert.True(t, dec("324").Equal(inv.IGST))
	assert.True(t, dec("2124").Equal(inv.GrandTotal))
	assert.Equal(t, "Two Thousand One Hundred and Twenty Four Rupees Only", inv.AmountInWords)
	require.NotNil(t, inv.DueDate)
	assert.Equal(t, "2025-04-25", inv.DueDate.Format("2006-01-02"))
	assert.Len(t, inv.LineItems, 1)

	f.businessRepo.AssertExpectations(t)
	f.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Create_RejectsFailedChecks(t *testing.T) {
	f := setupInvoiceService()
	f.expectParties()

	_, err := f.svc.Create(context.Background(), f.business.ID,
		f.input(service.LineItemInput{Quantity: 1, UnitPrice: 100, GSTRate: 7}))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)

	var invErr *service.InvalidInvoiceError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, "logic.line_item.gst_rate", invErr.Report.Errors[0].RuleKey)
	f.businessRepo.AssertNotCalled(t, "NextInvoiceSequence", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_AlwaysStrict(t *testing.T) {
	f := setupInvoiceService()
	f.expectParties()

	_, err := f.svc.Create(context.Background(), f.business.ID,
		f.input(service.LineItemInput{Quantity: 1, UnitPrice: "1,000", GSTRate: 18}))
	assert.True(t, errors.Is(err, gst.ErrInvalidNumber))
}

func TestInvoiceService_Create_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*service.CreateInvoiceInput)
		wantErr error
	}{
		{name: "bad invoice date", mutate: func(in *service.CreateInvoiceInput) { in.InvoiceDate = "10/04/2025" }, wantErr: domain.ErrInvalidInput},
		{name: "due before issue", mutate: func(in *service.CreateInvoiceInput) { in.DueDate = "2025-04-01" }, wantErr: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupInvoiceService()
			f.expectParties()
			in := f.input(service.LineItemInput{Quantity: 1, UnitPrice: 100, GSTRate: 18})
			tt.mutate(&in)

			_, err := f.svc.Create(context.Background(), f.business.ID, in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInvoiceService_Create_ClientFromOtherBusiness(t *testing.T) {
	f := setupInvoiceService()
	f.businessRepo.On("GetByID", mock.Anything, f.business.ID).Return(f.business, nil)
	f.clientRepo.On("GetByID", mock.Anything, f.business.ID, f.client.ID).Return(nil, domain.ErrNotFound)

	_, err := f.svc.Create(context.Background(), f.business.ID, f.input())
	assert.ErrorIs(t, err, domain.ErrClientBusinessMismatch)
}

func TestInvoiceService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.InvoiceStatus
		to      domain.InvoiceStatus
		wantErr error
	}{
		{name: "draft to sent", from: domain.InvoiceStatusDraft, to: domain.InvoiceStatusSent},
		{name: "sent to paid", from: domain.InvoiceStatusSent, to: domain.InvoiceStatusPaid},
		{name: "paid to draft", from: domain.InvoiceStatusPaid, to: domain.InvoiceStatusDraft, wantErr: domain.ErrInvalidStatus},
		{name: "deleted is terminal", from: domain.InvoiceStatusDeleted, to: domain.InvoiceStatusSent, wantErr: domain.ErrInvoiceDeleted},
		{name: "unknown status", from: domain.InvoiceStatusDraft, to: "void", wantErr: domain.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupInvoiceService()
			id := uuid.New()
			f.invoiceRepo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id, Status: tt.from}, nil).Maybe()
			f.invoiceRepo.On("UpdateStatus", mock.Anything, id, tt.to, mock.AnythingOfType("time.Time")).Return(nil).Maybe()

			inv, err := f.svc.UpdateStatus(context.Background(), id, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, inv.Status)
			switch tt.to {
			case domain.InvoiceStatusSent:
				assert.NotNil(t, inv.SentAt)
			case domain.InvoiceStatusPaid:
				assert.NotNil(t, inv.PaidAt)
			}
		})
	}
}

func TestInvoiceService_Delete(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id, Status: domain.InvoiceStatusSent}, nil)
	f.invoiceRepo.On("UpdateStatus", mock.Anything, id, domain.InvoiceStatusDeleted, mock.AnythingOfType("time.Time")).Return(nil)

	assert.NoError(t, f.svc.Delete(context.Background(), id))
	f.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Send(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()
	due := time.Date(2025, time.April, 25, 0, 0, 0, 0, time.UTC)

	f.invoiceRepo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{
		ID: id, BusinessID: f.business.ID, ClientID: f.client.ID, Number: "INV-202504-0007",
		Status: domain.InvoiceStatusDraft, Currency: "INR", GrandTotal: dec("2124"),
		AmountInWords: "Two Thousand One Hundred and Twenty Four Rupees Only", DueDate: &due,
	}, nil)
	f.expectParties()
	f.email.On("SendInvoiceEmail", mock.Anything, mock.MatchedBy(func(msg port.InvoiceEmail) bool {
		return msg.ToEmail == "accounts@kaveri.in" &&
			msg.Amount == "₹2,124.00" &&
			msg.DueDate == "25 Apr 2025" &&
			msg.ViewURL == "https://app.onebill.in/invoices/"+id.String()
	})).Return(nil)
	f.invoiceRepo.On("UpdateStatus", mock.Anything, id, domain.InvoiceStatusSent, mock.AnythingOfType("time.Time")).Return(nil)

	inv, err := f.svc.Send(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, inv.Status)
	f.email.AssertExpectations(t)
	f.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Send_NoRecipient(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()
	f.client.Email = ""

	f.invoiceRepo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{
		ID: id, BusinessID: f.business.ID, ClientID: f.client.ID, Status: domain.InvoiceStatusDraft,
	}, nil)
	f.expectParties()

	_, err := f.svc.Send(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrMissingRecipient)
	f.email.AssertNotCalled(t, "SendInvoiceEmail", mock.Anything, mock.Anything)
}

func TestInvoiceService_Send_EmailFailureKeepsStatus(t *testing.T) {
	f := setupInvoiceService()
	id := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{
		ID: id, BusinessID: f.business.ID, ClientID: f.client.ID, Status: domain.InvoiceStatusDraft,
	}, nil)
	f.expectParties()
	f.email.On("SendInvoiceEmail", mock.Anything, mock.Anything).Return(errors.New("ses down"))

	_, err := f.svc.Send(context.Background(), id)
	assert.Error(t, err)
	f.invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
