package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"onebill/internal/config"
	"onebill/internal/domain"
	"onebill/internal/port"
	"onebill/internal/service"
	"onebill/mocks"
)

type reportFixture struct {
	businessRepo *mocks.MockBusinessRepo
	clientRepo   *mocks.MockClientRepo
	invoiceRepo  *mocks.MockInvoiceRepo
	purchaseRepo *mocks.MockPurchaseRepo
	storage      *mocks.MockObjectStorage
	business     *domain.Business
	client       *domain.Client
}

func setupReportFixture() *reportFixture {
	f := &reportFixture{
		businessRepo: new(mocks.MockBusinessRepo),
		clientRepo:   new(mocks.MockClientRepo),
		invoiceRepo:  new(mocks.MockInvoiceRepo),
		purchaseRepo: new(mocks.MockPurchaseRepo),
		storage:      new(mocks.MockObjectStorage),
	}
	f.business = &domain.Business{ID: uuid.New(), Name: "Acme Studio", GSTIN: mhGSTIN}
	f.client = &domain.Client{ID: uuid.New(), BusinessID: f.business.ID, Name: "Kaveri Stores", GSTIN: kaGSTIN}
	f.businessRepo.On("GetByID", mock.Anything, f.business.ID).Return(f.business, nil)
	f.clientRepo.On("GetByID", mock.Anything, f.business.ID, f.client.ID).Return(f.client, nil).Maybe()
	return f
}

func (f *reportFixture) service(upload bool) service.ReportService {
	return service.NewReportService(f.businessRepo, f.clientRepo, f.invoiceRepo, f.purchaseRepo, f.storage,
		&config.S3Config{Bucket: "onebill-files"},
		&config.ReportConfig{UploadExports: upload, PresignExpiry: time.Hour})
}

func (f *reportFixture) invoice(date time.Time, total, igst string) domain.Invoice {
	return domain.Invoice{
		ID: uuid.New(), BusinessID: f.business.ID, ClientID: f.client.ID, Number: "INV-" + date.Format("0102"),
		InvoiceDate: date, Status: domain.InvoiceStatusSent, PlaceOfSupply: "Karnataka", PlaceOfSupplyCode: "29",
		IsGST: true, Subtotal: dec(total).Sub(dec(igst)), IGST: dec(igst), TotalTax: dec(igst), GrandTotal: dec(total),
	}
}

func TestReportService_Summary(t *testing.T) {
	f := setupReportFixture()
	now := time.Now()
	lastMonth := now.AddDate(0, 0, -now.Day())

	f.invoiceRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.AnythingOfType("domain.ListFilter")).
		Return([]domain.Invoice{
			f.invoice(now, "1200", "180"),
			f.invoice(lastMonth, "1000", "150"),
		}, 2, nil)
	f.purchaseRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.AnythingOfType("domain.ListFilter")).
		Return([]domain.Purchase{{IGST: dec("100"), TotalAmount: dec("650")}}, 1, nil)

	got, err := f.service(false).Summary(context.Background(), f.business.ID, service.ReportFilter{})

	require.NoError(t, err)
	assert.Equal(t, 2, got.InvoiceCount)
	assert.True(t, dec("2200").Equal(got.TotalSales))
	assert.True(t, dec("330").Equal(got.OutputTax.IGST))
	assert.True(t, dec("230").Equal(got.NetPayable.Total))
	assert.Len(t, got.Monthly, 2)
	assert.Equal(t, "Better", got.Performance.Label)
	assert.True(t, dec("20").Equal(got.Performance.Growth))
}

func TestReportService_Summary_PagesThroughRepository(t *testing.T) {
	f := setupReportFixture()
	day := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	first := make([]domain.Invoice, 500)
	for i := range first {
		first[i] = f.invoice(day, "10", "0")
	}
	f.invoiceRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.MatchedBy(func(lf domain.ListFilter) bool {
		return lf.Offset == 0 && lf.Limit == 500
	})).Return(first, 501, nil).Once()
	f.invoiceRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.MatchedBy(func(lf domain.ListFilter) bool {
		return lf.Offset == 500
	})).Return([]domain.Invoice{f.invoice(day, "10", "0")}, 501, nil).Once()
	f.purchaseRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.Anything).Return([]domain.Purchase{}, 0, nil)

	got, err := f.service(false).Summary(context.Background(), f.business.ID, service.ReportFilter{})

	require.NoError(t, err)
	assert.Equal(t, 501, got.InvoiceCount)
	assert.True(t, dec("5010").Equal(got.TotalSales))
	f.invoiceRepo.AssertExpectations(t)
}

func TestReportService_Summary_UnknownBusiness(t *testing.T) {
	f := setupReportFixture()
	id := uuid.New()
	f.businessRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := f.service(false).Summary(context.Background(), id, service.ReportFilter{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_ExportCSV(t *testing.T) {
	f := setupReportFixture()
	day := time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC)

	f.invoiceRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.Anything).
		Return([]domain.Invoice{f.invoice(day, "1180", "180"), f.invoice(day, "590", "90")}, 2, nil)
	f.purchaseRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.Anything).Return([]domain.Purchase{}, 0, nil)

	export, err := f.service(false).ExportCSV(context.Background(), f.business.ID, service.ReportFilter{})

	require.NoError(t, err)
	assert.Equal(t, service.ContentTypeCSV, export.ContentType)
	assert.Regexp(t, `^Acme_Studio_sales_\d{4}-\d{2}-\d{2}\.csv$`, export.Filename)
	assert.True(t, bytes.HasPrefix(export.Data, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, 2, bytes.Count(export.Data, []byte("Kaveri Stores")))
	assert.Empty(t, export.URL)
	f.clientRepo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestReportService_ExportXLSX(t *testing.T) {
	f := setupReportFixture()
	day := time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC)
	from := day.AddDate(0, 0, -8)

	f.invoiceRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.Anything).
		Return([]domain.Invoice{f.invoice(day, "1180", "180")}, 1, nil)
	f.purchaseRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.Anything).Return([]domain.Purchase{}, 0, nil)

	export, err := f.service(false).ExportXLSX(context.Background(), f.business.ID, service.ReportFilter{From: &from})

	require.NoError(t, err)
	assert.Equal(t, service.ContentTypeXLSX, export.ContentType)

	wb, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()
	assert.Contains(t, wb.GetSheetList(), "Sales")
}

func TestReportService_Export_UploadsAndPresigns(t *testing.T) {
	f := setupReportFixture()

	f.invoiceRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.Anything).Return([]domain.Invoice{}, 0, nil)
	f.purchaseRepo.On("ListByBusiness", mock.Anything, f.business.ID, mock.Anything).Return([]domain.Purchase{}, 0, nil)
	prefix := "businesses/" + f.business.ID.String() + "/exports/"
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "onebill-files" && bytes.HasPrefix([]byte(in.Key), []byte(prefix)) && in.ContentType == service.ContentTypeCSV
	})).Return(&port.UploadOutput{}, nil)
	f.storage.On("PresignGet", mock.Anything, "onebill-files", mock.AnythingOfType("string"), time.Hour).
		Return("https://s3.example/export.csv?sig=1", nil)

	export, err := f.service(true).ExportCSV(context.Background(), f.business.ID, service.ReportFilter{})

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/export.csv?sig=1", export.URL)
	assert.Nil(t, export.Data)
	f.storage.AssertExpectations(t)
}
