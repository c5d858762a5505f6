package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"onebill/internal/domain"
	"onebill/internal/gst"
	"onebill/internal/logger"
	"onebill/internal/port"
)

// CreatePurchaseInput is the DTO for recording a purchase bill. When no tax heads
// are given but a GST rate is, the split is derived from the vendor's and the
// business's states.
type CreatePurchaseInput struct {
	VendorName    string `json:"vendor_name" binding:"required"`
	VendorGSTIN   string `json:"vendor_gstin"`
	VendorState   string `json:"vendor_state"`
	BillNumber    string `json:"bill_number"`
	BillDate      string `json:"bill_date"`
	TaxableAmount any    `json:"taxable_amount"`
	GSTRate       any    `json:"gst_rate"`
	CGST          any    `json:"cgst"`
	SGST          any    `json:"sgst"`
	IGST          any    `json:"igst"`
}

// PurchaseService defines the purchase register contract.
type PurchaseService interface {
	Create(ctx context.Context, businessID uuid.UUID, input CreatePurchaseInput) (*domain.Purchase, error)
	List(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Purchase, int, error)
	Delete(ctx context.Context, businessID, purchaseID uuid.UUID) error
}

type purchaseService struct {
	businessRepo port.BusinessRepository
	purchaseRepo port.PurchaseRepository
	now          func() time.Time
}

// NewPurchaseService creates a new PurchaseService implementation.
func NewPurchaseService(businessRepo port.BusinessRepository, purchaseRepo port.PurchaseRepository) PurchaseService {
	return &purchaseService{businessRepo: businessRepo, purchaseRepo: purchaseRepo, now: time.Now}
}

func (s *purchaseService) Create(ctx context.Context, businessID uuid.UUID, input CreatePurchaseInput) (*domain.Purchase, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	vendor, err := resolveParty(ctx, input.VendorGSTIN, input.VendorState)
	if err != nil {
		return nil, err
	}

	billDate, err := parseDate(input.BillDate, s.now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, 5)
	for i, f := range []struct {
		name string
		raw  any
	}{
		{"taxable_amount", input.TaxableAmount},
		{"gst_rate", input.GSTRate},
		{"cgst", input.CGST},
		{"sgst", input.SGST},
		{"igst", input.IGST},
	} {
		if amounts[i], err = number(f.raw, true, f.name); err != nil {
			return nil, err
		}
		if amounts[i].IsNegative() {
			return nil, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, f.name)
		}
	}
	taxable, rate, cgst, sgst, igst := amounts[0], amounts[1], amounts[2], amounts[3], amounts[4]

	if cgst.IsZero() && sgst.IsZero() && igst.IsZero() && rate.IsPositive() {
		place := gst.ResolvePlaceOfSupply(gst.SupplyParties{
			BusinessGSTIN: vendor.GSTIN,
			ClientGSTIN:   business.GSTIN,
			BusinessState: vendor.State,
			ClientState:   business.State,
		})
		tax := gst.CalculateLineItemGST(gst.LineTaxInput{
			IsIntraState:  place.IsIntraState,
			TaxableAmount: taxable,
			GSTRate:       rate,
		})
		cgst, sgst, igst = tax.CGST, tax.SGST, tax.IGST
	}

	totalTax := gst.Round2(cgst.Add(sgst).Add(igst))
	p := &domain.Purchase{
		BusinessID:    businessID,
		VendorName:    strings.TrimSpace(input.VendorName),
		VendorGSTIN:   vendor.GSTIN,
		BillNumber:    strings.TrimSpace(input.BillNumber),
		BillDate:      billDate,
		TaxableAmount: gst.Round2(taxable),
		CGST:          gst.Round2(cgst),
		SGST:          gst.Round2(sgst),
		IGST:          gst.Round2(igst),
		TotalTax:      totalTax,
		TotalAmount:   gst.Round2(taxable.Add(totalTax)),
	}
	if err := s.purchaseRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("purchase recorded",
		zap.String("purchase_id", p.ID.String()),
		zap.String("business_id", businessID.String()),
		zap.String("total_tax", p.TotalTax.StringFixed(2)),
	)
	return p, nil
}

func (s *purchaseService) List(ctx context.Context, businessID uuid.UUID, filter domain.ListFilter) ([]domain.Purchase, int, error) {
	filter.Offset, filter.Limit = clampPage(filter.Offset, filter.Limit)
	return s.purchaseRepo.ListByBusiness(ctx, businessID, filter)
}

func (s *purchaseService) Delete(ctx context.Context, businessID, purchaseID uuid.UUID) error {
	return s.purchaseRepo.Delete(ctx, businessID, purchaseID)
}
