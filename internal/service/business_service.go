package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"onebill/internal/config"
	"onebill/internal/domain"
	"onebill/internal/format"
	"onebill/internal/logger"
	"onebill/internal/port"
)

// CreateBusinessInput is the DTO for registering a business.
type CreateBusinessInput struct {
	Name            string `json:"name" binding:"required"`
	GSTIN           string `json:"gstin"`
	State           string `json:"state"`
	Address         string `json:"address"`
	Email           string `json:"email"`
	InvoiceTemplate string `json:"invoice_template"`
	IsGST           *bool  `json:"is_gst"`
	RoundOff        *bool  `json:"round_off"`
	Currency        string `json:"currency"`
	BankName        string `json:"bank_name"`
	AccountNumber   string `json:"account_number"`
	IFSCCode        string `json:"ifsc_code"`
	UPIID           string `json:"upi_id"`
}

// UpdateBusinessInput is the DTO for updating a business. Nil fields are left unchanged.
type UpdateBusinessInput struct {
	Name            *string `json:"name"`
	GSTIN           *string `json:"gstin"`
	State           *string `json:"state"`
	Address         *string `json:"address"`
	Email           *string `json:"email"`
	InvoiceTemplate *string `json:"invoice_template"`
	IsGST           *bool   `json:"is_gst"`
	RoundOff        *bool   `json:"round_off"`
	Currency        *string `json:"currency"`
	BankName        *string `json:"bank_name"`
	AccountNumber   *string `json:"account_number"`
	IFSCCode        *string `json:"ifsc_code"`
	UPIID           *string `json:"upi_id"`
}

// BusinessService defines the business management contract.
type BusinessService interface {
	Create(ctx context.Context, input CreateBusinessInput) (*domain.Business, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	List(ctx context.Context, offset, limit int) ([]domain.Business, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBusinessInput) (*domain.Business, error)
}

type businessService struct {
	repo port.BusinessRepository
	cfg  *config.EngineConfig
}

// NewBusinessService creates a new BusinessService implementation.
func NewBusinessService(repo port.BusinessRepository, cfg *config.EngineConfig) BusinessService {
	return &businessService{repo: repo, cfg: cfg}
}

func (s *businessService) Create(ctx context.Context, input CreateBusinessInput) (*domain.Business, error) {
	loc, err := resolveParty(ctx, input.GSTIN, input.State)
	if err != nil {
		return nil, err
	}

	b := &domain.Business{
		Name:            strings.TrimSpace(input.Name),
		GSTIN:           loc.GSTIN,
		State:           loc.State,
		StateCode:       loc.StateCode,
		Address:         input.Address,
		Email:           strings.TrimSpace(input.Email),
		InvoiceTemplate: strings.TrimSpace(input.InvoiceTemplate),
		IsGST:           boolOr(input.IsGST, true),
		RoundOff:        boolOr(input.RoundOff, true),
		Currency:        strings.ToUpper(strings.TrimSpace(input.Currency)),
		BankName:        input.BankName,
		AccountNumber:   input.AccountNumber,
		IFSCCode:        strings.ToUpper(strings.TrimSpace(input.IFSCCode)),
		UPIID:           strings.TrimSpace(input.UPIID),
	}
	if b.InvoiceTemplate == "" {
		b.InvoiceTemplate = s.cfg.NumberTemplate
	}
	if b.Currency == "" {
		b.Currency = s.cfg.DefaultCurrency
	}
	if err := validateTemplate(b.InvoiceTemplate); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("business created",
		zap.String("business_id", b.ID.String()),
		zap.String("state_code", b.StateCode),
		zap.Bool("is_gst", b.IsGST),
	)
	return b, nil
}

func (s *businessService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *businessService) List(ctx context.Context, offset, limit int) ([]domain.Business, int, error) {
	offset, limit = clampPage(offset, limit)
	return s.repo.List(ctx, offset, limit)
}

func (s *businessService) Update(ctx context.Context, id uuid.UUID, input UpdateBusinessInput) (*domain.Business, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.GSTIN != nil || input.State != nil {
		gstin, state := b.GSTIN, b.State
		if input.GSTIN != nil {
			gstin = *input.GSTIN
		}
		if input.State != nil {
			state = *input.State
		}
		loc, err := resolveParty(ctx, gstin, state)
		if err != nil {
			return nil, err
		}
		b.GSTIN, b.State, b.StateCode = loc.GSTIN, loc.State, loc.StateCode
	}

	if input.Name != nil {
		b.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		b.Address = *input.Address
	}
	if input.Email != nil {
		b.Email = strings.TrimSpace(*input.Email)
	}
	if input.InvoiceTemplate != nil {
		if err := validateTemplate(*input.InvoiceTemplate); err != nil {
			return nil, err
		}
		b.InvoiceTemplate = strings.TrimSpace(*input.InvoiceTemplate)
	}
	if input.IsGST != nil {
		b.IsGST = *input.IsGST
	}
	if input.RoundOff != nil {
		b.RoundOff = *input.RoundOff
	}
	if input.Currency != nil {
		b.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.BankName != nil {
		b.BankName = *input.BankName
	}
	if input.AccountNumber != nil {
		b.AccountNumber = *input.AccountNumber
	}
	if input.IFSCCode != nil {
		b.IFSCCode = strings.ToUpper(strings.TrimSpace(*input.IFSCCode))
	}
	if input.UPIID != nil {
		b.UPIID = strings.TrimSpace(*input.UPIID)
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// validateTemplate renders template once so bad tokens surface at save time rather than on
// the first invoice.
func validateTemplate(template string) error {
	if _, err := format.FormatInvoiceNumber(template, time.Now(), 1); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidTemplate, err)
	}
	return nil
}
