package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"onebill/internal/domain"
	"onebill/internal/port"
)

// CreateClientInput is the DTO for adding a client to a business.
type CreateClientInput struct {
	Name    string `json:"name" binding:"required"`
	GSTIN   string `json:"gstin"`
	State   string `json:"state"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateClientInput is the DTO for updating a client. Nil fields are left unchanged.
type UpdateClientInput struct {
	Name    *string `json:"name"`
	GSTIN   *string `json:"gstin"`
	State   *string `json:"state"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ClientService defines the client management contract. Every call is scoped to a business.
type ClientService interface {
	Create(ctx context.Context, businessID uuid.UUID, input CreateClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, businessID, clientID uuid.UUID, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, businessID, clientID uuid.UUID) error
}

type clientService struct {
	businessRepo port.BusinessRepository
	clientRepo   port.ClientRepository
}

// NewClientService creates a new ClientService implementation.
func NewClientService(businessRepo port.BusinessRepository, clientRepo port.ClientRepository) ClientService {
	return &clientService{businessRepo: businessRepo, clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, businessID uuid.UUID, input CreateClientInput) (*domain.Client, error) {
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		return nil, err
	}

	loc, err := resolveParty(ctx, input.GSTIN, input.State)
	if err != nil {
		return nil, err
	}

	c := &domain.Client{
		BusinessID: businessID,
		Name:       strings.TrimSpace(input.Name),
		GSTIN:      loc.GSTIN,
		State:      loc.State,
		StateCode:  loc.StateCode,
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Address:    input.Address,
	}
	if err := s.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) GetByID(ctx context.Context, businessID, clientID uuid.UUID) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, businessID, clientID)
}

func (s *clientService) List(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Client, int, error) {
	offset, limit = clampPage(offset, limit)
	return s.clientRepo.ListByBusiness(ctx, businessID, offset, limit)
}

func (s *clientService) Update(ctx context.Context, businessID, clientID uuid.UUID, input UpdateClientInput) (*domain.Client, error) {
	c, err := s.clientRepo.GetByID(ctx, businessID, clientID)
	if err != nil {
		return nil, err
	}

	if input.GSTIN != nil || input.State != nil {
		gstin, state := c.GSTIN, c.State
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
		c.GSTIN, c.State, c.StateCode = loc.GSTIN, loc.State, loc.StateCode
	}
	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		c.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		c.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		c.Address = *input.Address
	}

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, businessID, clientID uuid.UUID) error {
	return s.clientRepo.Delete(ctx, businessID, clientID)
}
