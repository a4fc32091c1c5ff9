package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
)

// PartyUseCase handles trading-party business logic.
type PartyUseCase struct {
	partyRepo PartyRepository
	firmRepo  FirmRepository
	idGen     IDGenerator
}

// NewPartyUseCase creates a new PartyUseCase.
func NewPartyUseCase(partyRepo PartyRepository, firmRepo FirmRepository, idGen IDGenerator) *PartyUseCase {
	return &PartyUseCase{
		partyRepo: partyRepo,
		firmRepo:  firmRepo,
		idGen:     idGen,
	}
}

// CreatePartyInput represents input for creating a party.
type CreatePartyInput struct {
	FirmID         string
	Name           string
	Type           domain.PartyType
	Phone          string
	Email          string
	Notes          string
	OpeningBalance decimal.Decimal
}

// CreateParty creates a new party scoped to a firm.
func (uc *PartyUseCase) CreateParty(ctx context.Context, input CreatePartyInput) (*domain.Party, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown party type %q", domain.ErrValidation, input.Type)
	}

	// The firm must exist; parties are always owned.
	if _, err := uc.firmRepo.GetByID(ctx, input.FirmID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	party := &domain.Party{
		ID:             uc.idGen.Generate(),
		FirmID:         input.FirmID,
		Name:           input.Name,
		Type:           input.Type,
		Phone:          input.Phone,
		Email:          input.Email,
		Notes:          input.Notes,
		OpeningBalance: input.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}

	return party, nil
}

// GetParty retrieves a party by ID.
func (uc *PartyUseCase) GetParty(ctx context.Context, id string) (*domain.Party, error) {
	return uc.partyRepo.GetByID(ctx, id)
}

// UpdatePartyInput represents input for updating a party.
type UpdatePartyInput struct {
	ID             string
	Name           string
	Phone          string
	Email          string
	Notes          string
	OpeningBalance decimal.Decimal
}

// UpdateParty updates party attributes. The firm and type are immutable.
func (uc *PartyUseCase) UpdateParty(ctx context.Context, input UpdatePartyInput) (*domain.Party, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	party, err := uc.partyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	party.Name = input.Name
	party.Phone = input.Phone
	party.Email = input.Email
	party.Notes = input.Notes
	party.OpeningBalance = input.OpeningBalance
	party.UpdatedAt = time.Now().UTC()

	if err := uc.partyRepo.Update(ctx, party); err != nil {
		return nil, err
	}

	return party, nil
}

// DeleteParty removes a party.
func (uc *PartyUseCase) DeleteParty(ctx context.Context, id string) error {
	if _, err := uc.partyRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.partyRepo.Delete(ctx, id)
}

// ListPartiesInput represents input for listing parties.
type ListPartiesInput struct {
	FirmID string
	Type   domain.PartyType // empty for all
	Limit  int
	Offset int
}

// ListParties lists parties of a firm with pagination.
func (uc *PartyUseCase) ListParties(ctx context.Context, input ListPartiesInput) ([]*domain.Party, error) {
	if input.Type != "" && !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown party type %q", domain.ErrValidation, input.Type)
	}
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.partyRepo.ListByFirm(ctx, input.FirmID, input.Type, limit, offset)
}
