package usecase

import (
	"context"
	"time"

	"github.com/iho/backoffice/internal/domain"
)

// FirmUseCase handles firm business logic.
type FirmUseCase struct {
	firmRepo FirmRepository
	idGen    IDGenerator
}

// NewFirmUseCase creates a new FirmUseCase.
func NewFirmUseCase(firmRepo FirmRepository, idGen IDGenerator) *FirmUseCase {
	return &FirmUseCase{
		firmRepo: firmRepo,
		idGen:    idGen,
	}
}

// CreateFirmInput represents input for creating a firm.
type CreateFirmInput struct {
	Name      string
	TaxNumber string
	Address   string
	Phone     string
}

// CreateFirm creates a new firm.
func (uc *FirmUseCase) CreateFirm(ctx context.Context, input CreateFirmInput) (*domain.Firm, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	firm := &domain.Firm{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		TaxNumber: input.TaxNumber,
		Address:   input.Address,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.firmRepo.Create(ctx, firm); err != nil {
		return nil, err
	}

	return firm, nil
}

// GetFirm retrieves a firm by ID.
func (uc *FirmUseCase) GetFirm(ctx context.Context, id string) (*domain.Firm, error) {
	return uc.firmRepo.GetByID(ctx, id)
}

// UpdateFirmInput represents input for updating a firm.
type UpdateFirmInput struct {
	ID        string
	Name      string
	TaxNumber string
	Address   string
	Phone     string
}

// UpdateFirm updates firm attributes.
func (uc *FirmUseCase) UpdateFirm(ctx context.Context, input UpdateFirmInput) (*domain.Firm, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	firm, err := uc.firmRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	firm.Name = input.Name
	firm.TaxNumber = input.TaxNumber
	firm.Address = input.Address
	firm.Phone = input.Phone
	firm.UpdatedAt = time.Now().UTC()

	if err := uc.firmRepo.Update(ctx, firm); err != nil {
		return nil, err
	}

	return firm, nil
}

// ListFirms lists firms with pagination.
func (uc *FirmUseCase) ListFirms(ctx context.Context, limit, offset int) ([]*domain.Firm, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.firmRepo.List(ctx, limit, offset)
}
