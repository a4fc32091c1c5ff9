package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
)

// BillUseCase handles bill business logic.
type BillUseCase struct {
	billRepo  BillRepository
	partyRepo PartyRepository
	idGen     IDGenerator
}

// NewBillUseCase creates a new BillUseCase.
func NewBillUseCase(billRepo BillRepository, partyRepo PartyRepository, idGen IDGenerator) *BillUseCase {
	return &BillUseCase{
		billRepo:  billRepo,
		partyRepo: partyRepo,
		idGen:     idGen,
	}
}

// CreateBillInput represents input for creating a bill.
type CreateBillInput struct {
	FirmID    string
	PartyID   string
	Number    string
	Amount    decimal.Decimal
	IssueDate time.Time
	Note      string
}

// CreateBill creates a new bill.
func (uc *BillUseCase) CreateBill(ctx context.Context, input CreateBillInput) (*domain.Bill, error) {
	party, err := uc.partyRepo.GetByID(ctx, input.PartyID)
	if err != nil {
		return nil, err
	}
	if party.FirmID != input.FirmID {
		return nil, domain.ErrPartyNotFound
	}

	now := time.Now().UTC()
	bill := &domain.Bill{
		ID:        uc.idGen.Generate(),
		FirmID:    input.FirmID,
		PartyID:   input.PartyID,
		Number:    input.Number,
		Amount:    input.Amount,
		IssueDate: domain.DateOnly(input.IssueDate),
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := bill.Validate(); err != nil {
		return nil, err
	}

	if err := uc.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	return bill, nil
}

// GetBill retrieves a bill by ID.
func (uc *BillUseCase) GetBill(ctx context.Context, id string) (*domain.Bill, error) {
	return uc.billRepo.GetByID(ctx, id)
}

// DeleteBill removes a bill.
func (uc *BillUseCase) DeleteBill(ctx context.Context, id string) error {
	if _, err := uc.billRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.billRepo.Delete(ctx, id)
}

// ListBills lists a party's bills with pagination.
func (uc *BillUseCase) ListBills(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Bill, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.billRepo.ListByParty(ctx, firmID, partyID, limit, offset)
}
