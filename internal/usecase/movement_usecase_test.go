package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
	"github.com/iho/backoffice/internal/usecase/mocks"
)

func newMovementUseCase() (*usecase.MovementUseCase, *mocks.MockMovementRepository, *mocks.MockPartyRepository, *mocks.MockLockManager) {
	movementRepo := mocks.NewMockMovementRepository()
	partyRepo := mocks.NewMockPartyRepository()
	locks := mocks.NewMockLockManager()
	idGen := mocks.NewMockIDGenerator()
	uc := usecase.NewMovementUseCase(movementRepo, partyRepo, locks, idGen, nil)
	return uc, movementRepo, partyRepo, locks
}

func TestCreateMovement(t *testing.T) {
	uc, _, partyRepo, _ := newMovementUseCase()
	partyRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Party, error) {
		return testParty(0), nil
	}

	movement, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
		FirmID:     "firm-1",
		PartyID:    "party-1",
		Kind:       domain.KindSale,
		Amount:     decimal.NewFromInt(150),
		Date:       date("2026-01-10"),
		BillNumber: "B-77",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if movement.Status != domain.StatusPending {
		t.Errorf("new movements must be pending, got %s", movement.Status)
	}
	if !movement.Date.Equal(date("2026-01-10")) {
		t.Errorf("expected date-only value, got %s", movement.Date)
	}
}

func TestCreateMovement_UnknownKind(t *testing.T) {
	uc, _, partyRepo, _ := newMovementUseCase()
	partyRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Party, error) {
		return testParty(0), nil
	}

	_, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
		FirmID:  "firm-1",
		PartyID: "party-1",
		Kind:    domain.MovementKind("mystery"),
		Amount:  decimal.NewFromInt(10),
		Date:    date("2026-01-10"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateMovement_CrossFirmParty(t *testing.T) {
	uc, _, partyRepo, _ := newMovementUseCase()
	partyRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Party, error) {
		return testParty(0), nil // party belongs to firm-1
	}

	_, err := uc.CreateMovement(context.Background(), usecase.CreateMovementInput{
		FirmID:  "firm-2",
		PartyID: "party-1",
		Kind:    domain.KindSale,
		Amount:  decimal.NewFromInt(10),
		Date:    date("2026-01-10"),
	})
	if !errors.Is(err, domain.ErrPartyNotFound) {
		t.Fatalf("expected ErrPartyNotFound, got %v", err)
	}
}

func TestApproveMovement(t *testing.T) {
	uc, movementRepo, _, locks := newMovementUseCase()

	pending := approvedMovement("m1", domain.KindSale, 100, "2026-01-05")
	pending.Status = domain.StatusPending
	movementRepo.Create(context.Background(), pending)
	movementRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Movement, error) {
		return pending, nil
	}

	movement, err := uc.ApproveMovement(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if movement.Status != domain.StatusApproved {
		t.Errorf("expected approved, got %s", movement.Status)
	}
	if locks.LastKey != "movement:m1" {
		t.Errorf("expected a per-movement lock, got %q", locks.LastKey)
	}
}

func TestApproveMovement_AlreadyApproved(t *testing.T) {
	uc, movementRepo, _, _ := newMovementUseCase()

	movementRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Movement, error) {
		return approvedMovement("m1", domain.KindSale, 100, "2026-01-05"), nil
	}

	_, err := uc.ApproveMovement(context.Background(), "m1")
	if !errors.Is(err, domain.ErrMovementNotPending) {
		t.Fatalf("expected ErrMovementNotPending, got %v", err)
	}
}

func TestApproveMovement_LockFailure(t *testing.T) {
	uc, _, _, locks := newMovementUseCase()
	locks.ObtainFunc = func(ctx context.Context, key string, ttl time.Duration) (usecase.Lock, error) {
		return nil, errors.New("lock held elsewhere")
	}

	_, err := uc.ApproveMovement(context.Background(), "m1")
	if !errors.Is(err, domain.ErrDataAccess) {
		t.Fatalf("expected ErrDataAccess, got %v", err)
	}
}

func TestUpdateMovement_OnlyPending(t *testing.T) {
	uc, movementRepo, _, _ := newMovementUseCase()

	movementRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Movement, error) {
		return approvedMovement("m1", domain.KindSale, 100, "2026-01-05"), nil
	}

	_, err := uc.UpdateMovement(context.Background(), usecase.UpdateMovementInput{
		ID:     "m1",
		Amount: decimal.NewFromInt(120),
		Date:   date("2026-01-06"),
	})
	if !errors.Is(err, domain.ErrMovementNotPending) {
		t.Fatalf("expected ErrMovementNotPending, got %v", err)
	}
}

func TestRejectMovement(t *testing.T) {
	uc, movementRepo, _, _ := newMovementUseCase()

	pending := approvedMovement("m1", domain.KindCollection, 40, "2026-01-05")
	pending.Status = domain.StatusPending
	movementRepo.Create(context.Background(), pending)
	movementRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Movement, error) {
		return pending, nil
	}

	movement, err := uc.RejectMovement(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movement.Status != domain.StatusRejected {
		t.Errorf("expected rejected, got %s", movement.Status)
	}
}
