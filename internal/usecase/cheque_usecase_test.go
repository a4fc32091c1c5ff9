package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
	"github.com/iho/backoffice/internal/usecase/mocks"
)

func newChequeUseCase() (*usecase.ChequeUseCase, *mocks.MockChequeRepository, *mocks.MockMovementRepository, *mocks.MockTransactionManager) {
	txManager := mocks.NewMockTransactionManager()
	chequeRepo := mocks.NewMockChequeRepository()
	movementRepo := mocks.NewMockMovementRepository()
	partyRepo := mocks.NewMockPartyRepository()
	idGen := mocks.NewMockIDGenerator()

	partyRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Party, error) {
		return testParty(0), nil
	}

	uc := usecase.NewChequeUseCase(txManager, chequeRepo, movementRepo, partyRepo, idGen, nil)
	return uc, chequeRepo, movementRepo, txManager
}

func depositedCheque() *domain.Cheque {
	return &domain.Cheque{
		ID:      "chq-1",
		FirmID:  "firm-1",
		PartyID: "party-1",
		Number:  "000412",
		Bank:    "First National",
		Amount:  decimal.NewFromInt(500),
		DueDate: date("2026-06-01"),
		Status:  domain.ChequeStatusDeposited,
	}
}

func TestCreateCheque(t *testing.T) {
	uc, _, _, _ := newChequeUseCase()

	cheque, err := uc.CreateCheque(context.Background(), usecase.CreateChequeInput{
		FirmID:  "firm-1",
		PartyID: "party-1",
		Number:  "000412",
		Bank:    "First National",
		Amount:  decimal.NewFromInt(500),
		DueDate: date("2026-06-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cheque.Status != domain.ChequeStatusInHand {
		t.Errorf("new cheques must be in hand, got %s", cheque.Status)
	}
}

func TestClearCheque_RecordsCollectionMovement(t *testing.T) {
	uc, chequeRepo, movementRepo, txManager := newChequeUseCase()

	chequeRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Cheque, error) {
		return depositedCheque(), nil
	}

	var created *domain.Movement
	movementRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
		created = movement
		return nil
	}

	cheque, err := uc.ClearCheque(context.Background(), "chq-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cheque.Status != domain.ChequeStatusCleared {
		t.Errorf("expected cleared, got %s", cheque.Status)
	}
	if created == nil {
		t.Fatal("expected a collection movement to be recorded")
	}
	if created.Kind != domain.KindCollection || created.Status != domain.StatusPending {
		t.Errorf("expected a pending collection, got %s/%s", created.Kind, created.Status)
	}
	if !created.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected movement amount 500, got %s", created.Amount)
	}
	if cheque.MovementID != created.ID {
		t.Error("cheque must link to the movement it produced")
	}
	if txManager.LastTx == nil || !txManager.LastTx.Committed {
		t.Error("expected the transaction to be committed")
	}
}

func TestClearCheque_MovementFailureRollsBack(t *testing.T) {
	uc, chequeRepo, movementRepo, txManager := newChequeUseCase()

	chequeRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Cheque, error) {
		return depositedCheque(), nil
	}
	movementRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
		return errors.New("insert failed")
	}

	_, err := uc.ClearCheque(context.Background(), "chq-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if txManager.LastTx == nil || txManager.LastTx.Committed {
		t.Error("expected the transaction not to be committed")
	}
}

func TestClearCheque_RequiresDeposited(t *testing.T) {
	uc, chequeRepo, _, _ := newChequeUseCase()

	inHand := depositedCheque()
	inHand.Status = domain.ChequeStatusInHand
	chequeRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Cheque, error) {
		return inHand, nil
	}

	_, err := uc.ClearCheque(context.Background(), "chq-1")
	if !errors.Is(err, domain.ErrChequeTransition) {
		t.Fatalf("expected ErrChequeTransition, got %v", err)
	}
}

func TestBounceCheque(t *testing.T) {
	uc, chequeRepo, _, _ := newChequeUseCase()

	chequeRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Cheque, error) {
		return depositedCheque(), nil
	}

	cheque, err := uc.BounceCheque(context.Background(), "chq-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cheque.Status != domain.ChequeStatusBounced {
		t.Errorf("expected bounced, got %s", cheque.Status)
	}
}
