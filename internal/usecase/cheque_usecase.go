package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/infrastructure/metrics"
)

// ChequeUseCase handles cheque lifecycle: receipt, deposit, clearing and
// bouncing. Clearing a cheque atomically records the collection movement it
// produces.
type ChequeUseCase struct {
	txManager    TransactionManager
	chequeRepo   ChequeRepository
	movementRepo MovementRepository
	partyRepo    PartyRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewChequeUseCase creates a new ChequeUseCase. Metrics may be nil.
func NewChequeUseCase(
	txManager TransactionManager,
	chequeRepo ChequeRepository,
	movementRepo MovementRepository,
	partyRepo PartyRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *ChequeUseCase {
	return &ChequeUseCase{
		txManager:    txManager,
		chequeRepo:   chequeRepo,
		movementRepo: movementRepo,
		partyRepo:    partyRepo,
		idGen:        idGen,
		metrics:      m,
	}
}

// CreateChequeInput represents input for recording a received cheque.
type CreateChequeInput struct {
	FirmID  string
	PartyID string
	Number  string
	Bank    string
	Amount  decimal.Decimal
	DueDate time.Time
}

// CreateCheque records a cheque in hand.
func (uc *ChequeUseCase) CreateCheque(ctx context.Context, input CreateChequeInput) (*domain.Cheque, error) {
	party, err := uc.partyRepo.GetByID(ctx, input.PartyID)
	if err != nil {
		return nil, err
	}
	if party.FirmID != input.FirmID {
		return nil, domain.ErrPartyNotFound
	}

	now := time.Now().UTC()
	cheque := &domain.Cheque{
		ID:        uc.idGen.Generate(),
		FirmID:    input.FirmID,
		PartyID:   input.PartyID,
		Number:    input.Number,
		Bank:      input.Bank,
		Amount:    input.Amount,
		DueDate:   domain.DateOnly(input.DueDate),
		Status:    domain.ChequeStatusInHand,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := cheque.Validate(); err != nil {
		return nil, err
	}

	if err := uc.chequeRepo.Create(ctx, cheque); err != nil {
		return nil, err
	}

	return cheque, nil
}

// GetCheque retrieves a cheque by ID.
func (uc *ChequeUseCase) GetCheque(ctx context.Context, id string) (*domain.Cheque, error) {
	return uc.chequeRepo.GetByID(ctx, id)
}

// DepositCheque marks an in-hand cheque as deposited.
func (uc *ChequeUseCase) DepositCheque(ctx context.Context, id string) (*domain.Cheque, error) {
	cheque, err := uc.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cheque.Transition(domain.ChequeStatusDeposited); err != nil {
		return nil, err
	}
	cheque.UpdatedAt = time.Now().UTC()

	if err := uc.chequeRepo.Update(ctx, cheque); err != nil {
		return nil, err
	}

	return cheque, nil
}

// ClearCheque marks a deposited cheque as cleared and records the pending
// collection movement it produces. Both writes happen in one transaction.
func (uc *ChequeUseCase) ClearCheque(ctx context.Context, id string) (*domain.Cheque, error) {
	cheque, err := uc.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cheque.Transition(domain.ChequeStatusCleared); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movement := &domain.Movement{
		ID:            uc.idGen.Generate(),
		FirmID:        cheque.FirmID,
		PartyID:       cheque.PartyID,
		Kind:          domain.KindCollection,
		Status:        domain.StatusPending,
		Amount:        cheque.Amount,
		Date:          domain.Today(),
		PaymentMethod: "cheque",
		Note:          "Cheque #" + cheque.Number,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	cheque.MovementID = movement.ID
	cheque.UpdatedAt = now

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.movementRepo.CreateTx(ctx, tx, movement); err != nil {
		return nil, err
	}
	if err := uc.chequeRepo.UpdateTx(ctx, tx, cheque); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ChequesCleared.Inc()
	}

	return cheque, nil
}

// BounceCheque marks a deposited cheque as bounced.
func (uc *ChequeUseCase) BounceCheque(ctx context.Context, id string) (*domain.Cheque, error) {
	cheque, err := uc.chequeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cheque.Transition(domain.ChequeStatusBounced); err != nil {
		return nil, err
	}
	cheque.UpdatedAt = time.Now().UTC()

	if err := uc.chequeRepo.Update(ctx, cheque); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ChequesBounced.Inc()
	}

	return cheque, nil
}

// ListCheques lists a party's cheques with pagination.
func (uc *ChequeUseCase) ListCheques(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Cheque, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.chequeRepo.ListByParty(ctx, firmID, partyID, limit, offset)
}
