package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/infrastructure/metrics"
)

// approvalLockTTL bounds how long a movement approval may hold its lock.
const approvalLockTTL = 10 * time.Second

// MovementUseCase handles movement business logic: creation into pending,
// reference edits while pending, and approve/reject transitions.
type MovementUseCase struct {
	movementRepo MovementRepository
	partyRepo    PartyRepository
	locks        LockManager
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewMovementUseCase creates a new MovementUseCase. Metrics may be nil.
func NewMovementUseCase(
	movementRepo MovementRepository,
	partyRepo PartyRepository,
	locks LockManager,
	idGen IDGenerator,
	m *metrics.Metrics,
) *MovementUseCase {
	return &MovementUseCase{
		movementRepo: movementRepo,
		partyRepo:    partyRepo,
		locks:        locks,
		idGen:        idGen,
		metrics:      m,
	}
}

// CreateMovementInput represents input for creating a movement.
type CreateMovementInput struct {
	FirmID        string
	PartyID       string
	Kind          domain.MovementKind
	Amount        decimal.Decimal
	Date          time.Time
	BillNumber    string
	PaymentMethod string
	Note          string
}

// CreateMovement records a new movement in pending status.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, input CreateMovementInput) (*domain.Movement, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateNote(input.Note); err != nil {
		return nil, err
	}

	party, err := uc.partyRepo.GetByID(ctx, input.PartyID)
	if err != nil {
		return nil, err
	}
	if party.FirmID != input.FirmID {
		return nil, domain.ErrPartyNotFound
	}

	now := time.Now().UTC()
	movement := &domain.Movement{
		ID:            uc.idGen.Generate(),
		FirmID:        input.FirmID,
		PartyID:       input.PartyID,
		Kind:          input.Kind,
		Status:        domain.StatusPending,
		Amount:        input.Amount,
		Date:          domain.DateOnly(input.Date),
		BillNumber:    input.BillNumber,
		PaymentMethod: input.PaymentMethod,
		Note:          input.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MovementsCreated.WithLabelValues(string(movement.Kind)).Inc()
	}

	return movement, nil
}

// GetMovement retrieves a movement by ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return uc.movementRepo.GetByID(ctx, id)
}

// UpdateMovementInput represents input for editing a pending movement's
// reference fields.
type UpdateMovementInput struct {
	ID            string
	Amount        decimal.Decimal
	Date          time.Time
	BillNumber    string
	PaymentMethod string
	Note          string
}

// UpdateMovement edits a movement. Only pending movements may change;
// approved and rejected records are immutable.
func (uc *MovementUseCase) UpdateMovement(ctx context.Context, input UpdateMovementInput) (*domain.Movement, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	movement, err := uc.movementRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if movement.Status != domain.StatusPending {
		return nil, domain.ErrMovementNotPending
	}

	movement.Amount = input.Amount
	movement.Date = domain.DateOnly(input.Date)
	movement.BillNumber = input.BillNumber
	movement.PaymentMethod = input.PaymentMethod
	movement.Note = input.Note
	movement.UpdatedAt = time.Now().UTC()

	if err := movement.Validate(); err != nil {
		return nil, err
	}

	if err := uc.movementRepo.Update(ctx, movement); err != nil {
		return nil, err
	}

	return movement, nil
}

// ApproveMovement transitions a pending movement to approved. A per-movement
// distributed lock serializes concurrent approvals across instances.
func (uc *MovementUseCase) ApproveMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return uc.transition(ctx, id, domain.StatusApproved)
}

// RejectMovement transitions a pending movement to rejected.
func (uc *MovementUseCase) RejectMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return uc.transition(ctx, id, domain.StatusRejected)
}

func (uc *MovementUseCase) transition(ctx context.Context, id string, status domain.MovementStatus) (*domain.Movement, error) {
	lock, err := uc.locks.Obtain(ctx, "movement:"+id, approvalLockTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: obtaining approval lock: %v", domain.ErrDataAccess, err)
	}
	defer lock.Release(ctx)

	movement, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement.Status != domain.StatusPending {
		return nil, domain.ErrMovementNotPending
	}

	now := time.Now().UTC()
	if err := uc.movementRepo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}

	movement.Status = status
	movement.UpdatedAt = now

	if uc.metrics != nil {
		switch status {
		case domain.StatusApproved:
			uc.metrics.MovementsApproved.Inc()
		case domain.StatusRejected:
			uc.metrics.MovementsRejected.Inc()
		}
	}

	return movement, nil
}

// ListMovements lists movements matching the filter.
func (uc *MovementUseCase) ListMovements(ctx context.Context, filter MovementFilter) ([]*domain.Movement, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.movementRepo.List(ctx, filter)
}
