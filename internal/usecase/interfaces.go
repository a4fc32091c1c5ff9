package usecase

import (
	"context"
	"time"

	"github.com/iho/backoffice/internal/domain"
)

// FirmRepository defines data access for firms.
type FirmRepository interface {
	Create(ctx context.Context, firm *domain.Firm) error
	GetByID(ctx context.Context, id string) (*domain.Firm, error)
	Update(ctx context.Context, firm *domain.Firm) error
	List(ctx context.Context, limit, offset int) ([]*domain.Firm, error)
}

// PartyRepository defines data access for parties.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, id string) (*domain.Party, error)
	Update(ctx context.Context, party *domain.Party) error
	Delete(ctx context.Context, id string) error
	ListByFirm(ctx context.Context, firmID string, partyType domain.PartyType, limit, offset int) ([]*domain.Party, error)
}

// MovementFilter narrows movement listings.
type MovementFilter struct {
	FirmID   string
	PartyID  string
	Kind     domain.MovementKind
	Status   domain.MovementStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// MovementRepository defines data access for movements.
type MovementRepository interface {
	Create(ctx context.Context, movement *domain.Movement) error
	CreateTx(ctx context.Context, tx Transaction, movement *domain.Movement) error
	GetByID(ctx context.Context, id string) (*domain.Movement, error)
	Update(ctx context.Context, movement *domain.Movement) error
	UpdateStatus(ctx context.Context, id string, status domain.MovementStatus, updatedAt time.Time) error
	List(ctx context.Context, filter MovementFilter) ([]*domain.Movement, error)

	// ListApproved returns approved financial movements for the party within
	// the inclusive date range, ordered by date then id. The ordering must be
	// stable across calls with identical inputs.
	ListApproved(ctx context.Context, firmID, partyID string, dateFrom, dateTo time.Time) ([]*domain.Movement, error)

	// FindEarliestOpening returns the earliest approved opening_balance
	// movement for the party, or nil when none exists.
	FindEarliestOpening(ctx context.Context, firmID, partyID string) (*domain.Movement, error)

	// FindEarliestDate returns the date of the party's earliest approved
	// financial movement, or nil when the party has no history.
	FindEarliestDate(ctx context.Context, firmID, partyID string) (*time.Time, error)
}

// ChequeRepository defines data access for cheques.
type ChequeRepository interface {
	Create(ctx context.Context, cheque *domain.Cheque) error
	GetByID(ctx context.Context, id string) (*domain.Cheque, error)
	Update(ctx context.Context, cheque *domain.Cheque) error
	UpdateTx(ctx context.Context, tx Transaction, cheque *domain.Cheque) error
	ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Cheque, error)
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error
	ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Order, error)
}

// BillRepository defines data access for bills.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id string) (*domain.Bill, error)
	Delete(ctx context.Context, id string) error
	ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Bill, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Lock is a held distributed lock.
type Lock interface {
	Release(ctx context.Context) error
}

// LockManager obtains short-lived distributed locks, used to serialize
// movement approval across instances.
type LockManager interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
