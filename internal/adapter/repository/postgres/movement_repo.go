package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

// MovementRepository implements usecase.MovementRepository. Write operations
// go through the retrier so transient serialization failures do not surface
// to callers.
type MovementRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool, retrier *Retrier) *MovementRepository {
	return &MovementRepository{pool: pool, retrier: retrier}
}

const movementColumns = `id, firm_id, party_id, kind, status, amount, date,
	bill_number, payment_method, note, created_at, updated_at`

const createMovementSQL = `
INSERT INTO movements (id, firm_id, party_id, kind, status, amount, date,
	bill_number, payment_method, note, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Create creates a new movement.
func (r *MovementRepository) Create(ctx context.Context, movement *domain.Movement) error {
	return r.retrier.Retry(ctx, func() error {
		return createMovement(ctx, r.pool, movement)
	})
}

// CreateTx creates a movement inside an existing transaction.
func (r *MovementRepository) CreateTx(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	return createMovement(ctx, tx.(*Tx).PgxTx(), movement)
}

func createMovement(ctx context.Context, q querier, movement *domain.Movement) error {
	_, err := q.Exec(ctx, createMovementSQL,
		movement.ID,
		movement.FirmID,
		movement.PartyID,
		string(movement.Kind),
		string(movement.Status),
		decimalToNumeric(movement.Amount),
		dateToPgDate(movement.Date),
		movement.BillNumber,
		movement.PaymentMethod,
		movement.Note,
		timeToPgTimestamptz(movement.CreatedAt),
		timeToPgTimestamptz(movement.UpdatedAt),
	)

	return err
}

const getMovementSQL = `
SELECT ` + movementColumns + `
FROM movements
WHERE id = $1`

// GetByID retrieves a movement by ID.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	movement, err := scanMovement(r.pool.QueryRow(ctx, getMovementSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}

		return nil, err
	}

	return movement, nil
}

const updateMovementSQL = `
UPDATE movements
SET amount = $2, date = $3, bill_number = $4, payment_method = $5, note = $6, updated_at = $7
WHERE id = $1`

// Update updates a movement's editable fields.
func (r *MovementRepository) Update(ctx context.Context, movement *domain.Movement) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, updateMovementSQL,
			movement.ID,
			decimalToNumeric(movement.Amount),
			dateToPgDate(movement.Date),
			movement.BillNumber,
			movement.PaymentMethod,
			movement.Note,
			timeToPgTimestamptz(movement.UpdatedAt),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrMovementNotFound
		}

		return nil
	})
}

const updateMovementStatusSQL = `
UPDATE movements
SET status = $2, updated_at = $3
WHERE id = $1`

// UpdateStatus transitions a movement's approval status.
func (r *MovementRepository) UpdateStatus(ctx context.Context, id string, status domain.MovementStatus, updatedAt time.Time) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, updateMovementStatusSQL,
			id,
			string(status),
			timeToPgTimestamptz(updatedAt),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrMovementNotFound
		}

		return nil
	})
}

// List lists movements matching the filter, most recent first.
func (r *MovementRepository) List(ctx context.Context, filter usecase.MovementFilter) ([]*domain.Movement, error) {
	var (
		conditions []string
		args       []any
	)

	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.FirmID != "" {
		add("firm_id = $%d", filter.FirmID)
	}
	if filter.PartyID != "" {
		add("party_id = $%d", filter.PartyID)
	}
	if filter.Kind != "" {
		add("kind = $%d", string(filter.Kind))
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.DateFrom != nil {
		add("date >= $%d", dateToPgDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		add("date <= $%d", dateToPgDate(*filter.DateTo))
	}

	sql := `SELECT ` + movementColumns + ` FROM movements`
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += fmt.Sprintf(" ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

const listApprovedSQL = `
SELECT ` + movementColumns + `
FROM movements
WHERE firm_id = $1
  AND party_id = $2
  AND status = 'approved'
  AND kind <> 'opening_balance'
  AND date >= $3
  AND date <= $4
ORDER BY date, id`

// ListApproved returns approved financial movements within the inclusive
// date range. Ordering by date then id makes the result stable for the
// statement accumulator.
func (r *MovementRepository) ListApproved(ctx context.Context, firmID, partyID string, dateFrom, dateTo time.Time) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx, listApprovedSQL,
		firmID, partyID, dateToPgDate(dateFrom), dateToPgDate(dateTo))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

const earliestOpeningSQL = `
SELECT ` + movementColumns + `
FROM movements
WHERE firm_id = $1
  AND party_id = $2
  AND status = 'approved'
  AND kind = 'opening_balance'
ORDER BY date, id
LIMIT 1`

// FindEarliestOpening returns the earliest approved opening_balance movement
// for the party, or nil when none exists.
func (r *MovementRepository) FindEarliestOpening(ctx context.Context, firmID, partyID string) (*domain.Movement, error) {
	movement, err := scanMovement(r.pool.QueryRow(ctx, earliestOpeningSQL, firmID, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return movement, nil
}

const earliestDateSQL = `
SELECT min(date)
FROM movements
WHERE firm_id = $1
  AND party_id = $2
  AND status = 'approved'
  AND kind <> 'opening_balance'`

// FindEarliestDate returns the date of the party's earliest approved
// financial movement, or nil when the party has no history.
func (r *MovementRepository) FindEarliestDate(ctx context.Context, firmID, partyID string) (*time.Time, error) {
	var earliest pgtype.Date
	if err := r.pool.QueryRow(ctx, earliestDateSQL, firmID, partyID).Scan(&earliest); err != nil {
		return nil, err
	}
	if !earliest.Valid {
		return nil, nil
	}

	date := pgDateToTime(earliest)

	return &date, nil
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var (
		movement domain.Movement
		kind     string
		status   string
		amount   pgtype.Numeric
		date     pgtype.Date
	)
	err := row.Scan(
		&movement.ID,
		&movement.FirmID,
		&movement.PartyID,
		&kind,
		&status,
		&amount,
		&date,
		&movement.BillNumber,
		&movement.PaymentMethod,
		&movement.Note,
		&movement.CreatedAt,
		&movement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	movement.Kind = domain.MovementKind(kind)
	movement.Status = domain.MovementStatus(status)
	movement.Amount = numericToDecimal(amount)
	movement.Date = pgDateToTime(date)

	return &movement, nil
}

func scanMovements(rows pgx.Rows) ([]*domain.Movement, error) {
	movements := make([]*domain.Movement, 0)
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	return movements, rows.Err()
}
