package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

// ChequeRepository implements usecase.ChequeRepository.
type ChequeRepository struct {
	pool *pgxpool.Pool
}

// NewChequeRepository creates a new ChequeRepository.
func NewChequeRepository(pool *pgxpool.Pool) *ChequeRepository {
	return &ChequeRepository{pool: pool}
}

const chequeColumns = `id, firm_id, party_id, number, bank, amount, due_date,
	status, movement_id, created_at, updated_at`

const createChequeSQL = `
INSERT INTO cheques (id, firm_id, party_id, number, bank, amount, due_date,
	status, movement_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Create creates a new cheque.
func (r *ChequeRepository) Create(ctx context.Context, cheque *domain.Cheque) error {
	_, err := r.pool.Exec(ctx, createChequeSQL,
		cheque.ID,
		cheque.FirmID,
		cheque.PartyID,
		cheque.Number,
		cheque.Bank,
		decimalToNumeric(cheque.Amount),
		dateToPgDate(cheque.DueDate),
		string(cheque.Status),
		cheque.MovementID,
		timeToPgTimestamptz(cheque.CreatedAt),
		timeToPgTimestamptz(cheque.UpdatedAt),
	)

	return err
}

const getChequeSQL = `
SELECT ` + chequeColumns + `
FROM cheques
WHERE id = $1`

// GetByID retrieves a cheque by ID.
func (r *ChequeRepository) GetByID(ctx context.Context, id string) (*domain.Cheque, error) {
	cheque, err := scanCheque(r.pool.QueryRow(ctx, getChequeSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChequeNotFound
		}

		return nil, err
	}

	return cheque, nil
}

const updateChequeSQL = `
UPDATE cheques
SET status = $2, movement_id = $3, updated_at = $4
WHERE id = $1`

// Update updates a cheque's status and movement link.
func (r *ChequeRepository) Update(ctx context.Context, cheque *domain.Cheque) error {
	return updateCheque(ctx, r.pool, cheque)
}

// UpdateTx updates a cheque inside an existing transaction.
func (r *ChequeRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, cheque *domain.Cheque) error {
	return updateCheque(ctx, tx.(*Tx).PgxTx(), cheque)
}

func updateCheque(ctx context.Context, q querier, cheque *domain.Cheque) error {
	tag, err := q.Exec(ctx, updateChequeSQL,
		cheque.ID,
		string(cheque.Status),
		cheque.MovementID,
		timeToPgTimestamptz(cheque.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChequeNotFound
	}

	return nil
}

const listChequesSQL = `
SELECT ` + chequeColumns + `
FROM cheques
WHERE firm_id = $1 AND party_id = $2
ORDER BY due_date, id
LIMIT $3 OFFSET $4`

// ListByParty lists cheques for a party ordered by due date.
func (r *ChequeRepository) ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Cheque, error) {
	rows, err := r.pool.Query(ctx, listChequesSQL, firmID, partyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cheques := make([]*domain.Cheque, 0)
	for rows.Next() {
		cheque, err := scanCheque(rows)
		if err != nil {
			return nil, err
		}
		cheques = append(cheques, cheque)
	}

	return cheques, rows.Err()
}

func scanCheque(row pgx.Row) (*domain.Cheque, error) {
	var (
		cheque  domain.Cheque
		amount  pgtype.Numeric
		dueDate pgtype.Date
		status  string
	)
	err := row.Scan(
		&cheque.ID,
		&cheque.FirmID,
		&cheque.PartyID,
		&cheque.Number,
		&cheque.Bank,
		&amount,
		&dueDate,
		&status,
		&cheque.MovementID,
		&cheque.CreatedAt,
		&cheque.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	cheque.Amount = numericToDecimal(amount)
	cheque.DueDate = pgDateToTime(dueDate)
	cheque.Status = domain.ChequeStatus(status)

	return &cheque, nil
}
