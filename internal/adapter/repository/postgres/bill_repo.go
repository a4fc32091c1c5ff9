package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/backoffice/internal/domain"
)

// BillRepository implements usecase.BillRepository.
type BillRepository struct {
	pool *pgxpool.Pool
}

// NewBillRepository creates a new BillRepository.
func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

const createBillSQL = `
INSERT INTO bills (id, firm_id, party_id, number, amount, issue_date, note, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Create creates a new bill.
func (r *BillRepository) Create(ctx context.Context, bill *domain.Bill) error {
	_, err := r.pool.Exec(ctx, createBillSQL,
		bill.ID,
		bill.FirmID,
		bill.PartyID,
		bill.Number,
		decimalToNumeric(bill.Amount),
		dateToPgDate(bill.IssueDate),
		bill.Note,
		timeToPgTimestamptz(bill.CreatedAt),
		timeToPgTimestamptz(bill.UpdatedAt),
	)

	return err
}

const getBillSQL = `
SELECT id, firm_id, party_id, number, amount, issue_date, note, created_at, updated_at
FROM bills
WHERE id = $1`

// GetByID retrieves a bill by ID.
func (r *BillRepository) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	bill, err := scanBill(r.pool.QueryRow(ctx, getBillSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}

		return nil, err
	}

	return bill, nil
}

const deleteBillSQL = `DELETE FROM bills WHERE id = $1`

// Delete deletes a bill.
func (r *BillRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteBillSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBillNotFound
	}

	return nil
}

const listBillsSQL = `
SELECT id, firm_id, party_id, number, amount, issue_date, note, created_at, updated_at
FROM bills
WHERE firm_id = $1 AND party_id = $2
ORDER BY issue_date DESC, id DESC
LIMIT $3 OFFSET $4`

// ListByParty lists bills for a party, most recent first.
func (r *BillRepository) ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Bill, error) {
	rows, err := r.pool.Query(ctx, listBillsSQL, firmID, partyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]*domain.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}

	return bills, rows.Err()
}

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var (
		bill      domain.Bill
		amount    pgtype.Numeric
		issueDate pgtype.Date
	)
	err := row.Scan(
		&bill.ID,
		&bill.FirmID,
		&bill.PartyID,
		&bill.Number,
		&amount,
		&issueDate,
		&bill.Note,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	bill.Amount = numericToDecimal(amount)
	bill.IssueDate = pgDateToTime(issueDate)

	return &bill, nil
}
