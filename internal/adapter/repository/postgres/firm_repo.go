package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/backoffice/internal/domain"
)

// FirmRepository implements usecase.FirmRepository.
type FirmRepository struct {
	pool *pgxpool.Pool
}

// NewFirmRepository creates a new FirmRepository.
func NewFirmRepository(pool *pgxpool.Pool) *FirmRepository {
	return &FirmRepository{pool: pool}
}

const createFirmSQL = `
INSERT INTO firms (id, name, tax_number, address, phone, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Create creates a new firm.
func (r *FirmRepository) Create(ctx context.Context, firm *domain.Firm) error {
	_, err := r.pool.Exec(ctx, createFirmSQL,
		firm.ID,
		firm.Name,
		firm.TaxNumber,
		firm.Address,
		firm.Phone,
		timeToPgTimestamptz(firm.CreatedAt),
		timeToPgTimestamptz(firm.UpdatedAt),
	)

	return err
}

const getFirmSQL = `
SELECT id, name, tax_number, address, phone, created_at, updated_at
FROM firms
WHERE id = $1`

// GetByID retrieves a firm by ID.
func (r *FirmRepository) GetByID(ctx context.Context, id string) (*domain.Firm, error) {
	firm, err := scanFirm(r.pool.QueryRow(ctx, getFirmSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFirmNotFound
		}

		return nil, err
	}

	return firm, nil
}

const updateFirmSQL = `
UPDATE firms
SET name = $2, tax_number = $3, address = $4, phone = $5, updated_at = $6
WHERE id = $1`

// Update updates a firm.
func (r *FirmRepository) Update(ctx context.Context, firm *domain.Firm) error {
	tag, err := r.pool.Exec(ctx, updateFirmSQL,
		firm.ID,
		firm.Name,
		firm.TaxNumber,
		firm.Address,
		firm.Phone,
		timeToPgTimestamptz(firm.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFirmNotFound
	}

	return nil
}

const listFirmsSQL = `
SELECT id, name, tax_number, address, phone, created_at, updated_at
FROM firms
ORDER BY name
LIMIT $1 OFFSET $2`

// List lists firms ordered by name.
func (r *FirmRepository) List(ctx context.Context, limit, offset int) ([]*domain.Firm, error) {
	rows, err := r.pool.Query(ctx, listFirmsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	firms := make([]*domain.Firm, 0)
	for rows.Next() {
		firm, err := scanFirm(rows)
		if err != nil {
			return nil, err
		}
		firms = append(firms, firm)
	}

	return firms, rows.Err()
}

func scanFirm(row pgx.Row) (*domain.Firm, error) {
	var firm domain.Firm
	err := row.Scan(
		&firm.ID,
		&firm.Name,
		&firm.TaxNumber,
		&firm.Address,
		&firm.Phone,
		&firm.CreatedAt,
		&firm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &firm, nil
}
