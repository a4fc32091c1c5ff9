package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/backoffice/internal/domain"
)

// PartyRepository implements usecase.PartyRepository.
type PartyRepository struct {
	pool *pgxpool.Pool
}

// NewPartyRepository creates a new PartyRepository.
func NewPartyRepository(pool *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{pool: pool}
}

const createPartySQL = `
INSERT INTO parties (id, firm_id, name, type, phone, email, notes, opening_balance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Create creates a new party.
func (r *PartyRepository) Create(ctx context.Context, party *domain.Party) error {
	_, err := r.pool.Exec(ctx, createPartySQL,
		party.ID,
		party.FirmID,
		party.Name,
		string(party.Type),
		party.Phone,
		party.Email,
		party.Notes,
		decimalToNumeric(party.OpeningBalance),
		timeToPgTimestamptz(party.CreatedAt),
		timeToPgTimestamptz(party.UpdatedAt),
	)

	return err
}

const getPartySQL = `
SELECT id, firm_id, name, type, phone, email, notes, opening_balance, created_at, updated_at
FROM parties
WHERE id = $1`

// GetByID retrieves a party by ID.
func (r *PartyRepository) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	party, err := scanParty(r.pool.QueryRow(ctx, getPartySQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}

		return nil, err
	}

	return party, nil
}

const updatePartySQL = `
UPDATE parties
SET name = $2, type = $3, phone = $4, email = $5, notes = $6, opening_balance = $7, updated_at = $8
WHERE id = $1`

// Update updates a party.
func (r *PartyRepository) Update(ctx context.Context, party *domain.Party) error {
	tag, err := r.pool.Exec(ctx, updatePartySQL,
		party.ID,
		party.Name,
		string(party.Type),
		party.Phone,
		party.Email,
		party.Notes,
		decimalToNumeric(party.OpeningBalance),
		timeToPgTimestamptz(party.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPartyNotFound
	}

	return nil
}

const deletePartySQL = `DELETE FROM parties WHERE id = $1`

// Delete deletes a party.
func (r *PartyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deletePartySQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPartyNotFound
	}

	return nil
}

const listPartiesSQL = `
SELECT id, firm_id, name, type, phone, email, notes, opening_balance, created_at, updated_at
FROM parties
WHERE firm_id = $1 AND ($2 = '' OR type = $2)
ORDER BY name
LIMIT $3 OFFSET $4`

// ListByFirm lists parties for a firm, optionally filtered by type.
func (r *PartyRepository) ListByFirm(ctx context.Context, firmID string, partyType domain.PartyType, limit, offset int) ([]*domain.Party, error) {
	rows, err := r.pool.Query(ctx, listPartiesSQL, firmID, string(partyType), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parties := make([]*domain.Party, 0)
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}

	return parties, rows.Err()
}

func scanParty(row pgx.Row) (*domain.Party, error) {
	var (
		party          domain.Party
		partyType      string
		openingBalance pgtype.Numeric
	)
	err := row.Scan(
		&party.ID,
		&party.FirmID,
		&party.Name,
		&partyType,
		&party.Phone,
		&party.Email,
		&party.Notes,
		&openingBalance,
		&party.CreatedAt,
		&party.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	party.Type = domain.PartyType(partyType)
	party.OpeningBalance = numericToDecimal(openingBalance)

	return &party, nil
}
