package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/backoffice/internal/domain"
)

// OrderRepository implements usecase.OrderRepository. Order items live in a
// child table and are written together with the header in one transaction.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const createOrderSQL = `
INSERT INTO orders (id, firm_id, party_id, number, status, date, note, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const createOrderItemSQL = `
INSERT INTO order_items (order_id, position, description, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5)`

// Create creates an order with its items.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, createOrderSQL,
		order.ID,
		order.FirmID,
		order.PartyID,
		order.Number,
		string(order.Status),
		dateToPgDate(order.Date),
		order.Note,
		timeToPgTimestamptz(order.CreatedAt),
		timeToPgTimestamptz(order.UpdatedAt),
	)
	if err != nil {
		return err
	}

	for i, item := range order.Items {
		_, err = tx.Exec(ctx, createOrderItemSQL,
			order.ID,
			i,
			item.Description,
			decimalToNumeric(item.Quantity),
			decimalToNumeric(item.UnitPrice),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const getOrderSQL = `
SELECT id, firm_id, party_id, number, status, date, note, created_at, updated_at
FROM orders
WHERE id = $1`

const getOrderItemsSQL = `
SELECT description, quantity, unit_price
FROM order_items
WHERE order_id = $1
ORDER BY position`

// GetByID retrieves an order with its items.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, getOrderSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}

		return nil, err
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := r.pool.Query(ctx, getOrderItemsSQL, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      domain.OrderItem
			quantity  pgtype.Numeric
			unitPrice pgtype.Numeric
		)
		if err := rows.Scan(&item.Description, &quantity, &unitPrice); err != nil {
			return err
		}
		item.Quantity = numericToDecimal(quantity)
		item.UnitPrice = numericToDecimal(unitPrice)
		order.Items = append(order.Items, item)
	}

	return rows.Err()
}

const updateOrderStatusSQL = `
UPDATE orders
SET status = $2, updated_at = $3
WHERE id = $1`

// UpdateStatus transitions an order's status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL,
		id,
		string(status),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

const listOrdersSQL = `
SELECT id, firm_id, party_id, number, status, date, note, created_at, updated_at
FROM orders
WHERE firm_id = $1 AND party_id = $2
ORDER BY date DESC, id DESC
LIMIT $3 OFFSET $4`

// ListByParty lists orders for a party, most recent first, items included.
func (r *OrderRepository) ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL, firmID, partyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order  domain.Order
		status string
		date   pgtype.Date
	)
	err := row.Scan(
		&order.ID,
		&order.FirmID,
		&order.PartyID,
		&order.Number,
		&status,
		&date,
		&order.Note,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	order.Date = pgDateToTime(date)

	return &order, nil
}
