package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a sales order.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is one line of an order.
type OrderItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// LineTotal returns quantity times unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Order is a sales order placed by a party. Orders carry no inventory
// reservation arithmetic; confirming one is a bookkeeping act only.
type Order struct {
	ID        string
	FirmID    string
	PartyID   string
	Number    string
	Status    OrderStatus
	Date      time.Time // calendar date
	Items     []OrderItem
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total sums all line totals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Validate checks structural validity of an order.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order requires at least one item", ErrValidation)
	}
	for i, item := range o.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrValidation, i)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d unit price must not be negative", ErrValidation, i)
		}
	}
	return nil
}
