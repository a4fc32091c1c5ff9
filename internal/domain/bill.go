package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bill is an invoice document issued to a party. Its number is the
// reference field sale movements point at.
type Bill struct {
	ID        string
	FirmID    string
	PartyID   string
	Number    string
	Amount    decimal.Decimal
	IssueDate time.Time // calendar date
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural validity of a bill.
func (b *Bill) Validate() error {
	if b.Number == "" {
		return fmt.Errorf("%w: bill number is required", ErrValidation)
	}
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if b.IssueDate.IsZero() {
		return fmt.Errorf("%w: bill issue date is required", ErrValidation)
	}
	return nil
}
