package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind identifies what a movement represents. The set is closed:
// a kind the accumulator cannot classify is rejected, never defaulted.
type MovementKind string

const (
	KindSale       MovementKind = "sale"
	KindCollection MovementKind = "collection"
	KindDebitNote  MovementKind = "debit_note"
	KindCreditNote MovementKind = "credit_note"

	// KindOpeningBalance is a synthetic anchor record. It never flows
	// through the accumulator as a regular movement.
	KindOpeningBalance MovementKind = "opening_balance"
)

var validKinds = map[MovementKind]bool{
	KindSale:           true,
	KindCollection:     true,
	KindDebitNote:      true,
	KindCreditNote:     true,
	KindOpeningBalance: true,
}

// IsValid checks if the kind is known.
func (k MovementKind) IsValid() bool {
	return validKinds[k]
}

// IsFinancial reports whether the kind represents a real financial movement
// that participates in statement computation.
func (k MovementKind) IsFinancial() bool {
	return validKinds[k] && k != KindOpeningBalance
}

// debitKinds maps each financial kind to its ledger side: true increases
// what the party owes (debit), false decreases it (credit).
var debitKinds = map[MovementKind]bool{
	KindSale:       true,
	KindDebitNote:  true,
	KindCollection: false,
	KindCreditNote: false,
}

// Classify returns whether the kind posts to the debit side. Kinds outside
// the classification table fail with ErrUnclassifiedKind.
func (k MovementKind) Classify() (debit bool, err error) {
	debit, ok := debitKinds[k]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnclassifiedKind, k)
	}
	return debit, nil
}

// MovementStatus is the approval state of a movement.
type MovementStatus string

const (
	StatusPending  MovementStatus = "pending"
	StatusApproved MovementStatus = "approved"
	StatusRejected MovementStatus = "rejected"
)

var validStatuses = map[MovementStatus]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// IsValid checks if the status is known.
func (s MovementStatus) IsValid() bool {
	return validStatuses[s]
}

// Movement is a raw transaction record affecting a party's balance. Amount
// is always a positive magnitude; the sign meaning comes from Kind.
type Movement struct {
	ID      string
	FirmID  string
	PartyID string
	Kind    MovementKind
	Status  MovementStatus
	Amount  decimal.Decimal
	Date    time.Time // calendar date, midnight UTC

	// Optional reference fields
	BillNumber    string
	PaymentMethod string
	Note          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural validity of a movement record.
func (m *Movement) Validate() error {
	if !m.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, m.Kind)
	}
	if !m.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, m.Status)
	}
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: movement date is required", ErrValidation)
	}
	return nil
}

// QualifiesForStatement reports whether the movement participates in
// statement computation: approved, and a real financial kind.
func (m *Movement) QualifiesForStatement() bool {
	return m.Status == StatusApproved && m.Kind.IsFinancial()
}
