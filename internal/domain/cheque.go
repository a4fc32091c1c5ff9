package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ChequeStatus is the lifecycle state of a cheque.
type ChequeStatus string

const (
	ChequeStatusInHand    ChequeStatus = "in_hand"
	ChequeStatusDeposited ChequeStatus = "deposited"
	ChequeStatusCleared   ChequeStatus = "cleared"
	ChequeStatusBounced   ChequeStatus = "bounced"
)

// chequeTransitions lists the allowed state changes. Cleared and bounced
// are terminal.
var chequeTransitions = map[ChequeStatus][]ChequeStatus{
	ChequeStatusInHand:    {ChequeStatusDeposited},
	ChequeStatusDeposited: {ChequeStatusCleared, ChequeStatusBounced},
}

// CanTransition reports whether a cheque may move from its current status
// to the target status.
func (s ChequeStatus) CanTransition(to ChequeStatus) bool {
	for _, allowed := range chequeTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Cheque is a payment instrument received from a party. Clearing a cheque
// is what produces a collection movement; the cheque record only tracks the
// instrument and the link.
type Cheque struct {
	ID         string
	FirmID     string
	PartyID    string
	Number     string
	Bank       string
	Amount     decimal.Decimal
	DueDate    time.Time // calendar date
	Status     ChequeStatus
	MovementID string // set when cleared, the collection movement produced
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks structural validity of a cheque record.
func (c *Cheque) Validate() error {
	if c.Number == "" {
		return fmt.Errorf("%w: cheque number is required", ErrValidation)
	}
	if c.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if c.DueDate.IsZero() {
		return fmt.Errorf("%w: cheque due date is required", ErrValidation)
	}
	return nil
}

// Transition validates and applies a status change.
func (c *Cheque) Transition(to ChequeStatus) error {
	if !c.Status.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrChequeTransition, c.Status, to)
	}
	c.Status = to
	return nil
}
