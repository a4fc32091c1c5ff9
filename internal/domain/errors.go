package domain

import "errors"

var (
	// Lookup errors
	ErrFirmNotFound     = errors.New("firm not found")
	ErrPartyNotFound    = errors.New("party not found")
	ErrMovementNotFound = errors.New("movement not found")
	ErrChequeNotFound   = errors.New("cheque not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrBillNotFound     = errors.New("bill not found")

	// Input errors
	ErrValidation       = errors.New("validation failed")
	ErrInvalidDateRange = errors.New("date_from must not be after date_to")
	ErrInvalidAmount    = errors.New("amount must be positive")

	// Movement errors
	ErrUnclassifiedKind   = errors.New("movement kind has no debit/credit classification")
	ErrMovementNotPending = errors.New("movement is not pending")

	// Cheque errors
	ErrChequeTransition = errors.New("invalid cheque state transition")

	// Infrastructure errors
	ErrDataAccess = errors.New("data access failure")

	// ErrInvariantViolation indicates the accumulator and the aggregator
	// disagree on the closing balance. It is a logic defect, never a user error.
	ErrInvariantViolation = errors.New("statement invariant violation")
)
