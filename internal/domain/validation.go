package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength     = 255
	MinNameLength     = 1
	MaxNoteLength     = 2000
	MaxMovementAmount = "1000000000000" // 1 trillion
)

// ValidateName validates a firm or party display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrValidation, MaxNameLength)
	}

	return nil
}

// ValidateDateRange checks a statement date range before any I/O happens.
func ValidateDateRange(dateFrom, dateTo time.Time) error {
	if dateFrom.IsZero() || dateTo.IsZero() {
		return fmt.Errorf("%w: both dates are required", ErrValidation)
	}
	if dateFrom.After(dateTo) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			dateFrom.Format(DateFormat), dateTo.Format(DateFormat))
	}
	return nil
}

// ValidateAmount validates a monetary magnitude.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxMovementAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrValidation, MaxMovementAmount)
	}

	return nil
}

// ValidateNote validates a free-text note field.
func ValidateNote(note string) error {
	if len(note) > MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrValidation, MaxNoteLength)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
