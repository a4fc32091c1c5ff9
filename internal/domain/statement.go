package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OpeningEntryDescription labels the synthetic first entry of a statement.
const OpeningEntryDescription = "Opening Balance"

// LedgerEntry is one row of a computed statement. Exactly one of Debit and
// Credit is non-zero, except the synthetic opening entry which carries only
// a balance. Entries are ephemeral: rebuilt on every request, never stored.
type LedgerEntry struct {
	MovementID  string // empty for the opening entry
	Date        time.Time
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal // running balance after this entry
}

// IsOpening reports whether this is the synthetic opening-balance entry.
func (e *LedgerEntry) IsOpening() bool {
	return e.MovementID == ""
}

// StatementSummary holds the aggregate totals of a computed statement.
type StatementSummary struct {
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	EntryCount     int // movements only, the opening entry is not counted
	DateFrom       time.Time
	DateTo         time.Time
}

// Statement is the computed result handed to callers: rows plus summary.
type Statement struct {
	Entries []LedgerEntry
	Summary StatementSummary
}

// AccumulateEntries folds movements into ledger rows: a synthetic opening
// entry first, then one entry per movement in the given order with a running
// balance. The fold is strictly left to right; no movement is reordered or
// skipped. Movements must already be selected and ordered by the caller.
func AccumulateEntries(opening decimal.Decimal, anchorDate time.Time, movements []*Movement) ([]LedgerEntry, error) {
	entries := make([]LedgerEntry, 0, len(movements)+1)
	entries = append(entries, LedgerEntry{
		Date:        anchorDate,
		Description: OpeningEntryDescription,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
		Balance:     opening,
	})

	balance := opening
	for _, m := range movements {
		isDebit, err := m.Kind.Classify()
		if err != nil {
			return nil, err
		}

		debit, credit := decimal.Zero, decimal.Zero
		if isDebit {
			debit = m.Amount
		} else {
			credit = m.Amount
		}

		balance = balance.Add(debit).Sub(credit)

		entries = append(entries, LedgerEntry{
			MovementID:  m.ID,
			Date:        m.Date,
			Description: DescribeMovement(m),
			Debit:       debit,
			Credit:      credit,
			Balance:     balance,
		})
	}

	return entries, nil
}

// AggregateStatement derives summary totals from accumulated entries and
// cross-checks the closing balance against an independent re-derivation.
// A mismatch means the accumulator and this aggregation have diverged; it
// surfaces as ErrInvariantViolation and must never be swallowed.
func AggregateStatement(entries []LedgerEntry, dateFrom, dateTo time.Time) (*StatementSummary, error) {
	if len(entries) == 0 || !entries[0].IsOpening() {
		return nil, fmt.Errorf("%w: entries must start with an opening entry", ErrInvariantViolation)
	}

	opening := entries[0].Balance
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, e := range entries[1:] {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	closing := entries[len(entries)-1].Balance
	derived := opening.Add(totalDebit).Sub(totalCredit)
	if !derived.Equal(closing) {
		return nil, fmt.Errorf("%w: derived closing %s != accumulated %s (opening=%s debit=%s credit=%s)",
			ErrInvariantViolation, derived, closing, opening, totalDebit, totalCredit)
	}

	return &StatementSummary{
		OpeningBalance: opening,
		ClosingBalance: closing,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		EntryCount:     len(entries) - 1,
		DateFrom:       dateFrom,
		DateTo:         dateTo,
	}, nil
}

var kindLabels = map[MovementKind]string{
	KindSale:       "Sale",
	KindCollection: "Collection",
	KindDebitNote:  "Debit Note",
	KindCreditNote: "Credit Note",
}

// DescribeMovement renders a human-readable row description from the
// movement's kind and reference fields. Pure formatting, no business logic.
func DescribeMovement(m *Movement) string {
	label, ok := kindLabels[m.Kind]
	if !ok {
		label = string(m.Kind)
	}

	parts := []string{label}
	if m.BillNumber != "" {
		parts = append(parts, "Bill #"+m.BillNumber)
	}
	if m.PaymentMethod != "" {
		parts = append(parts, m.PaymentMethod)
	}
	if m.Note != "" {
		parts = append(parts, m.Note)
	}

	return strings.Join(parts, " - ")
}
