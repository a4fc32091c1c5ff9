package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mov(id string, kind MovementKind, amount int64, day string) *Movement {
	return &Movement{
		ID:      id,
		FirmID:  "firm-1",
		PartyID: "party-1",
		Kind:    kind,
		Status:  StatusApproved,
		Amount:  decimal.NewFromInt(amount),
		Date:    date(day),
	}
}

func TestAccumulateEntries_RunningBalances(t *testing.T) {
	// Scenario: opening 1000, sale 500 on day 2, collection 300 on day 5.
	opening := decimal.NewFromInt(1000)
	movements := []*Movement{
		mov("m1", KindSale, 500, "2026-01-02"),
		mov("m2", KindCollection, 300, "2026-01-05"),
	}

	entries, err := AccumulateEntries(opening, date("2026-01-01"), movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantBalances := []int64{1000, 1500, 1200}
	for i, want := range wantBalances {
		if !entries[i].Balance.Equal(decimal.NewFromInt(want)) {
			t.Errorf("entry %d: expected balance %d, got %s", i, want, entries[i].Balance)
		}
	}

	if !entries[0].IsOpening() {
		t.Error("first entry must be the opening entry")
	}
	if !entries[0].Debit.IsZero() || !entries[0].Credit.IsZero() {
		t.Error("opening entry must have zero debit and credit")
	}

	if !entries[1].Debit.Equal(decimal.NewFromInt(500)) || !entries[1].Credit.IsZero() {
		t.Errorf("sale entry: expected debit 500 / credit 0, got %s / %s", entries[1].Debit, entries[1].Credit)
	}
	if !entries[2].Credit.Equal(decimal.NewFromInt(300)) || !entries[2].Debit.IsZero() {
		t.Errorf("collection entry: expected credit 300 / debit 0, got %s / %s", entries[2].Credit, entries[2].Debit)
	}
}

func TestAccumulateEntries_NoMovements(t *testing.T) {
	opening := decimal.NewFromInt(250)

	entries, err := AccumulateEntries(opening, date("2026-03-01"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected a single opening entry, got %d entries", len(entries))
	}
	if !entries[0].Balance.Equal(opening) {
		t.Errorf("expected balance %s, got %s", opening, entries[0].Balance)
	}
	if entries[0].Description != OpeningEntryDescription {
		t.Errorf("expected description %q, got %q", OpeningEntryDescription, entries[0].Description)
	}
}

func TestAccumulateEntries_UnclassifiedKind(t *testing.T) {
	movements := []*Movement{
		mov("m1", MovementKind("adjustment"), 100, "2026-01-02"),
	}

	_, err := AccumulateEntries(decimal.Zero, date("2026-01-01"), movements)
	if err == nil {
		t.Fatal("expected error for unclassified kind, got nil")
	}
}

func TestAccumulateEntries_Deterministic(t *testing.T) {
	opening := decimal.NewFromInt(100)
	movements := []*Movement{
		mov("m1", KindSale, 70, "2026-02-01"),
		mov("m2", KindCreditNote, 20, "2026-02-01"),
		mov("m3", KindDebitNote, 15, "2026-02-03"),
		mov("m4", KindCollection, 50, "2026-02-10"),
	}

	first, err := AccumulateEntries(opening, date("2026-01-31"), movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := AccumulateEntries(opening, date("2026-01-31"), movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("entry counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].MovementID != second[i].MovementID ||
			!first[i].Date.Equal(second[i].Date) ||
			first[i].Description != second[i].Description ||
			!first[i].Debit.Equal(second[i].Debit) ||
			!first[i].Credit.Equal(second[i].Credit) ||
			!first[i].Balance.Equal(second[i].Balance) {
			t.Errorf("entry %d differs between identical runs", i)
		}
	}
}

func TestAccumulateEntries_MonotonicExtension(t *testing.T) {
	// Widening dateTo forward only appends; earlier rows are untouched.
	opening := decimal.NewFromInt(1000)
	early := []*Movement{
		mov("m1", KindSale, 500, "2026-01-02"),
	}
	extended := []*Movement{
		mov("m1", KindSale, 500, "2026-01-02"),
		mov("m2", KindCollection, 300, "2026-01-05"),
	}

	narrow, err := AccumulateEntries(opening, date("2026-01-01"), early)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wide, err := AccumulateEntries(opening, date("2026-01-01"), extended)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range narrow {
		if !narrow[i].Balance.Equal(wide[i].Balance) ||
			!narrow[i].Debit.Equal(wide[i].Debit) ||
			!narrow[i].Credit.Equal(wide[i].Credit) {
			t.Errorf("entry %d changed after widening the range", i)
		}
	}

	if len(wide) != len(narrow)+1 {
		t.Fatalf("expected exactly one appended entry, got %d vs %d", len(wide), len(narrow))
	}
}

func TestAggregateStatement_Summary(t *testing.T) {
	opening := decimal.NewFromInt(1000)
	movements := []*Movement{
		mov("m1", KindSale, 500, "2026-01-02"),
		mov("m2", KindCollection, 300, "2026-01-05"),
	}

	entries, err := AccumulateEntries(opening, date("2026-01-01"), movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := AggregateStatement(entries, date("2026-01-01"), date("2026-01-31"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.OpeningBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected opening 1000, got %s", summary.OpeningBalance)
	}
	if !summary.TotalDebit.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected total debit 500, got %s", summary.TotalDebit)
	}
	if !summary.TotalCredit.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected total credit 300, got %s", summary.TotalCredit)
	}
	if !summary.ClosingBalance.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected closing 1200, got %s", summary.ClosingBalance)
	}
	if summary.EntryCount != 2 {
		t.Errorf("expected entry count 2, got %d", summary.EntryCount)
	}

	// closing == opening + debit - credit, and final entry balance matches.
	derived := summary.OpeningBalance.Add(summary.TotalDebit).Sub(summary.TotalCredit)
	if !derived.Equal(summary.ClosingBalance) {
		t.Errorf("invariant broken: %s != %s", derived, summary.ClosingBalance)
	}
	if !entries[len(entries)-1].Balance.Equal(summary.ClosingBalance) {
		t.Error("final entry balance must equal closing balance")
	}
}

func TestAggregateStatement_AllZero(t *testing.T) {
	entries, err := AccumulateEntries(decimal.Zero, date("2026-04-01"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary, err := AggregateStatement(entries, date("2026-04-01"), date("2026-04-30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.OpeningBalance.IsZero() || !summary.ClosingBalance.IsZero() ||
		!summary.TotalDebit.IsZero() || !summary.TotalCredit.IsZero() {
		t.Errorf("expected all-zero summary, got %+v", summary)
	}
	if summary.EntryCount != 0 {
		t.Errorf("expected entry count 0, got %d", summary.EntryCount)
	}
}

func TestAggregateStatement_InvariantViolation(t *testing.T) {
	entries := []LedgerEntry{
		{Description: OpeningEntryDescription, Balance: decimal.NewFromInt(100)},
		{MovementID: "m1", Debit: decimal.NewFromInt(50), Credit: decimal.Zero, Balance: decimal.NewFromInt(999)},
	}

	_, err := AggregateStatement(entries, date("2026-01-01"), date("2026-01-31"))
	if err == nil {
		t.Fatal("expected invariant violation, got nil")
	}
}

func TestAggregateStatement_MissingOpeningEntry(t *testing.T) {
	entries := []LedgerEntry{
		{MovementID: "m1", Debit: decimal.NewFromInt(50), Balance: decimal.NewFromInt(50)},
	}

	_, err := AggregateStatement(entries, date("2026-01-01"), date("2026-01-31"))
	if err == nil {
		t.Fatal("expected error for missing opening entry, got nil")
	}
}

func TestDescribeMovement(t *testing.T) {
	tests := []struct {
		name     string
		movement *Movement
		want     string
	}{
		{
			name:     "bare sale",
			movement: &Movement{Kind: KindSale},
			want:     "Sale",
		},
		{
			name:     "sale with bill number",
			movement: &Movement{Kind: KindSale, BillNumber: "B-104"},
			want:     "Sale - Bill #B-104",
		},
		{
			name:     "collection with method and note",
			movement: &Movement{Kind: KindCollection, PaymentMethod: "bank transfer", Note: "partial"},
			want:     "Collection - bank transfer - partial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeMovement(tt.movement); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
