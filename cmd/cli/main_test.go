package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestParseDateFlag(t *testing.T) {
	if got, err := parseDateFlag(""); err != nil || got != nil {
		t.Fatalf("expected nil date for empty flag, got %v, %v", got, err)
	}

	got, err := parseDateFlag("2025-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Format(domain.DateFormat) != "2025-06-15" {
		t.Fatalf("expected 2025-06-15, got %s", got)
	}

	if _, err := parseDateFlag("15/06/2025"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestPrintStatement(t *testing.T) {
	statement := &domain.Statement{
		Entries: []domain.LedgerEntry{
			{
				Date:        mustDate(t, "2025-06-01"),
				Description: domain.OpeningEntryDescription,
				Balance:     decimal.NewFromInt(100),
			},
			{
				MovementID:  "m1",
				Date:        mustDate(t, "2025-06-02"),
				Description: "Sale",
				Debit:       decimal.NewFromInt(50),
				Balance:     decimal.NewFromInt(150),
			},
		},
		Summary: domain.StatementSummary{
			OpeningBalance: decimal.NewFromInt(100),
			ClosingBalance: decimal.NewFromInt(150),
			TotalDebit:     decimal.NewFromInt(50),
			EntryCount:     1,
			DateFrom:       mustDate(t, "2025-06-01"),
			DateTo:         mustDate(t, "2025-06-30"),
		},
	}

	out := captureOutput(t, func() {
		printStatement(statement)
	})

	for _, want := range []string{
		"Statement 2025-06-01 to 2025-06-30",
		"Sale",
		"150.00",
		"(1 movements)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func mustDate(t *testing.T, s string) (date time.Time) {
	t.Helper()
	date, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return date
}
