package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/backoffice/internal/usecase"
)

const statementJSON = `{
	"entries": [
		{"date": "2025-06-01", "description": "Opening balance", "debit": "0", "credit": "0", "balance": "100"},
		{"movement_id": "m1", "date": "2025-06-02", "description": "Sale", "debit": "50", "credit": "0", "balance": "150"}
	],
	"summary": {
		"opening_balance": "100",
		"closing_balance": "150",
		"total_debit": "50",
		"total_credit": "0",
		"entry_count": 1,
		"date_from": "2025-06-01",
		"date_to": "2025-06-30"
	}
}`

func newStatementServer(t *testing.T, handler http.HandlerFunc) *apiClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &apiClient{baseURL: server.URL, client: &http.Client{Timeout: 5 * time.Second}}
}

func TestComputeStatement(t *testing.T) {
	var gotPath, gotQuery string
	client := newStatementServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(statementJSON))
	})

	from := mustDate(t, "2025-06-01")
	to := mustDate(t, "2025-06-30")

	statement, err := client.ComputeStatement(context.Background(), usecase.StatementRequest{
		FirmID:   "f1",
		PartyID:  "p1",
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/v1/parties/p1/statement" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	for _, want := range []string{"firm_id=f1", "from=2025-06-01", "to=2025-06-30"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("expected query to contain %q, got %s", want, gotQuery)
		}
	}

	if len(statement.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(statement.Entries))
	}
	if statement.Summary.ClosingBalance.String() != "150" {
		t.Fatalf("expected closing 150, got %s", statement.Summary.ClosingBalance)
	}
	if !statement.Entries[0].IsOpening() {
		t.Fatalf("expected first entry to be the opening entry")
	}
}

func TestComputeStatementServerError(t *testing.T) {
	client := newStatementServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "not_found", "message": "party not found"}`))
	})

	_, err := client.ComputeStatement(context.Background(), usecase.StatementRequest{
		FirmID:  "f1",
		PartyID: "missing",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "party not found") {
		t.Fatalf("expected server message in error, got: %v", err)
	}
}

func TestClientDrivesSession(t *testing.T) {
	client := newStatementServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(statementJSON))
	})

	session := usecase.NewStatementSession(client, zerolog.Nop(), nil)
	defer session.Close()

	<-session.Load(context.Background(), usecase.StatementRequest{FirmID: "f1", PartyID: "p1"})

	state, statement, err := session.Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != usecase.SessionReady {
		t.Fatalf("expected ready state, got %s", state)
	}
	if statement.Summary.EntryCount != 1 {
		t.Fatalf("expected entry count 1, got %d", statement.Summary.EntryCount)
	}
}
