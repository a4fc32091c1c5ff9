package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/backoffice/internal/adapter/http/handler"
	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

type statementStub struct {
	calls int
}

func (s *statementStub) ComputeStatement(ctx context.Context, req usecase.StatementRequest) (*domain.Statement, error) {
	s.calls++
	return &domain.Statement{}, nil
}

func newTestRouter(stmt *statementStub) http.Handler {
	return NewRouter(RouterConfig{
		FirmHandler:      handler.NewFirmHandler(nil),
		PartyHandler:     handler.NewPartyHandler(nil),
		MovementHandler:  handler.NewMovementHandler(nil),
		ChequeHandler:    handler.NewChequeHandler(nil),
		OrderHandler:     handler.NewOrderHandler(nil),
		BillHandler:      handler.NewBillHandler(nil),
		StatementHandler: handler.NewStatementHandler(stmt),
		HealthHandler:    handler.NewHealthHandler(nil, nil),
		Logger:           zerolog.Nop(),
	})
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := newTestRouter(&statementStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := newTestRouter(&statementStub{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_StatementRouteWired(t *testing.T) {
	stmt := &statementStub{}
	router := newTestRouter(stmt)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/parties/p1/statement?firm_id=f1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stmt.calls != 1 {
		t.Fatalf("expected statement use case to be invoked once, got %d", stmt.calls)
	}
}
