package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/adapter/http/dto"
	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

type movementServiceStub struct {
	createFn  func(ctx context.Context, input usecase.CreateMovementInput) (*domain.Movement, error)
	getFn     func(ctx context.Context, id string) (*domain.Movement, error)
	updateFn  func(ctx context.Context, input usecase.UpdateMovementInput) (*domain.Movement, error)
	approveFn func(ctx context.Context, id string) (*domain.Movement, error)
	rejectFn  func(ctx context.Context, id string) (*domain.Movement, error)
	listFn    func(ctx context.Context, filter usecase.MovementFilter) ([]*domain.Movement, error)
}

func (s *movementServiceStub) CreateMovement(ctx context.Context, input usecase.CreateMovementInput) (*domain.Movement, error) {
	return s.createFn(ctx, input)
}

func (s *movementServiceStub) GetMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return s.getFn(ctx, id)
}

func (s *movementServiceStub) UpdateMovement(ctx context.Context, input usecase.UpdateMovementInput) (*domain.Movement, error) {
	return s.updateFn(ctx, input)
}

func (s *movementServiceStub) ApproveMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return s.approveFn(ctx, id)
}

func (s *movementServiceStub) RejectMovement(ctx context.Context, id string) (*domain.Movement, error) {
	return s.rejectFn(ctx, id)
}

func (s *movementServiceStub) ListMovements(ctx context.Context, filter usecase.MovementFilter) ([]*domain.Movement, error) {
	return s.listFn(ctx, filter)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMovementHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateMovementInput
	handler := NewMovementHandler(&movementServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateMovementInput) (*domain.Movement, error) {
			captured = input
			return &domain.Movement{
				ID:     "m1",
				Kind:   input.Kind,
				Status: domain.StatusPending,
				Amount: input.Amount,
				Date:   input.Date,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateMovementRequest{
		FirmID:  "f1",
		PartyID: "p1",
		Kind:    "sale",
		Amount:  decimal.NewFromInt(500),
		Date:    "2025-12-10",
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/movements", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Kind != domain.KindSale || !captured.Date.Equal(mustDate(t, "2025-12-10")) {
		t.Fatalf("expected parsed input, got %+v", captured)
	}

	var resp dto.MovementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "pending" || resp.Date != "2025-12-10" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestMovementHandler_Create_UnknownKind(t *testing.T) {
	handler := NewMovementHandler(&movementServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateMovementInput) (*domain.Movement, error) {
			t.Fatal("CreateMovement should not be called for unknown kind")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateMovementRequest{
		FirmID:  "f1",
		PartyID: "p1",
		Kind:    "refund",
		Amount:  decimal.NewFromInt(500),
		Date:    "2025-12-10",
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/movements", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMovementHandler_Approve_Conflict(t *testing.T) {
	handler := NewMovementHandler(&movementServiceStub{
		approveFn: func(ctx context.Context, id string) (*domain.Movement, error) {
			return nil, domain.ErrMovementNotPending
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/movements/m1/approve", nil), "id", "m1")
	rec := httptest.NewRecorder()
	handler.Approve(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}
