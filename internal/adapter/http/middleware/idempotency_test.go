package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type idempotencyStoreStub struct {
	checkFn  func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	updates  map[string][]byte
}

func (s *idempotencyStoreStub) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	return s.checkFn(ctx, key, response, ttl)
}

func (s *idempotencyStoreStub) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if s.updates == nil {
		s.updates = map[string][]byte{}
	}
	s.updates[key] = response
	if s.updateFn != nil {
		return s.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	store := &idempotencyStoreStub{
		checkFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(`{"id":"m1"}`), nil
		},
	}

	handlerCalled := false
	wrapped := NewIdempotencyMiddleware(store, 0).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/movements", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if handlerCalled {
		t.Fatal("handler should not run for replayed request")
	}
	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header")
	}
	if rec.Body.String() != `{"id":"m1"}` {
		t.Fatalf("expected cached body, got %s", rec.Body.String())
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	store := &idempotencyStoreStub{
		checkFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
	}

	wrapped := NewIdempotencyMiddleware(store, 0).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"m2"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/movements", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-2")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if string(store.updates["key-2"]) != `{"id":"m2"}` {
		t.Fatalf("expected stored response, got %s", store.updates["key-2"])
	}
}

func TestIdempotencyMiddleware_SkipsFailedResponse(t *testing.T) {
	store := &idempotencyStoreStub{
		checkFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, nil
		},
	}

	wrapped := NewIdempotencyMiddleware(store, 0).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/movements", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-3")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if _, ok := store.updates["key-3"]; ok {
		t.Fatal("failed responses must not become replayable")
	}
}

func TestIdempotencyMiddleware_IgnoresGetRequests(t *testing.T) {
	store := &idempotencyStoreStub{
		checkFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatal("store should not be consulted for GET")
			return false, nil, nil
		},
	}

	wrapped := NewIdempotencyMiddleware(store, 0).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/movements", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-4")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
