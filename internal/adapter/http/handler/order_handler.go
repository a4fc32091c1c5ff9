package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/backoffice/internal/adapter/http/dto"
	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

// OrderService defines the behavior needed by OrderHandler.
type OrderService interface {
	CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ConfirmOrder(ctx context.Context, id string) (*domain.Order, error)
	CancelOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Order, error)
}

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	orderUC OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderUC OrderService) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

// Create creates a draft order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid order")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondDomainError(w, err, "invalid order")
		return
	}

	order, err := h.orderUC.CreateOrder(r.Context(), input)
	if err != nil {
		respondDomainError(w, err, "failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// Get retrieves an order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	order, err := h.orderUC.GetOrder(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get order")
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// Confirm transitions a draft order to confirmed.
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderUC.ConfirmOrder, "failed to confirm order")
}

// Cancel transitions a draft order to cancelled.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orderUC.CancelOrder, "failed to cancel order")
}

func (h *OrderHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, string) (*domain.Order, error),
	message string,
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	order, err := fn(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, message)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// List lists a party's orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	firmID := r.URL.Query().Get("firm_id")
	partyID := r.URL.Query().Get("party_id")
	if firmID == "" || partyID == "" {
		writeError(w, http.StatusBadRequest, "missing firm_id or party_id", "")
		return
	}

	orders, err := h.orderUC.ListOrders(r.Context(), firmID, partyID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		respondDomainError(w, err, "failed to list orders")
		return
	}

	writeJSON(w, http.StatusOK, dto.OrdersFromDomain(orders))
}
