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

// BillService defines the behavior needed by BillHandler.
type BillService interface {
	CreateBill(ctx context.Context, input usecase.CreateBillInput) (*domain.Bill, error)
	GetBill(ctx context.Context, id string) (*domain.Bill, error)
	DeleteBill(ctx context.Context, id string) error
	ListBills(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Bill, error)
}

// BillHandler handles bill HTTP requests.
type BillHandler struct {
	billUC BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billUC BillService) *BillHandler {
	return &BillHandler{billUC: billUC}
}

// Create creates a new bill.
func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid bill")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondDomainError(w, err, "invalid bill")
		return
	}

	bill, err := h.billUC.CreateBill(r.Context(), input)
	if err != nil {
		respondDomainError(w, err, "failed to create bill")
		return
	}

	writeJSON(w, http.StatusCreated, dto.BillFromDomain(bill))
}

// Get retrieves a bill by ID.
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bill ID", "")
		return
	}

	bill, err := h.billUC.GetBill(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get bill")
		return
	}

	writeJSON(w, http.StatusOK, dto.BillFromDomain(bill))
}

// Delete removes a bill.
func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bill ID", "")
		return
	}

	if err := h.billUC.DeleteBill(r.Context(), id); err != nil {
		respondDomainError(w, err, "failed to delete bill")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists a party's bills.
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	firmID := r.URL.Query().Get("firm_id")
	partyID := r.URL.Query().Get("party_id")
	if firmID == "" || partyID == "" {
		writeError(w, http.StatusBadRequest, "missing firm_id or party_id", "")
		return
	}

	bills, err := h.billUC.ListBills(r.Context(), firmID, partyID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		respondDomainError(w, err, "failed to list bills")
		return
	}

	writeJSON(w, http.StatusOK, dto.BillsFromDomain(bills))
}
