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

// ChequeService defines the behavior needed by ChequeHandler.
type ChequeService interface {
	CreateCheque(ctx context.Context, input usecase.CreateChequeInput) (*domain.Cheque, error)
	GetCheque(ctx context.Context, id string) (*domain.Cheque, error)
	DepositCheque(ctx context.Context, id string) (*domain.Cheque, error)
	ClearCheque(ctx context.Context, id string) (*domain.Cheque, error)
	BounceCheque(ctx context.Context, id string) (*domain.Cheque, error)
	ListCheques(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Cheque, error)
}

// ChequeHandler handles cheque HTTP requests.
type ChequeHandler struct {
	chequeUC ChequeService
}

// NewChequeHandler creates a new ChequeHandler.
func NewChequeHandler(chequeUC ChequeService) *ChequeHandler {
	return &ChequeHandler{chequeUC: chequeUC}
}

// Create records a received cheque.
func (h *ChequeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateChequeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid cheque")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondDomainError(w, err, "invalid cheque")
		return
	}

	cheque, err := h.chequeUC.CreateCheque(r.Context(), input)
	if err != nil {
		respondDomainError(w, err, "failed to create cheque")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ChequeFromDomain(cheque))
}

// Get retrieves a cheque by ID.
func (h *ChequeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing cheque ID", "")
		return
	}

	cheque, err := h.chequeUC.GetCheque(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get cheque")
		return
	}

	writeJSON(w, http.StatusOK, dto.ChequeFromDomain(cheque))
}

// Deposit marks an in-hand cheque as deposited.
func (h *ChequeHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.chequeUC.DepositCheque, "failed to deposit cheque")
}

// Clear marks a deposited cheque as cleared, recording its collection
// movement.
func (h *ChequeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.chequeUC.ClearCheque, "failed to clear cheque")
}

// Bounce marks a deposited cheque as bounced.
func (h *ChequeHandler) Bounce(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.chequeUC.BounceCheque, "failed to bounce cheque")
}

func (h *ChequeHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, string) (*domain.Cheque, error),
	message string,
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing cheque ID", "")
		return
	}

	cheque, err := fn(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, message)
		return
	}

	writeJSON(w, http.StatusOK, dto.ChequeFromDomain(cheque))
}

// List lists a party's cheques.
func (h *ChequeHandler) List(w http.ResponseWriter, r *http.Request) {
	firmID := r.URL.Query().Get("firm_id")
	partyID := r.URL.Query().Get("party_id")
	if firmID == "" || partyID == "" {
		writeError(w, http.StatusBadRequest, "missing firm_id or party_id", "")
		return
	}

	cheques, err := h.chequeUC.ListCheques(r.Context(), firmID, partyID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		respondDomainError(w, err, "failed to list cheques")
		return
	}

	writeJSON(w, http.StatusOK, dto.ChequesFromDomain(cheques))
}
