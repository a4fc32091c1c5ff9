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

// PartyService defines the behavior needed by PartyHandler.
type PartyService interface {
	CreateParty(ctx context.Context, input usecase.CreatePartyInput) (*domain.Party, error)
	GetParty(ctx context.Context, id string) (*domain.Party, error)
	UpdateParty(ctx context.Context, input usecase.UpdatePartyInput) (*domain.Party, error)
	DeleteParty(ctx context.Context, id string) error
	ListParties(ctx context.Context, input usecase.ListPartiesInput) ([]*domain.Party, error)
}

// PartyHandler handles party HTTP requests.
type PartyHandler struct {
	partyUC PartyService
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyUC PartyService) *PartyHandler {
	return &PartyHandler{partyUC: partyUC}
}

// Create creates a new party.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid party")
		return
	}

	party, err := h.partyUC.CreateParty(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondDomainError(w, err, "failed to create party")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PartyFromDomain(party))
}

// Get retrieves a party by ID.
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing party ID", "")
		return
	}

	party, err := h.partyUC.GetParty(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get party")
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyFromDomain(party))
}

// Update updates a party.
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing party ID", "")
		return
	}

	var req dto.UpdatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid party")
		return
	}

	party, err := h.partyUC.UpdateParty(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		respondDomainError(w, err, "failed to update party")
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyFromDomain(party))
}

// Delete removes a party.
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing party ID", "")
		return
	}

	if err := h.partyUC.DeleteParty(r.Context(), id); err != nil {
		respondDomainError(w, err, "failed to delete party")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists parties of a firm.
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	firmID := r.URL.Query().Get("firm_id")
	if firmID == "" {
		writeError(w, http.StatusBadRequest, "missing firm_id", "")
		return
	}

	parties, err := h.partyUC.ListParties(r.Context(), usecase.ListPartiesInput{
		FirmID: firmID,
		Type:   domain.PartyType(r.URL.Query().Get("type")),
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		respondDomainError(w, err, "failed to list parties")
		return
	}

	writeJSON(w, http.StatusOK, dto.PartiesFromDomain(parties))
}
