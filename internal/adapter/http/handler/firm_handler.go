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

// FirmService defines the behavior needed by FirmHandler.
type FirmService interface {
	CreateFirm(ctx context.Context, input usecase.CreateFirmInput) (*domain.Firm, error)
	GetFirm(ctx context.Context, id string) (*domain.Firm, error)
	UpdateFirm(ctx context.Context, input usecase.UpdateFirmInput) (*domain.Firm, error)
	ListFirms(ctx context.Context, limit, offset int) ([]*domain.Firm, error)
}

// FirmHandler handles firm HTTP requests.
type FirmHandler struct {
	firmUC FirmService
}

// NewFirmHandler creates a new FirmHandler.
func NewFirmHandler(firmUC FirmService) *FirmHandler {
	return &FirmHandler{firmUC: firmUC}
}

// Create creates a new firm.
func (h *FirmHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid firm")
		return
	}

	firm, err := h.firmUC.CreateFirm(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondDomainError(w, err, "failed to create firm")
		return
	}

	writeJSON(w, http.StatusCreated, dto.FirmFromDomain(firm))
}

// Get retrieves a firm by ID.
func (h *FirmHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing firm ID", "")
		return
	}

	firm, err := h.firmUC.GetFirm(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get firm")
		return
	}

	writeJSON(w, http.StatusOK, dto.FirmFromDomain(firm))
}

// Update updates a firm.
func (h *FirmHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing firm ID", "")
		return
	}

	var req dto.UpdateFirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid firm")
		return
	}

	firm, err := h.firmUC.UpdateFirm(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		respondDomainError(w, err, "failed to update firm")
		return
	}

	writeJSON(w, http.StatusOK, dto.FirmFromDomain(firm))
}

// List lists firms.
func (h *FirmHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	firms, err := h.firmUC.ListFirms(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, err, "failed to list firms")
		return
	}

	writeJSON(w, http.StatusOK, dto.FirmsFromDomain(firms))
}
