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

// MovementService defines the behavior needed by MovementHandler.
type MovementService interface {
	CreateMovement(ctx context.Context, input usecase.CreateMovementInput) (*domain.Movement, error)
	GetMovement(ctx context.Context, id string) (*domain.Movement, error)
	UpdateMovement(ctx context.Context, input usecase.UpdateMovementInput) (*domain.Movement, error)
	ApproveMovement(ctx context.Context, id string) (*domain.Movement, error)
	RejectMovement(ctx context.Context, id string) (*domain.Movement, error)
	ListMovements(ctx context.Context, filter usecase.MovementFilter) ([]*domain.Movement, error)
}

// MovementHandler handles movement HTTP requests.
type MovementHandler struct {
	movementUC MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC MovementService) *MovementHandler {
	return &MovementHandler{movementUC: movementUC}
}

// Create records a new movement in pending status.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid movement")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		respondDomainError(w, err, "invalid movement")
		return
	}

	movement, err := h.movementUC.CreateMovement(r.Context(), input)
	if err != nil {
		respondDomainError(w, err, "failed to create movement")
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// Get retrieves a movement by ID.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	movement, err := h.movementUC.GetMovement(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get movement")
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Update edits a pending movement.
func (h *MovementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	var req dto.UpdateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		respondDomainError(w, err, "invalid movement")
		return
	}

	input, err := req.ToUseCaseInput(id)
	if err != nil {
		respondDomainError(w, err, "invalid movement")
		return
	}

	movement, err := h.movementUC.UpdateMovement(r.Context(), input)
	if err != nil {
		respondDomainError(w, err, "failed to update movement")
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Approve transitions a pending movement to approved.
func (h *MovementHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.movementUC.ApproveMovement, "failed to approve movement")
}

// Reject transitions a pending movement to rejected.
func (h *MovementHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.movementUC.RejectMovement, "failed to reject movement")
}

func (h *MovementHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, string) (*domain.Movement, error),
	message string,
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing movement ID", "")
		return
	}

	movement, err := fn(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, message)
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// List lists movements matching query filters.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.MovementFilter{
		FirmID:  r.URL.Query().Get("firm_id"),
		PartyID: r.URL.Query().Get("party_id"),
		Kind:    domain.MovementKind(r.URL.Query().Get("kind")),
		Status:  domain.MovementStatus(r.URL.Query().Get("status")),
		Limit:   parseIntQuery(r, "limit", 50),
		Offset:  parseIntQuery(r, "offset", 0),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		date, err := domain.ParseDate(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date", "expected YYYY-MM-DD")
			return
		}
		filter.DateFrom = &date
	}
	if to := r.URL.Query().Get("to"); to != "" {
		date, err := domain.ParseDate(to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date", "expected YYYY-MM-DD")
			return
		}
		filter.DateTo = &date
	}

	movements, err := h.movementUC.ListMovements(r.Context(), filter)
	if err != nil {
		respondDomainError(w, err, "failed to list movements")
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementsFromDomain(movements))
}
