package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/backoffice/internal/adapter/http/dto"
	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	ComputeStatement(ctx context.Context, req usecase.StatementRequest) (*domain.Statement, error)
}

// StatementHandler serves party account statements.
type StatementHandler struct {
	statementUC StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC}
}

// Get computes the statement for a party. The date range comes from the
// "from" and "to" query parameters; both are optional and default to the
// party's full history ending today.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	partyID := chi.URLParam(r, "id")
	firmID := r.URL.Query().Get("firm_id")
	if partyID == "" || firmID == "" {
		writeError(w, http.StatusBadRequest, "missing party or firm ID", "")
		return
	}

	req := usecase.StatementRequest{
		FirmID:  firmID,
		PartyID: partyID,
	}

	if from := r.URL.Query().Get("from"); from != "" {
		date, err := domain.ParseDate(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date", "expected YYYY-MM-DD")
			return
		}
		req.DateFrom = &date
	}
	if to := r.URL.Query().Get("to"); to != "" {
		date, err := domain.ParseDate(to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date", "expected YYYY-MM-DD")
			return
		}
		req.DateTo = &date
	}

	statement, err := h.statementUC.ComputeStatement(r.Context(), req)
	if err != nil {
		respondDomainError(w, err, "failed to compute statement")
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement))
}
