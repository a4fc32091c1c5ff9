package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/infrastructure/metrics"
)

// StatementUseCase reconstructs a party's account statement for a date
// range: opening balance, ordered ledger rows with running balances, and
// summary totals. Every request recomputes from scratch; nothing is cached.
type StatementUseCase struct {
	partyRepo    PartyRepository
	movementRepo MovementRepository
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// NewStatementUseCase creates a new StatementUseCase. Metrics may be nil.
func NewStatementUseCase(
	partyRepo PartyRepository,
	movementRepo MovementRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *StatementUseCase {
	return &StatementUseCase{
		partyRepo:    partyRepo,
		movementRepo: movementRepo,
		logger:       logger,
		metrics:      m,
	}
}

// StatementRequest identifies what to compute a statement for. Nil dates
// request the default range: earliest movement date through today, or
// today through today for a party with no history.
type StatementRequest struct {
	FirmID   string
	PartyID  string
	DateFrom *time.Time
	DateTo   *time.Time
}

// ComputeStatement runs the full pipeline: validation, opening-balance
// resolution, movement selection, accumulation, aggregation. The request is
// all-or-nothing; no partial statement is ever returned.
func (uc *StatementUseCase) ComputeStatement(ctx context.Context, req StatementRequest) (*domain.Statement, error) {
	if req.FirmID == "" || req.PartyID == "" {
		return nil, fmt.Errorf("%w: firm_id and party_id are required", domain.ErrValidation)
	}

	// Explicit dates are validated before any I/O happens.
	if req.DateFrom != nil && req.DateTo != nil {
		if err := domain.ValidateDateRange(*req.DateFrom, *req.DateTo); err != nil {
			return nil, err
		}
	}

	party, err := uc.partyRepo.GetByID(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}
	if party.FirmID != req.FirmID {
		return nil, domain.ErrPartyNotFound
	}

	dateFrom, dateTo, err := uc.resolveDateRange(ctx, req)
	if err != nil {
		return nil, err
	}

	opening, anchorDate, err := uc.resolveOpeningBalance(ctx, party, dateFrom)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	movements, err := uc.movementRepo.ListApproved(ctx, req.FirmID, req.PartyID, dateFrom, dateTo)
	if err != nil {
		uc.countFailure("store")
		return nil, fmt.Errorf("%w: listing movements: %v", domain.ErrDataAccess, err)
	}

	entries, err := domain.AccumulateEntries(opening, anchorDate, movements)
	if err != nil {
		uc.countFailure("unclassified_kind")
		return nil, err
	}

	summary, err := domain.AggregateStatement(entries, dateFrom, dateTo)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.InvariantViolations.Inc()
		}
		uc.logger.Error().
			Err(err).
			Str("firm_id", req.FirmID).
			Str("party_id", req.PartyID).
			Str("date_from", dateFrom.Format(domain.DateFormat)).
			Str("date_to", dateTo.Format(domain.DateFormat)).
			Str("opening", opening.String()).
			Int("movements", len(movements)).
			Msg("statement invariant violated")
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.StatementsComputed.Inc()
		uc.metrics.StatementDuration.Observe(time.Since(start).Seconds())
		uc.metrics.StatementEntries.Observe(float64(len(entries)))
	}

	return &domain.Statement{Entries: entries, Summary: *summary}, nil
}

func (uc *StatementUseCase) countFailure(reason string) {
	if uc.metrics != nil {
		uc.metrics.StatementFailures.WithLabelValues(reason).Inc()
	}
}

// resolveDateRange fills missing request dates with the default range and
// validates the result.
func (uc *StatementUseCase) resolveDateRange(ctx context.Context, req StatementRequest) (time.Time, time.Time, error) {
	var dateFrom, dateTo time.Time

	if req.DateFrom != nil {
		dateFrom = domain.DateOnly(*req.DateFrom)
	}
	if req.DateTo != nil {
		dateTo = domain.DateOnly(*req.DateTo)
	}

	if dateTo.IsZero() {
		dateTo = domain.Today()
	}

	if dateFrom.IsZero() {
		earliest, err := uc.movementRepo.FindEarliestDate(ctx, req.FirmID, req.PartyID)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: finding earliest movement: %v", domain.ErrDataAccess, err)
		}
		if earliest != nil {
			dateFrom = domain.DateOnly(*earliest)
		} else {
			dateFrom = domain.Today()
		}
	}

	if err := domain.ValidateDateRange(dateFrom, dateTo); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return dateFrom, dateTo, nil
}

// resolveOpeningBalance merges the two opening-balance sources: the
// earliest approved opening_balance movement wins (its own date and amount
// anchor the statement), else the stored party field anchored at dateFrom.
// A party with no history opens at zero.
func (uc *StatementUseCase) resolveOpeningBalance(ctx context.Context, party *domain.Party, dateFrom time.Time) (decimal.Decimal, time.Time, error) {
	openingMovement, err := uc.movementRepo.FindEarliestOpening(ctx, party.FirmID, party.ID)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("%w: finding opening movement: %v", domain.ErrDataAccess, err)
	}

	if openingMovement != nil {
		return openingMovement.Amount, domain.DateOnly(openingMovement.Date), nil
	}

	return party.OpeningBalance, dateFrom, nil
}
