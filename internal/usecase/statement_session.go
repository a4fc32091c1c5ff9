package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/infrastructure/metrics"
)

// SessionState is the lifecycle state of a statement session.
type SessionState string

const (
	SessionIdle    SessionState = "idle"
	SessionLoading SessionState = "loading"
	SessionReady   SessionState = "ready"
	SessionFailed  SessionState = "failed"
)

// StatementComputer computes one statement. Implemented by
// StatementUseCase, and by HTTP clients on the caller side.
type StatementComputer interface {
	ComputeStatement(ctx context.Context, req StatementRequest) (*domain.Statement, error)
}

// StatementSession owns the inputs of one interactive statement view and
// keeps the presented result consistent while the caller edits the date
// range. Each Load is tagged with a monotonically increasing sequence
// number; a result arriving for anything but the latest sequence is
// discarded, so a slow stale response can never overwrite a newer one.
// In-flight computations are cancelled cooperatively when superseded.
type StatementSession struct {
	computer StatementComputer
	logger   zerolog.Logger
	metrics  *metrics.Metrics

	mu        sync.Mutex
	state     SessionState
	seq       uint64
	cancel    context.CancelFunc
	statement *domain.Statement
	lastReady *domain.Statement
	err       error
}

// NewStatementSession creates a session in the Idle state. Metrics may be
// nil.
func NewStatementSession(computer StatementComputer, logger zerolog.Logger, m *metrics.Metrics) *StatementSession {
	return &StatementSession{
		computer: computer,
		logger:   logger,
		metrics:  m,
		state:    SessionIdle,
	}
}

// Load enters Loading and computes the statement for req asynchronously.
// Any in-flight computation is cancelled and its eventual result, success
// or failure, is discarded. The returned channel closes once this request
// has settled: published, or discarded as stale.
func (s *StatementSession) Load(ctx context.Context, req StatementRequest) <-chan struct{} {
	s.mu.Lock()
	s.seq++
	seq := s.seq

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.state = SessionLoading
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		statement, err := s.computer.ComputeStatement(ctx, req)
		s.publish(seq, statement, err)
	}()

	return done
}

// publish records a completed computation unless a newer Load has been
// issued since, in which case the result is dropped.
func (s *StatementSession) publish(seq uint64, statement *domain.Statement, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		if s.metrics != nil {
			s.metrics.StatementStaleDrops.Inc()
		}
		s.logger.Debug().
			Uint64("seq", seq).
			Uint64("latest", s.seq).
			Msg("discarding stale statement result")
		return
	}

	s.cancel = nil

	if err != nil {
		s.state = SessionFailed
		s.err = err
		s.statement = nil
		return
	}

	s.state = SessionReady
	s.err = nil
	s.statement = statement
	s.lastReady = statement
}

// Snapshot returns the current state, the presented statement (nil unless
// Ready), and the failure error (nil unless Failed).
func (s *StatementSession) Snapshot() (SessionState, *domain.Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.statement, s.err
}

// LastReady returns the most recent successfully computed statement, kept
// across failures for display fallback. It is never presented as fresh.
func (s *StatementSession) LastReady() *domain.Statement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReady
}

// Close cancels any in-flight computation.
func (s *StatementSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
