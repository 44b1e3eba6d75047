package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/collections"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/validation"
	"github.com/SscSPs/fincockpit/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock func() time.Time
}

// ServiceOption is a functional option shared by the engine services
type ServiceOption func(*BaseService)

// WithClock sets the clock used for ids, updatedAt stamps and as-of dates
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = now
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{Clock: time.Now}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current time in UTC
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// LogFailure logs a failed operation. Validation failures come from user input and are
// logged at debug level; anything else is an error.
func (s *BaseService) LogFailure(ctx context.Context, err error, operation string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrValidation) {
		args := make([]any, 0, len(keyvals)+1)
		args = append(args, slog.String("error", err.Error()))
		args = append(args, keyvals...)
		s.LogDebug(ctx, operation+" rejected", args...)
		return
	}
	s.LogError(ctx, err, operation+" failed", keyvals...)
}

// prepare canonicalizes a snapshot received from outside and checks its invariants.
func (s *BaseService) prepare(ctx context.Context, state domain.Snapshot, operation string) (domain.Snapshot, error) {
	state = state.Canonical()
	if err := validation.ValidateSnapshot(state); err != nil {
		s.LogFailure(ctx, err, operation)
		return domain.Snapshot{}, err
	}
	return state, nil
}

// RecordAudit builds a timeline entry for a write, stamped with the service clock
func (s *BaseService) RecordAudit(ctx context.Context, contextTag, message, collection, recordID string) domain.AuditEntry {
	entry := collections.NewAuditEntry(contextTag, message, collection, recordID, s.Now())
	s.LogDebug(ctx, "Audit entry recorded",
		slog.String("context_tag", contextTag),
		slog.String("collection", collection),
		slog.String("record_id", recordID))
	return entry
}
