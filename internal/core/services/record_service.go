package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/fincockpit/internal/core/collections"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
	"github.com/SscSPs/fincockpit/internal/core/validation"
)

// recordService implements the RecordSvcFacade interface
type recordService struct {
	BaseService
}

// NewRecordService creates a new record service with the provided options
func NewRecordService(options ...ServiceOption) portssvc.RecordSvcFacade {
	return &recordService{BaseService: newBaseService(options...)}
}

// Ensure recordService implements the RecordSvcFacade interface
var _ portssvc.RecordSvcFacade = (*recordService)(nil)

func (s *recordService) DefaultSnapshot(ctx context.Context) domain.Snapshot {
	return domain.DefaultSnapshot()
}

func (s *recordService) DecodeSnapshot(ctx context.Context, payload map[string]any) (domain.Snapshot, error) {
	state, err := validation.DecodeSnapshot(payload)
	if err != nil {
		s.LogFailure(ctx, err, "Decode snapshot")
		return domain.Snapshot{}, err
	}
	return state, nil
}

func (s *recordService) FindRecord(ctx context.Context, state domain.Snapshot, collection, id string) (domain.Record, error) {
	rec, err := collections.FindRecord(state.Canonical(), collection, id)
	if err != nil {
		s.LogFailure(ctx, err, "Find record", slog.String("collection", collection), slog.String("id", id))
		return domain.Record{}, err
	}
	return rec, nil
}

func (s *recordService) AppendEntry(ctx context.Context, state domain.Snapshot, entryType string, raw map[string]any) (domain.Snapshot, error) {
	state, err := s.prepare(ctx, state, "Append entry")
	if err != nil {
		return domain.Snapshot{}, err
	}
	next, err := collections.AppendIncomeOrExpense(state, entryType, raw, s.Now())
	if err != nil {
		s.LogFailure(ctx, err, "Append entry", slog.String("entry_type", entryType))
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Entry appended", slog.String("entry_type", entryType))
	return next, nil
}

func (s *recordService) AppendGoal(ctx context.Context, state domain.Snapshot, raw map[string]any) (domain.Snapshot, error) {
	state, err := s.prepare(ctx, state, "Append goal")
	if err != nil {
		return domain.Snapshot{}, err
	}
	next, err := collections.AppendGoal(state, raw, s.Now())
	if err != nil {
		s.LogFailure(ctx, err, "Append goal")
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Goal appended", slog.Int("goals", len(next.Goals)))
	return next, nil
}

func (s *recordService) AppendRecord(ctx context.Context, state domain.Snapshot, collection string, raw map[string]any) (domain.Snapshot, error) {
	state, err := s.prepare(ctx, state, "Append record")
	if err != nil {
		return domain.Snapshot{}, err
	}
	next, err := collections.AppendRecord(state, collection, raw, s.Now())
	if err != nil {
		s.LogFailure(ctx, err, "Append record", slog.String("collection", collection))
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Record appended", slog.String("collection", collection))
	return next, nil
}

func (s *recordService) UpdateRecord(ctx context.Context, state domain.Snapshot, collection, id string, patch map[string]any) (domain.Snapshot, error) {
	state, err := s.prepare(ctx, state, "Update record")
	if err != nil {
		return domain.Snapshot{}, err
	}
	next, err := collections.UpdateRecordByCollectionAndId(state, collection, id, patch, s.Now())
	if err != nil {
		s.LogFailure(ctx, err, "Update record", slog.String("collection", collection), slog.String("id", id))
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Record updated", slog.String("collection", collection), slog.String("id", id))
	return next, nil
}

func (s *recordService) DeleteRecord(ctx context.Context, state domain.Snapshot, collection, id string) (domain.Snapshot, error) {
	state, err := s.prepare(ctx, state, "Delete record")
	if err != nil {
		return domain.Snapshot{}, err
	}
	next, err := collections.DeleteRecordByCollectionAndId(state, collection, id)
	if err != nil {
		s.LogFailure(ctx, err, "Delete record", slog.String("collection", collection), slog.String("id", id))
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Record deleted", slog.String("collection", collection), slog.String("id", id))
	return next, nil
}

func (s *recordService) SeedRecurring(ctx context.Context, state domain.Snapshot) (domain.Snapshot, error) {
	state, err := s.prepare(ctx, state, "Seed recurring rows")
	if err != nil {
		return domain.Snapshot{}, err
	}
	seeds := collections.BuildRecurringSeedRows(state)
	next, err := collections.UpsertRecurringSeedRows(state, seeds, s.Now())
	if err != nil {
		s.LogFailure(ctx, err, "Seed recurring rows")
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Recurring rows seeded",
		slog.Int("seeds", len(seeds)),
		slog.Int("expenses", len(next.Expenses)))
	return next, nil
}

func (s *recordService) MergeImportedState(ctx context.Context, current, imported domain.Snapshot) (domain.Snapshot, error) {
	current, err := s.prepare(ctx, current, "Merge imported state")
	if err != nil {
		return domain.Snapshot{}, err
	}
	imported, err = s.prepare(ctx, imported, "Merge imported state")
	if err != nil {
		return domain.Snapshot{}, err
	}
	merged := collections.MergeImportedState(current, imported)
	s.LogInfo(ctx, "Imported state merged")
	return merged, nil
}

func (s *recordService) MergeAuditTimeline(ctx context.Context, current, incoming []domain.AuditEntry) ([]domain.AuditEntry, error) {
	merged := collections.MergeAuditTimeline(current, incoming)
	s.LogDebug(ctx, "Audit timeline merged", slog.Int("entries", len(merged)))
	return merged, nil
}
