package services

import (
	"context"

	"github.com/SscSPs/fincockpit/internal/core/domain"
)

// SnapshotReaderSvc defines read operations over a snapshot
type SnapshotReaderSvc interface {
	// DefaultSnapshot returns a snapshot with every collection present and empty.
	DefaultSnapshot(ctx context.Context) domain.Snapshot

	// DecodeSnapshot turns a loosely-typed payload into a validated snapshot.
	DecodeSnapshot(ctx context.Context, payload map[string]any) (domain.Snapshot, error)

	// FindRecord looks a record up by exact id.
	FindRecord(ctx context.Context, state domain.Snapshot, collection, id string) (domain.Record, error)
}

// RecordWriterSvc defines the state transitions over named collections.
// Every write returns a new snapshot; the input is never modified.
type RecordWriterSvc interface {
	// AppendEntry routes an income, savings or expense entry to its collection.
	AppendEntry(ctx context.Context, state domain.Snapshot, entryType string, raw map[string]any) (domain.Snapshot, error)
	AppendGoal(ctx context.Context, state domain.Snapshot, raw map[string]any) (domain.Snapshot, error)
	AppendRecord(ctx context.Context, state domain.Snapshot, collection string, raw map[string]any) (domain.Snapshot, error)
	UpdateRecord(ctx context.Context, state domain.Snapshot, collection, id string, patch map[string]any) (domain.Snapshot, error)
	DeleteRecord(ctx context.Context, state domain.Snapshot, collection, id string) (domain.Snapshot, error)

	// SeedRecurring upserts one debt-payment expense per liability with a scheduled payment.
	SeedRecurring(ctx context.Context, state domain.Snapshot) (domain.Snapshot, error)

	MergeImportedState(ctx context.Context, current, imported domain.Snapshot) (domain.Snapshot, error)
	MergeAuditTimeline(ctx context.Context, current, incoming []domain.AuditEntry) ([]domain.AuditEntry, error)
}

// AuditRecorderSvc stamps timeline entries for successful writes.
type AuditRecorderSvc interface {
	// RecordAudit builds an audit entry timestamped with the service clock.
	RecordAudit(ctx context.Context, contextTag, message, collection, recordID string) domain.AuditEntry
}

// RecordSvcFacade combines all record-related service interfaces
type RecordSvcFacade interface {
	SnapshotReaderSvc
	RecordWriterSvc
	AuditRecorderSvc
}
