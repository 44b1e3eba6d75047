package dto

import (
	"github.com/SscSPs/fincockpit/internal/core/domain"
)

// StateRequest carries only the current snapshot.
type StateRequest struct {
	State domain.Snapshot `json:"state"`
}

// StateResponse returns the snapshot produced by a write, with the audit entry
// describing it. Reads leave AuditEntry out.
type StateResponse struct {
	State      domain.Snapshot    `json:"state"`
	AuditEntry *domain.AuditEntry `json:"auditEntry,omitempty"`
}

// FindRecordRequest looks a record up by exact id.
type FindRecordRequest struct {
	State      domain.Snapshot `json:"state"`
	Collection string          `json:"collection" binding:"required"`
	ID         string          `json:"id" binding:"required"`
}

type RecordResponse struct {
	Record domain.Record `json:"record"`
}

// AppendRecordRequest appends one record. With Collection empty the record is routed by
// EntryType (income, savings or any expense type); otherwise it goes to Collection.
type AppendRecordRequest struct {
	State      domain.Snapshot `json:"state"`
	Collection string          `json:"collection"`
	EntryType  string          `json:"entryType"`
	Record     map[string]any  `json:"record" binding:"required"`
}

// AppendGoalRequest appends one goal.
type AppendGoalRequest struct {
	State domain.Snapshot `json:"state"`
	Goal  map[string]any  `json:"goal" binding:"required"`
}

// UpdateRecordRequest merges Patch over the record with the given id.
type UpdateRecordRequest struct {
	State      domain.Snapshot `json:"state"`
	Collection string          `json:"collection" binding:"required"`
	ID         string          `json:"id" binding:"required"`
	Patch      map[string]any  `json:"patch" binding:"required"`
}

// DeleteRecordRequest removes the record with the given id.
type DeleteRecordRequest struct {
	State      domain.Snapshot `json:"state"`
	Collection string          `json:"collection" binding:"required"`
	ID         string          `json:"id" binding:"required"`
}

// MergeStateRequest merges an imported snapshot, and optionally an audit timeline, into
// the current one.
type MergeStateRequest struct {
	Current       domain.Snapshot     `json:"current"`
	Imported      domain.Snapshot     `json:"imported"`
	CurrentAudit  []domain.AuditEntry `json:"currentAudit"`
	IncomingAudit []domain.AuditEntry `json:"incomingAudit"`
}

type MergeStateResponse struct {
	State         domain.Snapshot     `json:"state"`
	AuditTimeline []domain.AuditEntry `json:"auditTimeline"`
}
