package services

import (
	"context"

	"github.com/SscSPs/fincockpit/internal/core/collections"
	"github.com/SscSPs/fincockpit/internal/core/domain"
)

// PersonaSvcFacade manages the people records are attributed to.
type PersonaSvcFacade interface {
	// SummarizePersonaImpact counts the records attributed to a persona, per collection.
	SummarizePersonaImpact(ctx context.Context, state domain.Snapshot, name string) (domain.PersonaImpact, error)

	RenamePersona(ctx context.Context, state domain.Snapshot, from, to string, patch collections.PersonaPatch) (domain.Snapshot, error)

	// DeletePersona removes a persona, reassigning or cascading its records.
	DeletePersona(ctx context.Context, state domain.Snapshot, name string, mode collections.PersonaDeleteMode, fallback string) (domain.Snapshot, error)

	AuditRecorderSvc
}
