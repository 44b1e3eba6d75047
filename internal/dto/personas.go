package dto

import (
	"github.com/SscSPs/fincockpit/internal/core/collections"
	"github.com/SscSPs/fincockpit/internal/core/domain"
)

type PersonaImpactRequest struct {
	State domain.Snapshot `json:"state"`
	Name  string          `json:"name" binding:"required"`
}

// RenamePersonaRequest renames a persona; Note and Emoji are only changed when present.
type RenamePersonaRequest struct {
	State domain.Snapshot `json:"state"`
	From  string          `json:"from" binding:"required"`
	To    string          `json:"to" binding:"required"`
	Note  *string         `json:"note"`
	Emoji *string         `json:"emoji"`
}

// Patch returns the optional persona attributes of the request.
func (r RenamePersonaRequest) Patch() collections.PersonaPatch {
	return collections.PersonaPatch{Note: r.Note, Emoji: r.Emoji}
}

// DeletePersonaRequest deletes a persona. Mode is reassign (the default) or cascade.
type DeletePersonaRequest struct {
	State    domain.Snapshot `json:"state"`
	Name     string          `json:"name" binding:"required"`
	Mode     string          `json:"mode"`
	Fallback string          `json:"fallback"`
}

// DeleteMode returns the requested mode, defaulting to reassign.
func (r DeletePersonaRequest) DeleteMode() collections.PersonaDeleteMode {
	if r.Mode == "" {
		return collections.PersonaReassign
	}
	return collections.PersonaDeleteMode(r.Mode)
}
