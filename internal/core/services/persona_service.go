package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/fincockpit/internal/core/collections"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
)

type personaService struct {
	BaseService
}

// NewPersonaService creates a new persona service with the provided options
func NewPersonaService(options ...ServiceOption) portssvc.PersonaSvcFacade {
	return &personaService{BaseService: newBaseService(options...)}
}

var _ portssvc.PersonaSvcFacade = (*personaService)(nil)

func (s *personaService) SummarizePersonaImpact(ctx context.Context, state domain.Snapshot, name string) (domain.PersonaImpact, error) {
	state, err := s.prepare(ctx, state, "Summarize persona impact")
	if err != nil {
		return domain.PersonaImpact{}, err
	}
	impact, err := collections.SummarizePersonaImpact(state, name)
	if err != nil {
		s.LogFailure(ctx, err, "Summarize persona impact", slog.String("persona", name))
		return domain.PersonaImpact{}, err
	}
	return impact, nil
}

func (s *personaService) RenamePersona(ctx context.Context, state domain.Snapshot, from, to string, patch collections.PersonaPatch) (domain.Snapshot, error) {
	state, err := s.prepare(ctx, state, "Rename persona")
	if err != nil {
		return domain.Snapshot{}, err
	}
	next, err := collections.RenamePersona(state, from, to, patch, s.Now())
	if err != nil {
		s.LogFailure(ctx, err, "Rename persona", slog.String("from", from), slog.String("to", to))
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Persona renamed", slog.String("from", from), slog.String("to", to))
	return next, nil
}

func (s *personaService) DeletePersona(ctx context.Context, state domain.Snapshot, name string, mode collections.PersonaDeleteMode, fallback string) (domain.Snapshot, error) {
	state, err := s.prepare(ctx, state, "Delete persona")
	if err != nil {
		return domain.Snapshot{}, err
	}
	next, err := collections.DeletePersona(state, name, mode, fallback, s.Now())
	if err != nil {
		s.LogFailure(ctx, err, "Delete persona", slog.String("persona", name), slog.String("mode", string(mode)))
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Persona deleted", slog.String("persona", name), slog.String("mode", string(mode)))
	return next, nil
}
