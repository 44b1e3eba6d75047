package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
	"github.com/SscSPs/fincockpit/internal/core/risk"
	"github.com/SscSPs/fincockpit/internal/worker"
)

// findingsService implements the FindingsSvcFacade interface
type findingsService struct {
	BaseService
	dispatcher portssvc.FindingsDispatcher
}

// NewFindingsService creates a findings service. Without a dispatcher asynchronous
// evaluation falls back to running inline.
func NewFindingsService(dispatcher portssvc.FindingsDispatcher, options ...ServiceOption) portssvc.FindingsSvcFacade {
	return &findingsService{
		BaseService: newBaseService(options...),
		dispatcher:  dispatcher,
	}
}

var _ portssvc.FindingsSvcFacade = (*findingsService)(nil)

func (s *findingsService) EvaluateFindings(ctx context.Context, state domain.Snapshot) ([]domain.RiskFinding, error) {
	state, err := s.prepare(ctx, state, "Evaluate findings")
	if err != nil {
		return nil, err
	}
	findings := risk.EvaluateRiskFindings(state, s.Now())
	if findings == nil {
		findings = []domain.RiskFinding{}
	}
	s.LogDebug(ctx, "Findings evaluated", slog.Int("count", len(findings)))
	return findings, nil
}

func (s *findingsService) EvaluateFindingsAsync(ctx context.Context, payload map[string]any) (worker.Response, error) {
	msg := worker.Message{CurrentCollectionsState: payload}
	if s.dispatcher == nil {
		return worker.HandleMessage(msg, s.Now()), nil
	}

	resp, err := s.dispatcher.Evaluate(ctx, msg)
	if err != nil {
		s.LogError(ctx, err, "Findings worker did not respond")
		return worker.Response{}, fmt.Errorf("findings worker: %w", err)
	}
	if resp.Findings == nil && resp.Error == nil {
		err := apperrors.NewUnexpectedEmpty("Findings evaluation")
		s.LogError(ctx, err, "Findings worker returned an empty response",
			slog.String("correlation_id", resp.CorrelationID))
		return worker.Response{}, err
	}
	if resp.Error != nil {
		s.LogFailure(ctx, resp.Error, "Evaluate findings async", slog.String("correlation_id", resp.CorrelationID))
	}
	return resp, nil
}
