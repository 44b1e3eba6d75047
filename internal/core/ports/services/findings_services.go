package services

import (
	"context"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/worker"
)

// FindingsDispatcher hands a message to the background findings worker and waits for
// its response.
type FindingsDispatcher interface {
	Evaluate(ctx context.Context, msg worker.Message) (worker.Response, error)
}

// FindingsSvcFacade evaluates the risk findings of a snapshot.
type FindingsSvcFacade interface {
	// EvaluateFindings runs the rules inline.
	EvaluateFindings(ctx context.Context, state domain.Snapshot) ([]domain.RiskFinding, error)

	// EvaluateFindingsAsync runs the rules on the findings worker. Validation failures of
	// the payload come back inside the response, not as the returned error.
	EvaluateFindingsAsync(ctx context.Context, payload map[string]any) (worker.Response, error)
}
