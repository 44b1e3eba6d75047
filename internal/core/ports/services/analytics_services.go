package services

import (
	"context"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/feed"
	"github.com/SscSPs/fincockpit/internal/core/risk"
)

// MetricsReaderSvc derives dashboard metrics from a snapshot
type MetricsReaderSvc interface {
	Dashboard(ctx context.Context, state domain.Snapshot) (domain.DashboardHealth, error)
	RiskMetrics(ctx context.Context, state domain.Snapshot) (risk.Metrics, error)
}

// SimulationSvc runs the loan, card and net-worth simulations
type SimulationSvc interface {
	// EstimatePayoffMonths returns the closed-form payoff estimate, or the non-convergent sentinel.
	EstimatePayoffMonths(ctx context.Context, balance, payment, annualRatePercent float64) (float64, error)
	ComparePayoff(ctx context.Context, balance, annualRatePercent, basePayment, extraPayment float64) (domain.PayoffComparison, error)
	RecommendCardPayments(ctx context.Context, state domain.Snapshot) (domain.CardPaymentPlan, error)

	// ProjectNetWorth projects 120 months ahead. Nil profiles select the default three.
	ProjectNetWorth(ctx context.Context, state domain.Snapshot, profiles []domain.ProjectionProfile) (domain.NetWorthProjection, error)
}

// PlanningSvc builds the composed planning views
type PlanningSvc interface {
	Cockpit(ctx context.Context, state domain.Snapshot) (domain.Cockpit, error)
	Feed(ctx context.Context, state domain.Snapshot, q feed.Query) ([]domain.FeedRow, error)
}

// AnalyticsSvcFacade combines all analytics service interfaces
type AnalyticsSvcFacade interface {
	MetricsReaderSvc
	SimulationSvc
	PlanningSvc
}
