package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/cockpit"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/feed"
	"github.com/SscSPs/fincockpit/internal/core/loans"
	"github.com/SscSPs/fincockpit/internal/core/metrics"
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
	"github.com/SscSPs/fincockpit/internal/core/projection"
	"github.com/SscSPs/fincockpit/internal/core/risk"
	"github.com/SscSPs/fincockpit/internal/core/validation"
)

// analyticsService implements the AnalyticsSvcFacade interface
type analyticsService struct {
	BaseService
}

// NewAnalyticsService creates a new analytics service with the provided options
func NewAnalyticsService(options ...ServiceOption) portssvc.AnalyticsSvcFacade {
	return &analyticsService{BaseService: newBaseService(options...)}
}

// Ensure analyticsService implements the AnalyticsSvcFacade interface
var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

func (s *analyticsService) Dashboard(ctx context.Context, state domain.Snapshot) (domain.DashboardHealth, error) {
	state, err := s.prepare(ctx, state, "Compute dashboard")
	if err != nil {
		return domain.DashboardHealth{}, err
	}
	health := metrics.ComputeDashboardHealth(state)
	s.LogDebug(ctx, "Dashboard computed", slog.Int("health_score", health.HealthScore))
	return health, nil
}

func (s *analyticsService) RiskMetrics(ctx context.Context, state domain.Snapshot) (risk.Metrics, error) {
	state, err := s.prepare(ctx, state, "Compute risk metrics")
	if err != nil {
		return nil, err
	}
	return risk.ComputeRiskMetrics(state), nil
}

func (s *analyticsService) EstimatePayoffMonths(ctx context.Context, balance, payment, annualRatePercent float64) (float64, error) {
	inputs := []struct {
		name  string
		value float64
	}{
		{"balance", balance},
		{"monthlyPayment", payment},
		{"interestRatePercent", annualRatePercent},
	}
	for _, in := range inputs {
		if _, err := validation.ValidateMonetaryValue(in.value, in.name); err != nil {
			s.LogFailure(ctx, err, "Estimate payoff months")
			return 0, err
		}
	}
	return loans.CalculateEstimatedPayoffMonths(balance, payment, annualRatePercent), nil
}

func (s *analyticsService) ComparePayoff(ctx context.Context, balance, annualRatePercent, basePayment, extraPayment float64) (domain.PayoffComparison, error) {
	cmp, err := loans.ComparePayoffScenarios(balance, annualRatePercent, basePayment, extraPayment)
	if err != nil {
		s.LogFailure(ctx, err, "Compare payoff scenarios")
		return domain.PayoffComparison{}, err
	}
	s.LogDebug(ctx, "Payoff scenarios compared",
		slog.Int("base_months", cmp.Base.Months),
		slog.Int("months_saved", cmp.MonthsSaved))
	return cmp, nil
}

func (s *analyticsService) RecommendCardPayments(ctx context.Context, state domain.Snapshot) (domain.CardPaymentPlan, error) {
	state, err := s.prepare(ctx, state, "Recommend card payments")
	if err != nil {
		return domain.CardPaymentPlan{}, err
	}
	return loans.RecommendCardPaymentsForState(state), nil
}

func (s *analyticsService) ProjectNetWorth(ctx context.Context, state domain.Snapshot, profiles []domain.ProjectionProfile) (domain.NetWorthProjection, error) {
	state, err := s.prepare(ctx, state, "Project net worth")
	if err != nil {
		return domain.NetWorthProjection{}, err
	}
	if profiles == nil {
		return projection.ProjectNetWorth(state), nil
	}
	for i, p := range profiles {
		if err := validateProfile(i, p); err != nil {
			s.LogFailure(ctx, err, "Project net worth", slog.String("profile", p.Name))
			return domain.NetWorthProjection{}, err
		}
	}
	return projection.ProjectWithProfiles(state, profiles), nil
}

func validateProfile(i int, p domain.ProjectionProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.NewFieldValidation(fmt.Sprintf("profiles[%d].name", i), "Projection profile name is required.")
	}
	if _, err := validation.ValidateMonetaryValue(p.SavingsPaceMultiplier, "savingsPaceMultiplier"); err != nil {
		return err
	}
	if _, err := validation.ValidateMonetaryValue(p.DebtPaymentExtraPercent, "debtPaymentExtraPercent"); err != nil {
		return err
	}
	for field, v := range map[string]float64{
		"annualAssetGrowthPercent":   p.AnnualAssetGrowthPercent,
		"aprStressAdjustmentPercent": p.AprStressAdjustmentPercent,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.NewFieldValidation(field, fmt.Sprintf("%s must be a finite number.", field))
		}
	}
	return nil
}

func (s *analyticsService) Cockpit(ctx context.Context, state domain.Snapshot) (domain.Cockpit, error) {
	state, err := s.prepare(ctx, state, "Build cockpit")
	if err != nil {
		return domain.Cockpit{}, err
	}
	view := cockpit.BuildCockpit(state, s.Now())
	s.LogDebug(ctx, "Cockpit built",
		slog.String("as_of", view.AsOf),
		slog.Int("provenance", len(view.Provenance)))
	return view, nil
}

func (s *analyticsService) Feed(ctx context.Context, state domain.Snapshot, q feed.Query) ([]domain.FeedRow, error) {
	switch feed.SortDirection(strings.ToLower(string(q.SortDirection))) {
	case "", feed.Ascending, feed.Descending:
	default:
		err := apperrors.NewFieldValidation("sortDirection", "Sort direction must be asc or desc.")
		s.LogFailure(ctx, err, "Build feed")
		return nil, err
	}
	state, err := s.prepare(ctx, state, "Build feed")
	if err != nil {
		return nil, err
	}
	rows := feed.BuildSortedAndFilteredCollection(feed.BuildUnifiedFeed(state), q)
	s.LogDebug(ctx, "Feed built", slog.Int("rows", len(rows)))
	return rows, nil
}
