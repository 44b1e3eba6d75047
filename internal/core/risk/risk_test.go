package risk_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func ids(findings []domain.RiskFinding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.ID)
	}
	return out
}

func withFamily(findings []domain.RiskFinding, family string) []domain.RiskFinding {
	var out []domain.RiskFinding
	for _, f := range findings {
		if f.Family == family {
			out = append(out, f)
		}
	}
	return out
}

func TestFamily(t *testing.T) {
	assert.Equal(t, "dti", risk.Family("dti-gt-36"))
	assert.Equal(t, "debt-service-coverage", risk.Family("debt-service-coverage-lt-1.5"))
	assert.Equal(t, "card-utilization-card-1", risk.Family("card-utilization-card-1"))
}

func TestRulesTable(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range risk.Rules {
		assert.False(t, seen[r.ID], "duplicate rule %s", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Title)
	}
	assert.GreaterOrEqual(t, len(risk.Rules), 40)
	assert.True(t, seen["dti-gt-36"])
	assert.True(t, seen["liquidity-ratio-lt-0.5"])
}

func TestEvaluateRiskFindings_DTIFamilyKeepsTightestTier(t *testing.T) {
	s := domain.DefaultSnapshot()
	s.Income = []domain.Record{{ID: "inc-1", Kind: domain.KindIncome, Amount: 1000}}
	s.Loans = []domain.Record{{ID: "loan-1", Kind: domain.KindLoan, Amount: 5000, MonthlyPayment: 400}}

	findings := risk.EvaluateRiskFindings(s, asOf)

	dti := withFamily(findings, "dti")
	require.Len(t, dti, 1)
	assert.Equal(t, "dti-gt-36", dti[0].ID)
	assert.Equal(t, 40.0, dti[0].MetricValue)
	assert.Equal(t, domain.SeverityHigh, dti[0].Severity)
	assert.NotContains(t, ids(findings), "dti-gt-20")
	assert.NotContains(t, ids(findings), "dti-gt-30")
}

func TestEvaluateThresholds_LessThanFamilyKeepsLowestThreshold(t *testing.T) {
	findings := risk.EvaluateThresholds(risk.Metrics{
		risk.MetricEmergencyFundMonths: {Value: 0.4, Defined: true},
		risk.MetricDTI:                 {Value: 99, Defined: false},
	})
	require.Len(t, findings, 1)
	assert.Equal(t, "emergency-fund-lt-1", findings[0].ID)
	assert.Equal(t, domain.LessThan, findings[0].Comparison)
	assert.Contains(t, findings[0].Message, "0.4 months")
}

func TestEvaluateRiskFindings_Drilldowns(t *testing.T) {
	s := domain.DefaultSnapshot()
	s.Income = []domain.Record{{Kind: domain.KindIncome, Amount: 4000}}
	s.CreditCards = []domain.Record{
		{ID: "card-1", Kind: domain.KindCreditCard, Name: "Visa", CurrentBalance: 950, CreditLimit: 1000, MinimumPayment: 30, InterestRatePercent: 15},
	}
	s.Loans = []domain.Record{
		{ID: "loan-1", Kind: domain.KindLoan, Name: "Car", Amount: 9000, MonthlyPayment: 1100, InterestRatePercent: 5},
	}

	findings := risk.EvaluateRiskFindings(s, asOf)
	got := ids(findings)

	assert.Contains(t, got, "card-utilization-card-1")
	assert.Contains(t, got, "debt-concentration-loan-1")
	assert.Contains(t, got, "loan-payment-share-loan-1")

	for _, f := range findings {
		switch f.ID {
		case "card-utilization-card-1":
			assert.Equal(t, domain.SeverityHigh, f.Severity)
			assert.Equal(t, domain.CollectionCreditCards, f.Collection)
			assert.Equal(t, "card-1", f.RecordID)
		case "debt-concentration-loan-1":
			assert.Equal(t, domain.SeverityHigh, f.Severity)
			assert.Equal(t, 90.45, f.MetricValue)
		case "loan-payment-share-loan-1":
			assert.Equal(t, domain.SeverityHigh, f.Severity)
			assert.Equal(t, 27.5, f.MetricValue)
		}
	}
}

func TestEvaluateRiskFindings_SingularChecks(t *testing.T) {
	s := domain.DefaultSnapshot()
	s.Income = []domain.Record{
		{Kind: domain.KindIncome, Amount: 3000},
		{Kind: domain.KindIncome, Amount: 0},
	}
	s.Expenses = []domain.Record{
		{Kind: domain.KindExpense, Category: "Rent", Date: "2026-03-02", Amount: 2600},
		{Kind: domain.KindExpense, Category: "Food", Date: "2026-02-20", Amount: 600},
	}
	s.CreditCards = []domain.Record{
		{ID: "card-1", Kind: domain.KindCreditCard, CurrentBalance: 2500, CreditLimit: 10000, MinimumPayment: 75, InterestRatePercent: 24},
	}
	s.Loans = []domain.Record{
		{ID: "loan-1", Kind: domain.KindLoan, Amount: 30000, MonthlyPayment: 200, CollateralAssetMarketValue: 25000},
	}

	got := ids(risk.EvaluateRiskFindings(s, asOf))

	for _, id := range []string{
		"negative-cash-flow",
		"discretionary-buffer-negative",
		"high-apr-revolving-exposure",
		"underwater-secured-debt",
		"negative-projected-month-end-cash",
		"zero-income-placeholder",
		"no-active-goals",
	} {
		assert.Contains(t, got, id)
	}
	assert.NotContains(t, got, "discretionary-buffer-low")
}

func TestEvaluateRiskFindings_HealthyStateHasNoFindings(t *testing.T) {
	s := domain.DefaultSnapshot()
	s.Income = []domain.Record{{Kind: domain.KindIncome, Amount: 8000}}
	s.Expenses = []domain.Record{{Kind: domain.KindExpense, Category: "Groceries", Date: "2026-01-05", Amount: 1500}}
	s.Assets = []domain.Record{{Kind: domain.KindAsset, Amount: 60000}}
	s.Goals = []domain.Record{{Kind: domain.KindGoal, Title: "Trip", Status: domain.GoalInProgress, TargetAmount: 3000, CurrentAmount: 1500}}

	assert.Empty(t, risk.EvaluateRiskFindings(s, asOf))
}

func TestEvaluateRiskFindings_OrderAndCap(t *testing.T) {
	s := domain.DefaultSnapshot()
	s.Income = []domain.Record{{Kind: domain.KindIncome, Amount: 1000}}
	for i := 0; i < 60; i++ {
		s.CreditCards = append(s.CreditCards, domain.Record{
			ID:             "card-" + strings.Repeat("x", i+1),
			Kind:           domain.KindCreditCard,
			CurrentBalance: 990,
			CreditLimit:    1000,
		})
	}

	findings := risk.EvaluateRiskFindings(s, asOf)
	require.Len(t, findings, risk.MaxFindings)
	for i := 1; i < len(findings); i++ {
		prev, cur := findings[i-1], findings[i]
		assert.GreaterOrEqual(t, prev.Severity.Rank(), cur.Severity.Rank())
	}
}

func TestSortFindings(t *testing.T) {
	findings := []domain.RiskFinding{
		{ID: "b", Severity: domain.SeverityLow, MetricValue: 1},
		{ID: "c", Severity: domain.SeverityHigh, MetricValue: -5},
		{ID: "a", Severity: domain.SeverityHigh, MetricValue: 5},
		{ID: "d", Severity: domain.SeverityHigh, MetricValue: 10},
	}
	risk.SortFindings(findings)
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(findings))
}

func TestComputeRiskMetrics_UndefinedWithoutIncome(t *testing.T) {
	m := risk.ComputeRiskMetrics(domain.DefaultSnapshot())
	assert.False(t, m[risk.MetricDTI].Defined)
	assert.False(t, m[risk.MetricSavingsRate].Defined)
	assert.False(t, m[risk.MetricDiscretionaryBuffer].Defined)
}
