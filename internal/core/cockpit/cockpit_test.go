package cockpit_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/cockpit"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CockpitTestSuite struct {
	suite.Suite
	state domain.Snapshot
	asOf  time.Time
}

func (s *CockpitTestSuite) SetupTest() {
	s.asOf = time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	st := domain.DefaultSnapshot()
	st.Income = []domain.Record{{ID: "inc-1", Kind: domain.KindIncome, Category: "Salary", Date: "2026-04-01", Amount: 6000}}
	st.Expenses = []domain.Record{
		{ID: "exp-rent", Kind: domain.KindExpense, Category: "Rent", Date: "2026-04-01", Amount: 1800, UpdatedAt: "2026-04-01T10:00:00.000Z"},
		{ID: "exp-food", Kind: domain.KindExpense, Category: "Groceries", Date: "2026-04-05", Amount: 300},
		{ID: "exp-fun", Kind: domain.KindExpense, Category: "Dining out", Date: "2026-04-06", Amount: 150, Tags: []string{}},
		{ID: "exp-old", Kind: domain.KindExpense, Category: "Dining Out", Date: "2026-03-20", Amount: 90},
		{ID: "exp-streaming", Kind: domain.KindExpense, Category: "Entertainment", Item: "Video", Date: "2026-04-02", Amount: 15, Tags: []string{"Recurring"}},
	}
	st.Assets = []domain.Record{{ID: "ast-1", Kind: domain.KindAsset, Amount: 9000}}
	st.CreditCards = []domain.Record{
		{ID: "card-1", Kind: domain.KindCreditCard, Name: "Visa", CurrentBalance: 3000, CreditLimit: 6000, MinimumPayment: 90, InterestRatePercent: 24},
	}
	st.Loans = []domain.Record{
		{ID: "loan-1", Kind: domain.KindLoan, Name: "Car", Amount: 9000, MonthlyPayment: 310, InterestRatePercent: 6},
	}
	s.state = st
}

func TestCockpitTestSuite(t *testing.T) {
	suite.Run(t, new(CockpitTestSuite))
}

func (s *CockpitTestSuite) TestBudgetVsActual() {
	lines := cockpit.BuildBudgetVsActual(s.state, s.asOf)

	s.Require().Len(lines, 4)
	s.Equal("Dining out", lines[0].Category, "sorted by folded category; March rows excluded")
	s.Equal(150.0, lines[0].Actual)
	s.Equal(157.5, lines[0].Planned)
	s.Equal(450.0, lines[0].RunRate, "150 over 10 of 30 days")
	s.Equal("over", lines[0].Status)

	for _, l := range lines {
		if l.Category == "Rent" {
			s.Equal(5400.0, l.RunRate)
		}
	}
}

func (s *CockpitTestSuite) TestBudgetFallsBackToAllExpenses() {
	lines := cockpit.BuildBudgetVsActual(s.state, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))
	s.Require().Len(lines, 4)
	for _, l := range lines {
		s.Equal(l.Actual, l.RunRate)
		s.Equal("on-track", l.Status)
	}
	s.Equal(240.0, lines[0].Actual, "categories merge ignoring case")
}

func (s *CockpitTestSuite) TestRecurringBaselineAndForecast() {
	rec := cockpit.BuildRecurringBaseline(s.state)
	s.Require().Len(rec.Items, 2)
	s.Equal("rent", rec.Items[0].Reason)
	s.Equal("tag", rec.Items[1].Reason)
	s.Equal(1815.0, rec.Total)

	f := cockpit.BuildForecast(s.state)
	s.Equal(6000.0, f.Income)
	s.Equal(1815.0+400, f.Committed)
	s.Equal(300.0, f.Planned)
	s.Equal(240.0, f.Optional)
	s.Equal(3245.0, f.Remaining)
	s.Equal("low", f.RiskTier)
}

func (s *CockpitTestSuite) TestDebtWaterfall() {
	w := cockpit.BuildDebtWaterfall(s.state)

	s.Equal(12000.0, w.TotalDebt)
	s.Equal(10.5, w.BlendedAPR)
	s.Equal(1622.5, w.ExtraPayment, "half of the 3245 surplus")
	s.Equal(2022.5, w.MonthlyPayment)
	s.Require().Len(w.Months, cockpit.WaterfallMonths)
	s.Equal(12000.0, w.Months[0].StartingBalance)
	s.Equal(105.0, w.Months[0].Interest)
	s.Equal(7, w.DebtFreeMonth)
	s.Equal(0.0, w.Months[11].EndingBalance)
}

func (s *CockpitTestSuite) TestGoalTemplates() {
	goals := cockpit.BuildGoalTemplates(s.state)
	s.Require().Len(goals, 4)

	ef := goals[0]
	s.Equal("Emergency Fund", ef.Name)
	s.Equal(16530.0, ef.TargetAmount)
	s.Equal(9000.0, ef.CurrentAmount)
	s.Equal(627.5, ef.RequiredMonthly)
	s.True(ef.Affordable)

	s.Equal(3000.0, goals[1].TargetAmount)
	s.Equal(125.0, goals[1].RequiredMonthly)
	s.Equal(10800.0, goals[3].TargetAmount)
}

func (s *CockpitTestSuite) TestScenarios() {
	scenarios := cockpit.BuildScenarios(s.state)
	s.Require().Len(scenarios, 3)

	cut, extra, drop := scenarios[0], scenarios[1], scenarios[2]
	s.LessOrEqual(cut.DebtFreeMonthDelta, 0)
	s.Greater(cut.RunwayDelta, 0.0)
	s.LessOrEqual(extra.DebtFreeMonthDelta, 0)
	s.Less(extra.RunwayDelta, 0.0)
	s.GreaterOrEqual(drop.DebtFreeMonthDelta, 0)
	s.Equal(0.0, drop.RunwayDelta)
}

func (s *CockpitTestSuite) TestScenarioRunwayIgnoresIncome() {
	baseline := cockpit.BuildScenarios(s.state)

	for _, income := range []float64{0, 1000, 20000} {
		st := s.state
		st.Income = []domain.Record{{ID: "inc-1", Kind: domain.KindIncome, Category: "Salary", Date: "2026-04-01", Amount: income}}
		got := cockpit.BuildScenarios(st)
		s.Require().Len(got, len(baseline))
		for i := range got {
			s.Equal(baseline[i].RunwayMonths, got[i].RunwayMonths, "%s at income %.0f", got[i].Name, income)
			s.Equal(baseline[i].RunwayDelta, got[i].RunwayDelta, "%s at income %.0f", got[i].Name, income)
		}
		s.Equal(0.0, got[2].RunwayDelta)
	}
}

func (s *CockpitTestSuite) TestReconcileChecklist() {
	st := s.state
	st.Expenses = append([]domain.Record{{ID: "blank", Kind: domain.KindExpense, Date: "2026-04-02"}}, s.state.Expenses...)
	st.Debts = []domain.Record{{ID: "debt-1", Kind: domain.KindDebt, Amount: 400}}

	items := cockpit.BuildReconcileChecklist(st, s.asOf)
	s.Require().Len(items, 3)
	s.Equal(1, items[0].Count)
	s.False(items[0].Done)
	s.Equal(1, items[1].Count)
	s.Equal(1, items[2].Count)
}

func (s *CockpitTestSuite) TestBuildCockpit() {
	c := cockpit.BuildCockpit(s.state, s.asOf)

	s.Equal("2026-04-10", c.AsOf)
	s.NotEmpty(c.Budget)
	s.Len(c.GoalTemplates, 4)
	s.Len(c.Scenarios, 3)
	s.Len(c.Checklist, 3)
	s.LessOrEqual(len(c.Provenance), cockpit.ProvenanceSize)
}

func TestBuildDebtWaterfall_NoDebt(t *testing.T) {
	w := cockpit.BuildDebtWaterfall(domain.DefaultSnapshot())
	assert.Equal(t, 0, w.DebtFreeMonth)
	require.Len(t, w.Months, cockpit.WaterfallMonths)
	assert.Equal(t, 0.0, w.Months[0].Payment)
}
