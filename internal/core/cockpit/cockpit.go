// Package cockpit composes the metrics, simulation and risk engines into the planning
// view: budget against actuals, recurring baseline, forecast, debt waterfall, goal
// templates, what-if scenarios, risk provenance and the reconcile checklist.
package cockpit

import (
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/metrics"
	"github.com/SscSPs/fincockpit/internal/core/risk"
	"github.com/SscSPs/fincockpit/internal/utils"
)

const (
	// PlannedMarkup turns actual spend into the plan it is measured against.
	PlannedMarkup = 1.05
	// ProvenanceSize is the number of risk findings shown with the cockpit.
	ProvenanceSize = 10
)

var (
	recurringKeywords = []string{"rent", "mortgage", "utilities", "insurance", "subscription", "phone", "internet", "loan", "debt payment"}
	essentialKeywords = []string{"grocer", "food", "transport", "fuel", "gas", "medical", "health", "childcare", "education", "utilities"}
)

// BuildCockpit assembles the planning view as of the given day.
func BuildCockpit(state domain.Snapshot, asOf time.Time) domain.Cockpit {
	findings := risk.EvaluateRiskFindings(state, asOf)
	if len(findings) > ProvenanceSize {
		findings = findings[:ProvenanceSize]
	}

	return domain.Cockpit{
		AsOf:          asOf.UTC().Format("2006-01-02"),
		Budget:        BuildBudgetVsActual(state, asOf),
		Recurring:     BuildRecurringBaseline(state),
		Forecast:      BuildForecast(state),
		Waterfall:     BuildDebtWaterfall(state),
		GoalTemplates: BuildGoalTemplates(state),
		Scenarios:     BuildScenarios(state),
		Provenance:    findings,
		Checklist:     BuildReconcileChecklist(state, asOf),
	}
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, words []string) (string, bool) {
	for _, w := range words {
		if strings.Contains(s, w) {
			return w, true
		}
	}
	return "", false
}

// BuildBudgetVsActual groups the expenses of asOf's month by category. When no expense is
// dated in that month every expense is taken as one month of spend and the run rate equals it.
func BuildBudgetVsActual(state domain.Snapshot, asOf time.Time) []domain.BudgetLine {
	prefix := asOf.Format("2006-01")
	var rows []domain.Record
	for _, r := range state.Expenses {
		if strings.HasPrefix(strings.TrimSpace(r.Date), prefix) {
			rows = append(rows, r)
		}
	}
	scale := float64(risk.DaysInMonth(asOf)) / float64(asOf.Day())
	if len(rows) == 0 {
		rows, scale = state.Expenses, 1
	}

	labels := make(map[string]string)
	amounts := make(map[string][]float64)
	for _, r := range rows {
		key := fold(r.Category)
		if _, ok := labels[key]; !ok {
			labels[key] = strings.TrimSpace(r.Category)
		}
		amounts[key] = append(amounts[key], r.Amount)
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]domain.BudgetLine, 0, len(keys))
	for _, k := range keys {
		actual := utils.SumMoney(amounts[k]...)
		line := domain.BudgetLine{
			Category: labels[k],
			Actual:   actual,
			Planned:  utils.RoundMoney(actual * PlannedMarkup),
			RunRate:  utils.RoundMoney(actual * scale),
			Status:   "on-track",
		}
		if line.RunRate > line.Planned {
			line.Status = "over"
		}
		lines = append(lines, line)
	}
	return lines
}

// BuildRecurringBaseline collects expenses whose category or item names a recurring bill,
// or that are tagged recurring.
func BuildRecurringBaseline(state domain.Snapshot) domain.RecurringBaseline {
	items := make([]domain.RecurringItem, 0)
	var amounts []float64
	for _, r := range state.Expenses {
		reason, ok := recurringReason(r)
		if !ok {
			continue
		}
		items = append(items, domain.RecurringItem{
			RecordID: r.ID,
			Item:     r.DisplayName(),
			Category: r.Category,
			Amount:   r.Amount,
			Reason:   reason,
		})
		amounts = append(amounts, r.Amount)
	}
	return domain.RecurringBaseline{Items: items, Total: utils.SumMoney(amounts...)}
}

func recurringReason(r domain.Record) (string, bool) {
	if w, ok := containsAny(fold(r.Category), recurringKeywords); ok {
		return w, true
	}
	if w, ok := containsAny(fold(r.Item), recurringKeywords); ok {
		return w, true
	}
	for _, t := range r.Tags {
		if fold(t) == "recurring" {
			return "tag", true
		}
	}
	return "", false
}

// BuildForecast splits the month's outflow into committed (recurring bills and scheduled
// debt payments), planned (essential categories) and optional spend.
func BuildForecast(state domain.Snapshot) domain.Forecast {
	t := metrics.ComputeTotals(state)

	var committed, planned, optional []float64
	committed = append(committed, t.DebtPayments)
	for _, r := range state.Expenses {
		if metrics.IsDebtPaymentRow(r) {
			continue
		}
		switch _, recurring := recurringReason(r); {
		case recurring:
			committed = append(committed, r.Amount)
		case isEssential(r):
			planned = append(planned, r.Amount)
		default:
			optional = append(optional, r.Amount)
		}
	}

	f := domain.Forecast{
		Income:    t.Income,
		Committed: utils.SumMoney(committed...),
		Planned:   utils.SumMoney(planned...),
		Optional:  utils.SumMoney(optional...),
	}
	f.Remaining = utils.RoundMoney(f.Income - f.Committed - f.Planned - f.Optional)
	switch {
	case f.Remaining < 0:
		f.RiskTier = "high"
	case f.Remaining < 0.1*f.Income:
		f.RiskTier = "medium"
	default:
		f.RiskTier = "low"
	}
	return f
}

func isEssential(r domain.Record) bool {
	_, ok := containsAny(fold(r.Category), essentialKeywords)
	return ok
}
