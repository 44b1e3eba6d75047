package risk

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/loans"
	"github.com/SscSPs/fincockpit/internal/core/metrics"
	"github.com/SscSPs/fincockpit/internal/utils"
)

// MaxFindings caps the evaluated list.
const MaxFindings = 50

const (
	highAprThreshold      = 20.0
	revolvingExposureMin  = 1000.0
	lowBufferIncomeShare  = 0.10
	cardDrilldownMin      = 30.0
	concentrationMin      = 50.0
	loanPaymentShareMin   = 15.0
	loanPaymentShareHigh  = 25.0
	concentrationHigh     = 75.0
	cardUtilizationHigh   = 90.0
	cardUtilizationMedium = 50.0
)

// EvaluateRiskFindings runs every rule against the snapshot and returns the findings
// ordered by severity, then by absolute metric value, then by id, capped at MaxFindings.
// asOf locates the current month for the month-end cash projection.
func EvaluateRiskFindings(state domain.Snapshot, asOf time.Time) []domain.RiskFinding {
	t := metrics.ComputeTotals(state)

	findings := EvaluateThresholds(ComputeRiskMetrics(state))
	findings = append(findings, drilldowns(state, t)...)
	findings = append(findings, checks(state, t, asOf)...)

	SortFindings(findings)
	if len(findings) > MaxFindings {
		findings = findings[:MaxFindings]
	}
	return findings
}

// SortFindings orders findings by severity, absolute metric value (descending) and id.
func SortFindings(findings []domain.RiskFinding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if av, bv := math.Abs(a.MetricValue), math.Abs(b.MetricValue); av != bv {
			return av > bv
		}
		return a.ID < b.ID
	})
}

type located struct {
	collection string
	record     domain.Record
}

func liabilitiesWithCollection(state domain.Snapshot) []located {
	var out []located
	for _, name := range domain.LiabilityCollections {
		rows, _ := state.Collection(name)
		for _, r := range rows {
			out = append(out, located{collection: name, record: r})
		}
	}
	return out
}

func drilldowns(state domain.Snapshot, t metrics.Totals) []domain.RiskFinding {
	var out []domain.RiskFinding

	for _, c := range state.CreditCards {
		if c.Balance() <= 0 {
			continue
		}
		util := utils.RoundTo(loans.CardUtilization(c), 2)
		if util <= cardDrilldownMin {
			continue
		}
		sev := low
		switch {
		case util > cardUtilizationHigh:
			sev = high
		case util > cardUtilizationMedium:
			sev = medium
		}
		out = append(out, domain.RiskFinding{
			ID:          "card-utilization-" + c.ID,
			Family:      "card-utilization",
			Title:       "Card utilization",
			Message:     fmt.Sprintf("%s is using %s of its limit.", c.DisplayName(), utils.FormatPercent(util)),
			Severity:    sev,
			Source:      domain.SourceDrilldown,
			Metric:      MetricUtilization,
			MetricValue: util,
			Threshold:   cardDrilldownMin,
			Comparison:  domain.GreaterThan,
			Collection:  domain.CollectionCreditCards,
			RecordID:    c.ID,
		})
	}

	owing := 0
	for _, l := range liabilitiesWithCollection(state) {
		if l.record.Balance() > 0 {
			owing++
		}
	}
	if owing >= 2 && t.Liabilities > 0 {
		for _, l := range liabilitiesWithCollection(state) {
			share := utils.RoundTo(l.record.Balance()/t.Liabilities*100, 2)
			if share <= concentrationMin {
				continue
			}
			sev := medium
			if share > concentrationHigh {
				sev = high
			}
			out = append(out, domain.RiskFinding{
				ID:          "debt-concentration-" + l.record.ID,
				Family:      "debt-concentration",
				Title:       "Debt concentration",
				Message:     fmt.Sprintf("%s holds %s of total debt (%s).", l.record.DisplayName(), utils.FormatPercent(share), utils.FormatMoney(l.record.Balance())),
				Severity:    sev,
				Source:      domain.SourceDrilldown,
				Metric:      "debtShare",
				MetricValue: share,
				Threshold:   concentrationMin,
				Comparison:  domain.GreaterThan,
				Collection:  l.collection,
				RecordID:    l.record.ID,
			})
		}
	}

	if t.Income > 0 {
		for _, l := range state.Loans {
			share := utils.RoundTo(l.ScheduledPayment()/t.Income*100, 2)
			if share <= loanPaymentShareMin {
				continue
			}
			sev := medium
			if share > loanPaymentShareHigh {
				sev = high
			}
			out = append(out, domain.RiskFinding{
				ID:          "loan-payment-share-" + l.ID,
				Family:      "loan-payment-share",
				Title:       "Loan payment share",
				Message:     fmt.Sprintf("%s takes %s of monthly income (%s).", l.DisplayName(), utils.FormatPercent(share), utils.FormatMoney(l.ScheduledPayment())),
				Severity:    sev,
				Source:      domain.SourceDrilldown,
				Metric:      "loanPaymentShare",
				MetricValue: share,
				Threshold:   loanPaymentShareMin,
				Comparison:  domain.GreaterThan,
				Collection:  domain.CollectionLoans,
				RecordID:    l.ID,
			})
		}
	}
	return out
}

func check(id, title, message string, sev domain.Severity, metric string, value, threshold float64, cmp domain.Comparison) domain.RiskFinding {
	return domain.RiskFinding{
		ID:          id,
		Family:      id,
		Title:       title,
		Message:     message,
		Severity:    sev,
		Source:      domain.SourceCheck,
		Metric:      metric,
		MetricValue: value,
		Threshold:   threshold,
		Comparison:  cmp,
	}
}

// MonthToDateExpenses sums the expenses dated in asOf's month.
func MonthToDateExpenses(state domain.Snapshot, asOf time.Time) (float64, bool) {
	prefix := asOf.Format("2006-01")
	var amounts []float64
	for _, r := range state.Expenses {
		if metrics.IsDebtPaymentRow(r) {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(r.Date), prefix) {
			amounts = append(amounts, r.Amount)
		}
	}
	return utils.SumMoney(amounts...), len(amounts) > 0
}

// DaysInMonth returns the number of days of t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func checks(state domain.Snapshot, t metrics.Totals, asOf time.Time) []domain.RiskFinding {
	var out []domain.RiskFinding

	if t.Income < t.Expenses {
		gap := utils.RoundMoney(t.Income - t.Expenses)
		out = append(out, check("negative-cash-flow", "Negative cash flow",
			fmt.Sprintf("Expenses exceed income by %s a month.", utils.FormatMoney(-gap)),
			high, "cashFlow", gap, 0, domain.LessThan))
	}

	buffer := t.Surplus()
	switch {
	case buffer < 0:
		out = append(out, check("discretionary-buffer-negative", "No discretionary buffer",
			fmt.Sprintf("Scheduled outflows exceed income by %s a month.", utils.FormatMoney(-buffer)),
			high, MetricDiscretionaryBuffer, buffer, 0, domain.LessThan))
	case t.Income > 0 && buffer < lowBufferIncomeShare*t.Income:
		out = append(out, check("discretionary-buffer-low", "Thin discretionary buffer",
			fmt.Sprintf("Only %s a month is left after expenses and debt payments.", utils.FormatMoney(buffer)),
			medium, MetricDiscretionaryBuffer, buffer, utils.RoundMoney(lowBufferIncomeShare*t.Income), domain.LessThan))
	}

	var exposure []float64
	for _, r := range state.Liabilities() {
		if metrics.IsRevolving(r) && r.InterestRatePercent >= highAprThreshold {
			exposure = append(exposure, r.Balance())
		}
	}
	if total := utils.SumMoney(exposure...); total > revolvingExposureMin {
		out = append(out, check("high-apr-revolving-exposure", "High-APR revolving balances",
			fmt.Sprintf("%s is carried on revolving credit at %s APR or more.", utils.FormatMoney(total), utils.FormatPercent(highAprThreshold)),
			high, "highAprBalance", total, revolvingExposureMin, domain.GreaterThan))
	}

	var underwater []float64
	for _, r := range state.Liabilities() {
		if r.Kind.IsLoanFamily() && r.CollateralAssetMarketValue > 0 && r.Balance() > r.CollateralAssetMarketValue {
			underwater = append(underwater, r.Balance()-r.CollateralAssetMarketValue)
		}
	}
	if gap := utils.SumMoney(underwater...); gap > 0 {
		out = append(out, check("underwater-secured-debt", "Underwater secured debt",
			fmt.Sprintf("Secured debt exceeds its collateral value by %s.", utils.FormatMoney(gap)),
			high, "underwaterAmount", gap, 0, domain.GreaterThan))
	}

	if spent, ok := MonthToDateExpenses(state, asOf); ok {
		runRate := spent * float64(DaysInMonth(asOf)) / float64(asOf.Day())
		projected := utils.RoundMoney(t.Income - t.DebtPayments - runRate)
		if projected < 0 {
			out = append(out, check("negative-projected-month-end-cash", "Month-end cash shortfall",
				fmt.Sprintf("At the current spending pace the month ends %s short.", utils.FormatMoney(-projected)),
				high, "projectedMonthEndCash", projected, 0, domain.LessThan))
		}
	}

	zeroIncome := 0
	for _, r := range state.Income {
		if r.Amount == 0 {
			zeroIncome++
		}
	}
	if zeroIncome > 0 {
		out = append(out, check("zero-income-placeholder", "Income placeholders",
			fmt.Sprintf("%d income entries have no amount.", zeroIncome),
			low, "zeroIncomeEntries", float64(zeroIncome), 0, domain.GreaterThan))
	}

	active := 0
	for _, g := range state.Goals {
		if isActiveGoal(g) {
			active++
		}
	}
	if active == 0 {
		out = append(out, check("no-active-goals", "No active goals",
			"There are no goals in progress.",
			low, "activeGoals", 0, 1, domain.LessThan))
	}
	return out
}
