// Package risk evaluates a snapshot against the financial risk rule set: aggregate
// threshold rules deduplicated by family, per-record drilldowns and singular checks.
package risk

import (
	"strings"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/metrics"
	"github.com/SscSPs/fincockpit/internal/utils"
)

// Metric names.
const (
	MetricDTI                 = "dti"
	MetricUtilization         = "utilization"
	MetricSavingsRate         = "savingsRate"
	MetricEmergencyFundMonths = "emergencyFundMonths"
	MetricDebtServiceCoverage = "debtServiceCoverage"
	MetricLiquidityRatio      = "liquidityRatio"
	MetricLTV                 = "ltv"
	MetricDebtToAsset         = "debtToAsset"
	MetricExpenseRatio        = "expenseRatio"
	MetricHousingRatio        = "housingRatio"
	MetricRevolvingShare      = "revolvingShare"
	MetricWeightedAPR         = "weightedApr"
	MetricNetWorthToIncome    = "netWorthToIncome"
	MetricGoalFundingRatio    = "goalFundingRatio"
	MetricMinPaymentShare     = "minPaymentShare"
	MetricDiscretionaryBuffer = "discretionaryBuffer"
)

// Ratio is one computed metric. Defined is false when its denominator is missing,
// in which case no rule fires on it.
type Ratio struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// Metrics maps metric names to their values.
type Metrics map[string]Ratio

var housingCategories = []string{"rent", "mortgage", "housing"}

func ratio(part, whole, scale float64) Ratio {
	if whole <= 0 {
		return Ratio{}
	}
	return Ratio{Value: utils.RoundTo(part/whole*scale, 4), Defined: true}
}

func isHousing(r domain.Record) bool {
	c := strings.ToLower(strings.TrimSpace(r.Category))
	for _, h := range housingCategories {
		if strings.Contains(c, h) {
			return true
		}
	}
	return false
}

func isActiveGoal(r domain.Record) bool {
	return r.Status != domain.GoalCompleted
}

// ComputeRiskMetrics derives every aggregate ratio the threshold rules read.
func ComputeRiskMetrics(state domain.Snapshot) Metrics {
	t := metrics.ComputeTotals(state)

	var housing, cardMinimums, securedBalance, collateral, aprWeighted, aprBalance float64
	for _, r := range state.Expenses {
		if isHousing(r) {
			housing += r.Amount
		}
	}
	for _, r := range state.Liabilities() {
		b := r.Balance()
		if r.Kind == domain.KindCreditCard {
			cardMinimums += r.MinimumPayment
		}
		if r.Kind.IsLoanFamily() && r.CollateralAssetMarketValue > 0 {
			securedBalance += b
			collateral += r.CollateralAssetMarketValue
		}
		if b > 0 {
			aprWeighted += b * r.InterestRatePercent
			aprBalance += b
		}
	}

	var goalCurrent, goalTarget float64
	for _, g := range state.Goals {
		if isActiveGoal(g) {
			goalCurrent += g.CurrentAmount
			goalTarget += g.TargetAmount
		}
	}

	netWorth := t.NetWorth()
	return Metrics{
		MetricDTI:                 ratio(t.DebtPayments, t.Income, 100),
		MetricUtilization:         ratio(t.RevolvingBalance, t.RevolvingLimit, 100),
		MetricSavingsRate:         ratio(t.Surplus(), t.Income, 100),
		MetricEmergencyFundMonths: ratio(t.DirectAssets, t.EssentialOutflow(), 1),
		MetricDebtServiceCoverage: ratio(t.Income-t.Expenses, t.DebtPayments, 1),
		MetricLiquidityRatio:      ratio(t.DirectAssets, t.RevolvingBalance, 1),
		MetricLTV:                 ratio(securedBalance, collateral, 100),
		MetricDebtToAsset:         ratio(t.Liabilities, t.DirectAssets+t.HoldingsMarket, 100),
		MetricExpenseRatio:        ratio(t.Expenses, t.Income, 100),
		MetricHousingRatio:        ratio(housing, t.Income, 100),
		MetricRevolvingShare:      ratio(t.RevolvingBalance, t.Liabilities, 100),
		MetricWeightedAPR:         ratio(aprWeighted, aprBalance, 1),
		MetricNetWorthToIncome:    ratio(netWorth, t.Income*12, 1),
		MetricGoalFundingRatio:    ratio(goalCurrent, goalTarget, 100),
		MetricMinPaymentShare:     ratio(cardMinimums, t.Income, 100),
		MetricDiscretionaryBuffer: {Value: t.Surplus(), Defined: t.Income > 0 || t.Expenses > 0 || t.DebtPayments > 0},
	}
}
