// Package metrics derives aggregate figures from a snapshot: the monthly cash-flow summary,
// dashboard health, emergency-fund coverage and the recommended monthly savings.
package metrics

import (
	"math"
	"strings"

	"github.com/SscSPs/fincockpit/internal/core/collections"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/utils"
)

// EmergencyFundTargetMonths is the coverage an emergency fund should reach.
const EmergencyFundTargetMonths = 6.0

// uncoveredMonths is reported when liquid assets exist but nothing has to be covered.
const uncoveredMonths = 999.0

// Totals are the raw sums every derived figure is built from.
type Totals struct {
	Income           float64
	Expenses         float64
	DebtPayments     float64
	SavingsTransfers float64
	DirectAssets     float64
	HoldingsMarket   float64
	HoldingsNet      float64
	Liabilities      float64
	RevolvingBalance float64
	RevolvingLimit   float64
}

// NetWorth counts direct assets and the net value of holdings against every liability.
func (t Totals) NetWorth() float64 {
	return utils.RoundMoney(t.DirectAssets + t.HoldingsNet - t.Liabilities)
}

// Surplus is what remains of income after expenses and scheduled debt payments.
func (t Totals) Surplus() float64 {
	return utils.RoundMoney(t.Income - t.Expenses - t.DebtPayments)
}

// EssentialOutflow is the monthly spend an emergency fund has to cover.
func (t Totals) EssentialOutflow() float64 {
	return utils.RoundMoney(t.Expenses + t.DebtPayments)
}

// IsDebtPaymentRow reports whether an expense row mirrors a liability's scheduled payment.
// Such rows are excluded from expense totals since DebtPayments already counts them.
func IsDebtPaymentRow(r domain.Record) bool {
	return strings.EqualFold(strings.TrimSpace(r.Category), collections.RecurringCategory)
}

// IsRevolving reports whether a liability has a revolving limit (cards and credit lines).
func IsRevolving(r domain.Record) bool {
	return r.Kind == domain.KindCreditCard || r.Kind == domain.KindCredit
}

// ComputeTotals sums every collection of the snapshot.
func ComputeTotals(state domain.Snapshot) Totals {
	var income, expenses, payments, savings, direct, market, net, liabilities, revBal, revLimit []float64

	for _, r := range state.Income {
		income = append(income, r.Amount)
	}
	for _, r := range state.Expenses {
		if IsDebtPaymentRow(r) {
			continue
		}
		expenses = append(expenses, r.Amount)
	}
	for _, r := range state.Assets {
		direct = append(direct, r.Amount)
		if strings.EqualFold(r.RecordType, domain.RecordTypeSavings) {
			savings = append(savings, r.Amount)
		}
	}
	for _, r := range state.AssetHoldings {
		market = append(market, r.AssetMarketValue)
		net = append(net, r.NetHoldingValue())
	}
	for _, r := range state.Liabilities() {
		payments = append(payments, r.ScheduledPayment())
		liabilities = append(liabilities, r.Balance())
		if IsRevolving(r) {
			revBal = append(revBal, r.Balance())
			revLimit = append(revLimit, r.Limit())
		}
	}

	return Totals{
		Income:           utils.SumMoney(income...),
		Expenses:         utils.SumMoney(expenses...),
		DebtPayments:     utils.SumMoney(payments...),
		SavingsTransfers: utils.SumMoney(savings...),
		DirectAssets:     utils.SumMoney(direct...),
		HoldingsMarket:   utils.SumMoney(market...),
		HoldingsNet:      utils.SumMoney(net...),
		Liabilities:      utils.SumMoney(liabilities...),
		RevolvingBalance: utils.SumMoney(revBal...),
		RevolvingLimit:   utils.SumMoney(revLimit...),
	}
}

// SummarizeMonthly reports the month's cash flow. Savings transfers are asset rows
// recorded as savings.
func SummarizeMonthly(state domain.Snapshot) domain.MonthlySummary {
	t := ComputeTotals(state)
	return domain.MonthlySummary{
		Income:           t.Income,
		Expenses:         t.Expenses,
		DebtPayments:     t.DebtPayments,
		SavingsTransfers: t.SavingsTransfers,
		NetCashFlow:      utils.RoundMoney(t.Income - t.Expenses - t.DebtPayments - t.SavingsTransfers),
	}
}

// Percent returns part/whole*100 rounded to two places, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return utils.RoundTo(part/whole*100, 2)
}

// ComputeEmergencyFundCoverage measures direct assets against monthly essential outflow.
func ComputeEmergencyFundCoverage(state domain.Snapshot) domain.EmergencyFundCoverage {
	return coverage(ComputeTotals(state))
}

func coverage(t Totals) domain.EmergencyFundCoverage {
	essential := t.EssentialOutflow()
	months := 0.0
	switch {
	case essential > 0:
		months = utils.RoundTo(t.DirectAssets/essential, 2)
	case t.DirectAssets > 0:
		months = uncoveredMonths
	}
	target := utils.RoundMoney(essential * EmergencyFundTargetMonths)
	return domain.EmergencyFundCoverage{
		LiquidAssets:          t.DirectAssets,
		EssentialMonthlySpend: essential,
		MonthsCovered:         months,
		TargetMonths:          EmergencyFundTargetMonths,
		Shortfall:             utils.RoundMoney(math.Max(0, target-t.DirectAssets)),
		Status:                coverageStatus(months),
	}
}

func coverageStatus(months float64) string {
	switch {
	case months < 1:
		return "critical"
	case months < 3:
		return "low"
	case months < EmergencyFundTargetMonths:
		return "adequate"
	}
	return "strong"
}

// RecommendSavings suggests a monthly savings amount: 20% of income, or enough to close
// the emergency-fund shortfall within a year if that is more, never above the surplus.
func RecommendSavings(state domain.Snapshot) float64 {
	t := ComputeTotals(state)
	return recommend(t, coverage(t))
}

func recommend(t Totals, ef domain.EmergencyFundCoverage) float64 {
	surplus := math.Max(0, t.Surplus())
	want := math.Max(0, math.Max(0.2*t.Income, ef.Shortfall/12))
	return utils.RoundMoney(math.Min(surplus, want))
}

// ComputeDashboardHealth builds the headline dashboard block.
func ComputeDashboardHealth(state domain.Snapshot) domain.DashboardHealth {
	t := ComputeTotals(state)
	ef := coverage(t)

	h := domain.DashboardHealth{
		NetWorth:            t.NetWorth(),
		TotalAssets:         utils.RoundMoney(t.DirectAssets + t.HoldingsMarket),
		TotalLiabilities:    t.Liabilities,
		DebtToIncomePercent: Percent(t.DebtPayments, t.Income),
		SavingsRatePercent:  Percent(t.Surplus(), t.Income),
		UtilizationPercent:  Percent(t.RevolvingBalance, t.RevolvingLimit),
		Summary: domain.MonthlySummary{
			Income:           t.Income,
			Expenses:         t.Expenses,
			DebtPayments:     t.DebtPayments,
			SavingsTransfers: t.SavingsTransfers,
			NetCashFlow:      utils.RoundMoney(t.Income - t.Expenses - t.DebtPayments - t.SavingsTransfers),
		},
		EmergencyFund:      ef,
		RecommendedSavings: recommend(t, ef),
	}
	h.HealthScore = healthScore(h, t)
	return h
}

// healthScore starts at 100 and deducts points per weak area, clamped to [0, 100].
func healthScore(h domain.DashboardHealth, t Totals) int {
	score := 100

	if t.Income > 0 {
		switch {
		case h.DebtToIncomePercent > 36:
			score -= 20
		case h.DebtToIncomePercent > 20:
			score -= 10
		}
		switch {
		case h.SavingsRatePercent < 0:
			score -= 25
		case h.SavingsRatePercent < 10:
			score -= 10
		}
	} else if t.Expenses > 0 || t.DebtPayments > 0 {
		score -= 35
	}

	switch {
	case h.UtilizationPercent > 50:
		score -= 20
	case h.UtilizationPercent > 30:
		score -= 10
	}

	switch h.EmergencyFund.Status {
	case "critical":
		score -= 25
	case "low":
		score -= 15
	case "adequate":
		score -= 5
	}

	if h.NetWorth < 0 {
		score -= 10
	}

	if score < 0 {
		return 0
	}
	return score
}
