// Package loans simulates debt payoff: closed-form amortization, month-by-month payoff
// comparison and the avalanche-weighted credit card payment plan.
package loans

import (
	"math"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/validation"
	"github.com/SscSPs/fincockpit/internal/utils"
)

// MaxSimulationMonths caps the iterative payoff simulation.
const MaxSimulationMonths = 1200

// settled is the balance below which a debt counts as repaid.
const settled = 1e-6

// CalculateEstimatedPayoffMonths returns the months needed to retire balance with a fixed
// monthly payment at annualRatePercent. It returns domain.NonConvergentMonths when the
// payment does not cover the monthly interest.
func CalculateEstimatedPayoffMonths(balance, payment, annualRatePercent float64) float64 {
	if balance <= 0 || payment <= 0 {
		return 0
	}
	if annualRatePercent <= 0 {
		return balance / payment
	}
	i := annualRatePercent / 1200
	if payment <= balance*i {
		return domain.NonConvergentMonths
	}
	return -math.Log(1-i*balance/payment) / math.Log(1+i)
}

// WholeMonths rounds a payoff estimate up to whole months, leaving the sentinel alone.
func WholeMonths(months float64) int {
	if months >= domain.NonConvergentMonths {
		return domain.NonConvergentMonths
	}
	// tolerate float noise such as 10.000000000002
	return int(math.Ceil(months - 1e-9))
}

func nonConvergent(payment float64) domain.PayoffScenario {
	return domain.PayoffScenario{
		MonthlyPayment: payment,
		Months:         domain.NonConvergentMonths,
		TotalInterest:  math.Inf(1),
		TotalPaid:      math.Inf(1),
	}
}

// SimulatePayoff amortizes balance month by month. Each month pays
// min(payment, balance+interest); a month whose payment does not reduce principal, or
// running past MaxSimulationMonths, yields the non-convergent sentinel.
func SimulatePayoff(balance, annualRatePercent, payment float64) domain.PayoffScenario {
	if balance <= 0 {
		return domain.PayoffScenario{MonthlyPayment: payment}
	}
	i := math.Max(0, annualRatePercent) / 1200

	remaining := balance
	var interest, paid float64
	months := 0
	for remaining > settled {
		if months >= MaxSimulationMonths {
			return nonConvergent(payment)
		}
		accrued := remaining * i
		pay := math.Min(payment, remaining+accrued)
		if pay-accrued <= 0 {
			return nonConvergent(payment)
		}
		remaining = remaining + accrued - pay
		interest += accrued
		paid += pay
		months++
	}

	return domain.PayoffScenario{
		MonthlyPayment: payment,
		Months:         months,
		TotalInterest:  utils.RoundMoney(interest),
		TotalPaid:      utils.RoundMoney(paid),
	}
}

// ComparePayoffScenarios compares paying basePayment against basePayment+extraPayment.
// Savings are never negative and are 0 when either scenario does not converge.
func ComparePayoffScenarios(balance, annualRatePercent, basePayment, extraPayment float64) (domain.PayoffComparison, error) {
	inputs := []struct {
		name  string
		value float64
	}{
		{"balance", balance},
		{"interestRatePercent", annualRatePercent},
		{"monthlyPayment", basePayment},
		{"extraPayment", extraPayment},
	}
	for _, in := range inputs {
		if _, err := validation.ValidateMonetaryValue(in.value, in.name); err != nil {
			return domain.PayoffComparison{}, err
		}
	}

	base := SimulatePayoff(balance, annualRatePercent, basePayment)
	accelerated := SimulatePayoff(balance, annualRatePercent, basePayment+extraPayment)

	out := domain.PayoffComparison{
		Balance:     balance,
		AnnualRate:  annualRatePercent,
		Base:        base,
		Accelerated: accelerated,
	}
	if base.Converges() && accelerated.Converges() {
		if d := base.Months - accelerated.Months; d > 0 {
			out.MonthsSaved = d
		}
		out.InterestSaved = utils.RoundMoney(math.Max(0, base.TotalInterest-accelerated.TotalInterest))
	}
	return out, nil
}
