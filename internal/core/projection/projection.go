// Package projection simulates net worth month by month under three savings and
// repayment profiles.
package projection

import (
	"math"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/metrics"
	"github.com/SscSPs/fincockpit/internal/utils"
)

// HorizonMonths is the length of the simulation.
const HorizonMonths = 120

// SampleMonths are the horizons reported for each profile.
var SampleMonths = []int{0, 6, 12, 24, 60, 120}

// DefaultProfiles returns the conservative, base and accelerated profiles.
func DefaultProfiles() []domain.ProjectionProfile {
	return []domain.ProjectionProfile{
		{Name: "conservative", SavingsPaceMultiplier: 0.8, AnnualAssetGrowthPercent: 3, DebtPaymentExtraPercent: 0, AprStressAdjustmentPercent: 2},
		{Name: "base", SavingsPaceMultiplier: 1, AnnualAssetGrowthPercent: 5, DebtPaymentExtraPercent: 10, AprStressAdjustmentPercent: 0},
		{Name: "accelerated", SavingsPaceMultiplier: 1.2, AnnualAssetGrowthPercent: 7, DebtPaymentExtraPercent: 25, AprStressAdjustmentPercent: -1},
	}
}

type liability struct {
	balance   float64
	apr       float64
	payment   float64
	remaining int
}

// ProjectNetWorth runs the default profiles over the snapshot.
func ProjectNetWorth(state domain.Snapshot) domain.NetWorthProjection {
	return ProjectWithProfiles(state, DefaultProfiles())
}

// ProjectWithProfiles simulates HorizonMonths months per profile. Assets start from the
// net value of holdings and receive the monthly surplus scaled by the profile's pace;
// each liability amortizes on its own stressed APR and scaled payment.
func ProjectWithProfiles(state domain.Snapshot, profiles []domain.ProjectionProfile) domain.NetWorthProjection {
	t := metrics.ComputeTotals(state)

	var debts []liability
	for _, r := range state.Liabilities() {
		debts = append(debts, liability{
			balance:   r.Balance(),
			apr:       r.InterestRatePercent,
			payment:   r.ScheduledPayment(),
			remaining: r.RemainingPayments,
		})
	}
	surplus := math.Max(0, t.Income-t.Expenses-t.DebtPayments)

	out := domain.NetWorthProjection{
		StartingAssets:      t.HoldingsNet,
		StartingLiabilities: t.Liabilities,
		MonthlyContribution: utils.RoundMoney(surplus),
		Profiles:            make([]domain.ProfileProjection, 0, len(profiles)),
	}
	for _, p := range profiles {
		out.Profiles = append(out.Profiles, domain.ProfileProjection{
			Profile: p,
			Points:  simulate(t.HoldingsNet, debts, surplus*p.SavingsPaceMultiplier, p),
		})
	}
	return out
}

func simulate(assets float64, start []liability, contribution float64, p domain.ProjectionProfile) []domain.ProjectionPoint {
	debts := make([]liability, len(start))
	copy(debts, start)

	growth := p.AnnualAssetGrowthPercent / 1200
	points := make([]domain.ProjectionPoint, 0, len(SampleMonths))
	next := 0

	for month := 0; month <= HorizonMonths; month++ {
		if month > 0 {
			assets = assets*(1+growth) + contribution
			for i := range debts {
				debts[i].step(month, p)
			}
		}
		if next < len(SampleMonths) && SampleMonths[next] == month {
			points = append(points, point(month, assets, debts))
			next++
		}
	}
	return points
}

func (l *liability) step(month int, p domain.ProjectionProfile) {
	if l.balance <= 0 {
		return
	}
	rate := math.Max(0, l.apr+p.AprStressAdjustmentPercent) / 1200
	payment := l.payment * (1 + p.DebtPaymentExtraPercent/100)
	l.balance = math.Max(0, l.balance*(1+rate)-payment)
	if l.remaining > 0 && month >= l.remaining {
		l.balance = 0
	}
}

func point(month int, assets float64, debts []liability) domain.ProjectionPoint {
	debt := 0.0
	for _, l := range debts {
		debt += l.balance
	}
	return domain.ProjectionPoint{
		Month:             month,
		ProjectedAssets:   utils.RoundMoney(assets),
		ProjectedDebt:     utils.RoundMoney(debt),
		ProjectedNetWorth: utils.RoundMoney(assets - debt),
	}
}
