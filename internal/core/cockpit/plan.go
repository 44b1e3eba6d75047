package cockpit

import (
	"math"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/collections"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/loans"
	"github.com/SscSPs/fincockpit/internal/core/metrics"
	"github.com/SscSPs/fincockpit/internal/utils"
)

const (
	// WaterfallMonths is the length of the month-by-month debt waterfall schedule.
	WaterfallMonths = 12
	// SurplusToDebtShare of the monthly surplus is added to the debt minimums.
	SurplusToDebtShare = 0.5
	recentWindow       = 30 * 24 * time.Hour
	noOutflowRunway    = 999.0
)

// blendedAPR is the balance-weighted APR across every liability.
func blendedAPR(state domain.Snapshot) float64 {
	var weighted, total float64
	for _, r := range state.Liabilities() {
		if b := r.Balance(); b > 0 {
			weighted += b * r.InterestRatePercent
			total += b
		}
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

func debtFreeMonth(total, payment, apr float64) int {
	if total <= 0 {
		return 0
	}
	if payment <= 0 {
		return domain.NonConvergentMonths
	}
	return loans.WholeMonths(loans.CalculateEstimatedPayoffMonths(total, payment, apr))
}

// runway is how many months liquid assets cover outflow with no income at all.
// Income never enters it, so income-only scenarios leave runway unchanged.
func runway(liquid, outflow float64) float64 {
	switch {
	case outflow > 0:
		return utils.RoundTo(liquid/outflow, 2)
	case liquid > 0:
		return noOutflowRunway
	}
	return 0
}

// BuildDebtWaterfall pays all debt down as one balance at the blended APR for
// WaterfallMonths, using the minimums plus SurplusToDebtShare of the surplus.
func BuildDebtWaterfall(state domain.Snapshot) domain.DebtWaterfall {
	t := metrics.ComputeTotals(state)
	apr := blendedAPR(state)
	extra := utils.RoundMoney(SurplusToDebtShare * math.Max(0, t.Surplus()))
	payment := utils.RoundMoney(t.DebtPayments + extra)

	w := domain.DebtWaterfall{
		TotalDebt:      t.Liabilities,
		BlendedAPR:     utils.RoundTo(apr, 2),
		MonthlyPayment: payment,
		ExtraPayment:   extra,
		DebtFreeMonth:  debtFreeMonth(t.Liabilities, payment, apr),
		Months:         make([]domain.WaterfallMonth, 0, WaterfallMonths),
	}

	balance := t.Liabilities
	for m := 1; m <= WaterfallMonths; m++ {
		interest := balance * apr / 1200
		pay := math.Min(payment, balance+interest)
		end := math.Max(0, balance+interest-pay)
		w.Months = append(w.Months, domain.WaterfallMonth{
			Month:           m,
			StartingBalance: utils.RoundMoney(balance),
			Interest:        utils.RoundMoney(interest),
			Payment:         utils.RoundMoney(pay),
			EndingBalance:   utils.RoundMoney(end),
		})
		balance = end
	}
	return w
}

func template(name string, target, current float64, months int, surplus float64) domain.GoalTemplate {
	target = utils.RoundMoney(target)
	current = utils.RoundMoney(math.Min(current, target))
	required := utils.RoundMoney(math.Max(0, target-current) / float64(months))
	return domain.GoalTemplate{
		Name:            name,
		TargetAmount:    target,
		CurrentAmount:   current,
		TimeframeMonths: months,
		RequiredMonthly: required,
		Affordable:      required <= math.Max(0, surplus),
	}
}

// BuildGoalTemplates proposes four standard goals with the monthly contribution each needs.
func BuildGoalTemplates(state domain.Snapshot) []domain.GoalTemplate {
	t := metrics.ComputeTotals(state)
	surplus := t.Surplus()
	return []domain.GoalTemplate{
		template("Emergency Fund", t.EssentialOutflow()*metrics.EmergencyFundTargetMonths, t.DirectAssets, 12, surplus),
		template("Debt Freedom", t.RevolvingBalance, 0, 24, surplus),
		template("Big Purchase", 5000, 0, 12, surplus),
		template("Retirement Boost", t.Income*12*0.15, 0, 12, surplus),
	}
}

type scenario struct {
	name          string
	incomeFactor  float64
	expenseFactor float64
	extraPayment  float64
}

var scenarios = []scenario{
	{name: "Cut expenses 10%", incomeFactor: 1, expenseFactor: 0.9},
	{name: "Extra $500 debt payment", incomeFactor: 1, expenseFactor: 1, extraPayment: 500},
	{name: "Income drops 20%", incomeFactor: 0.8, expenseFactor: 1},
}

type outlook struct {
	debtFreeMonth int
	runway        float64
}

func project(t metrics.Totals, apr float64, s scenario) outlook {
	income := t.Income * s.incomeFactor
	expenses := t.Expenses * s.expenseFactor
	surplus := income - expenses - t.DebtPayments - s.extraPayment
	payment := t.DebtPayments + s.extraPayment + SurplusToDebtShare*math.Max(0, surplus)
	return outlook{
		debtFreeMonth: debtFreeMonth(t.Liabilities, payment, apr),
		runway:        runway(t.DirectAssets, expenses+t.DebtPayments+s.extraPayment),
	}
}

// BuildScenarios recomputes the debt-free month and cash runway under three what-ifs and
// reports them against the current baseline.
func BuildScenarios(state domain.Snapshot) []domain.ScenarioDelta {
	t := metrics.ComputeTotals(state)
	apr := blendedAPR(state)
	base := project(t, apr, scenario{incomeFactor: 1, expenseFactor: 1})

	out := make([]domain.ScenarioDelta, 0, len(scenarios))
	for _, s := range scenarios {
		o := project(t, apr, s)
		out = append(out, domain.ScenarioDelta{
			Name:               s.name,
			DebtFreeMonth:      o.debtFreeMonth,
			DebtFreeMonthDelta: o.debtFreeMonth - base.debtFreeMonth,
			RunwayMonths:       o.runway,
			RunwayDelta:        utils.RoundTo(o.runway-base.runway, 2),
		})
	}
	return out
}

func updatedWithin(r domain.Record, asOf time.Time) bool {
	ts, err := time.Parse(collections.TimestampLayout, r.UpdatedAt)
	if err != nil {
		if ts, err = time.Parse(time.RFC3339, r.UpdatedAt); err != nil {
			return false
		}
	}
	age := asOf.Sub(ts)
	return age >= 0 && age <= recentWindow
}

// BuildReconcileChecklist lists the three reconcile steps. A step is done when nothing
// is left to look at.
func BuildReconcileChecklist(state domain.Snapshot, asOf time.Time) []domain.ChecklistItem {
	var uncategorized, unpaid, recent int

	for _, rows := range [][]domain.Record{state.Income, state.Expenses} {
		for _, r := range rows {
			if r.Amount == 0 || fold(r.Category) == "" {
				uncategorized++
			}
		}
	}
	for _, r := range state.Liabilities() {
		if r.Balance() > 0 && r.ScheduledPayment() == 0 {
			unpaid++
		}
	}
	for _, name := range domain.CollectionNames {
		rows, _ := state.Collection(name)
		for _, r := range rows {
			if updatedWithin(r, asOf) {
				recent++
			}
		}
	}

	return []domain.ChecklistItem{
		{ID: "categorize-entries", Label: "Give every income and expense entry an amount and a category", Count: uncategorized, Done: uncategorized == 0},
		{ID: "confirm-payments", Label: "Record a scheduled payment for every balance owed", Count: unpaid, Done: unpaid == 0},
		{ID: "review-recent-changes", Label: "Review entries changed in the last 30 days", Count: recent, Done: recent == 0},
	}
}
