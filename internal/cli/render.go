package cli

import (
	"fmt"
	"strings"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/utils"
)

func months(n int) string {
	if n >= domain.NonConvergentMonths {
		return "never"
	}
	return fmt.Sprintf("%d", n)
}

// DashboardMarkdown renders the dashboard health block.
func DashboardMarkdown(h domain.DashboardHealth) string {
	var sb strings.Builder
	sb.WriteString("# Dashboard\n\n")
	fmt.Fprintf(&sb, "**Health score:** %d / 100\n\n", h.HealthScore)
	sb.WriteString("| Metric | Value |\n| :--- | ---: |\n")
	fmt.Fprintf(&sb, "| Net worth | %s |\n", utils.FormatMoney(h.NetWorth))
	fmt.Fprintf(&sb, "| Total assets | %s |\n", utils.FormatMoney(h.TotalAssets))
	fmt.Fprintf(&sb, "| Total liabilities | %s |\n", utils.FormatMoney(h.TotalLiabilities))
	fmt.Fprintf(&sb, "| Debt to income | %s |\n", utils.FormatPercent(h.DebtToIncomePercent))
	fmt.Fprintf(&sb, "| Savings rate | %s |\n", utils.FormatPercent(h.SavingsRatePercent))
	fmt.Fprintf(&sb, "| Card utilization | %s |\n", utils.FormatPercent(h.UtilizationPercent))
	fmt.Fprintf(&sb, "| Net cash flow | %s |\n", utils.FormatMoney(h.Summary.NetCashFlow))
	fmt.Fprintf(&sb, "| Recommended savings | %s |\n", utils.FormatMoney(h.RecommendedSavings))

	ef := h.EmergencyFund
	sb.WriteString("\n## Emergency fund\n\n")
	fmt.Fprintf(&sb, "%.1f of %.0f months covered (%s). ", ef.MonthsCovered, ef.TargetMonths, ef.Status)
	if ef.Shortfall > 0 {
		fmt.Fprintf(&sb, "Shortfall: %s.", utils.FormatMoney(ef.Shortfall))
	}
	sb.WriteString("\n")
	return sb.String()
}

// FindingsMarkdown renders risk findings as a severity-ordered table.
func FindingsMarkdown(findings []domain.RiskFinding) string {
	var sb strings.Builder
	sb.WriteString("# Risk findings\n\n")
	if len(findings) == 0 {
		sb.WriteString("No findings.\n")
		return sb.String()
	}
	sb.WriteString("| Severity | Finding | Detail |\n| :--- | :--- | :--- |\n")
	for _, f := range findings {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", f.Severity, cell(f.Title), cell(f.Message))
	}
	return sb.String()
}

// ProjectionMarkdown renders the yearly points of each projection profile.
func ProjectionMarkdown(p domain.NetWorthProjection) string {
	var sb strings.Builder
	sb.WriteString("# Net worth projection\n\n")
	fmt.Fprintf(&sb, "Starting from %s in assets and %s in liabilities, contributing %s a month.\n\n",
		utils.FormatMoney(p.StartingAssets), utils.FormatMoney(p.StartingLiabilities), utils.FormatMoney(p.MonthlyContribution))

	sb.WriteString("| Year |")
	for _, prof := range p.Profiles {
		fmt.Fprintf(&sb, " %s |", cell(prof.Profile.Name))
	}
	sb.WriteString("\n| :--- |")
	for range p.Profiles {
		sb.WriteString(" ---: |")
	}
	sb.WriteString("\n")
	if len(p.Profiles) == 0 {
		return sb.String()
	}
	for i, pt := range p.Profiles[0].Points {
		if pt.Month%12 != 0 {
			continue
		}
		fmt.Fprintf(&sb, "| %d |", pt.Month/12)
		for _, prof := range p.Profiles {
			if i < len(prof.Points) {
				fmt.Fprintf(&sb, " %s |", utils.FormatMoney(prof.Points[i].ProjectedNetWorth))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// PayoffMarkdown renders a payoff comparison.
func PayoffMarkdown(c domain.PayoffComparison) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Payoff of %s at %s\n\n", utils.FormatMoney(c.Balance), utils.FormatPercent(c.AnnualRate))
	sb.WriteString("| Plan | Payment | Months | Interest | Total paid |\n| :--- | ---: | ---: | ---: | ---: |\n")
	for _, row := range []struct {
		name string
		s    domain.PayoffScenario
	}{{"Base", c.Base}, {"Accelerated", c.Accelerated}} {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", row.name,
			utils.FormatMoney(row.s.MonthlyPayment), months(row.s.Months),
			utils.FormatMoney(row.s.TotalInterest), utils.FormatMoney(row.s.TotalPaid))
	}
	fmt.Fprintf(&sb, "\nThe extra payment saves %d months and %s in interest.\n", c.MonthsSaved, utils.FormatMoney(c.InterestSaved))
	return sb.String()
}

// CardPlanMarkdown renders the card payment recommendations.
func CardPlanMarkdown(p domain.CardPaymentPlan) string {
	var sb strings.Builder
	sb.WriteString("# Card payments\n\n")
	fmt.Fprintf(&sb, "Pool: %s (minimums %s, extra %s)\n\n",
		utils.FormatMoney(p.TotalPool), utils.FormatMoney(p.TotalMinimums), utils.FormatMoney(p.ExtraPool))
	if len(p.Rows) == 0 {
		sb.WriteString("No card carries a balance.\n")
		return sb.String()
	}
	sb.WriteString("| Card | Balance | APR | Minimum | Recommended |\n| :--- | ---: | ---: | ---: | ---: |\n")
	for _, r := range p.Rows {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", cell(r.Name),
			utils.FormatMoney(r.Balance), utils.FormatPercent(r.APR),
			utils.FormatMoney(r.MinimumPayment), utils.FormatMoney(r.RecommendedPayment))
	}
	return sb.String()
}

// FeedMarkdown renders feed rows.
func FeedMarkdown(rows []domain.FeedRow) string {
	var sb strings.Builder
	sb.WriteString("# Feed\n\n")
	if len(rows) == 0 {
		sb.WriteString("No records.\n")
		return sb.String()
	}
	sb.WriteString("| Date | Collection | Name | Amount |\n| :--- | :--- | :--- | ---: |\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", cell(r.Date), r.SourceCollectionName,
			cell(r.DisplayName()), utils.FormatMoney(r.SignedAmount))
	}
	return sb.String()
}

// CockpitMarkdown renders the planning cockpit.
func CockpitMarkdown(c domain.Cockpit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Cockpit as of %s\n\n", c.AsOf)

	f := c.Forecast
	sb.WriteString("## Forecast\n\n| Income | Committed | Planned | Optional | Remaining | Risk |\n| ---: | ---: | ---: | ---: | ---: | :--- |\n")
	fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n\n",
		utils.FormatMoney(f.Income), utils.FormatMoney(f.Committed), utils.FormatMoney(f.Planned),
		utils.FormatMoney(f.Optional), utils.FormatMoney(f.Remaining), f.RiskTier)

	if len(c.Budget) > 0 {
		sb.WriteString("## Budget\n\n| Category | Actual | Planned | Run rate | Status |\n| :--- | ---: | ---: | ---: | :--- |\n")
		for _, l := range c.Budget {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", cell(l.Category),
				utils.FormatMoney(l.Actual), utils.FormatMoney(l.Planned), utils.FormatMoney(l.RunRate), l.Status)
		}
		sb.WriteString("\n")
	}

	w := c.Waterfall
	fmt.Fprintf(&sb, "## Debt\n\n%s at %s blended APR, paying %s a month. Debt free in %s months.\n\n",
		utils.FormatMoney(w.TotalDebt), utils.FormatPercent(w.BlendedAPR), utils.FormatMoney(w.MonthlyPayment), months(w.DebtFreeMonth))

	sb.WriteString("## Scenarios\n\n| Scenario | Debt free month | Change | Runway | Change |\n| :--- | ---: | ---: | ---: | ---: |\n")
	for _, s := range c.Scenarios {
		fmt.Fprintf(&sb, "| %s | %s | %+d | %.2f | %+.2f |\n", cell(s.Name), months(s.DebtFreeMonth), s.DebtFreeMonthDelta, s.RunwayMonths, s.RunwayDelta)
	}

	sb.WriteString("\n## Checklist\n\n")
	for _, item := range c.Checklist {
		mark := " "
		if item.Done {
			mark = "x"
		}
		fmt.Fprintf(&sb, "- [%s] %s (%d)\n", mark, item.Label, item.Count)
	}
	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
}
