package risk

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/utils"
)

// Rule is one threshold rule. Rules whose ids differ only by the trailing
// -gt-N / -lt-N tier belong to the same family.
type Rule struct {
	ID         string
	Metric     string
	Comparison domain.Comparison
	Threshold  float64
	Severity   domain.Severity
	Title      string
}

var tierSuffix = regexp.MustCompile(`-(gt|lt)-[\d.]+$`)

// Family strips the threshold tier from a rule id.
func Family(id string) string {
	return tierSuffix.ReplaceAllString(id, "")
}

func (r Rule) triggered(v float64) bool {
	if r.Comparison == domain.GreaterThan {
		return v > r.Threshold
	}
	return v < r.Threshold
}

// tighter reports whether r is a stricter tier than other within the same family.
func (r Rule) tighter(other Rule) bool {
	if r.Comparison == domain.GreaterThan {
		return r.Threshold > other.Threshold
	}
	return r.Threshold < other.Threshold
}

type tier struct {
	threshold float64
	severity  domain.Severity
}

func family(base, metric, title string, cmp domain.Comparison, tiers ...tier) []Rule {
	op := "gt"
	if cmp == domain.LessThan {
		op = "lt"
	}
	rules := make([]Rule, 0, len(tiers))
	for _, t := range tiers {
		rules = append(rules, Rule{
			ID:         fmt.Sprintf("%s-%s-%s", base, op, strconv.FormatFloat(t.threshold, 'f', -1, 64)),
			Metric:     metric,
			Comparison: cmp,
			Threshold:  t.threshold,
			Severity:   t.severity,
			Title:      title,
		})
	}
	return rules
}

func concat(groups ...[]Rule) []Rule {
	var out []Rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

const (
	high   = domain.SeverityHigh
	medium = domain.SeverityMedium
	low    = domain.SeverityLow
	gt     = domain.GreaterThan
	lt     = domain.LessThan
)

// Rules is the ordered threshold table.
var Rules = concat(
	family("dti", MetricDTI, "Debt-to-income ratio", gt,
		tier{20, low}, tier{30, medium}, tier{36, high}, tier{43, high}),
	family("utilization", MetricUtilization, "Revolving credit utilization", gt,
		tier{30, low}, tier{50, medium}, tier{75, high}, tier{90, high}),
	family("savings-rate", MetricSavingsRate, "Savings rate", lt,
		tier{10, low}, tier{5, medium}, tier{0, high}),
	family("emergency-fund", MetricEmergencyFundMonths, "Emergency fund coverage", lt,
		tier{6, low}, tier{3, medium}, tier{1, high}),
	family("debt-service-coverage", MetricDebtServiceCoverage, "Debt service coverage", lt,
		tier{2, low}, tier{1.5, medium}, tier{1, high}),
	family("liquidity-ratio", MetricLiquidityRatio, "Liquidity against revolving debt", lt,
		tier{1, medium}, tier{0.5, high}),
	family("ltv", MetricLTV, "Loan-to-value on secured debt", gt,
		tier{80, medium}, tier{100, high}),
	family("debt-to-asset", MetricDebtToAsset, "Debt-to-asset ratio", gt,
		tier{50, low}, tier{80, medium}, tier{100, high}),
	family("expense-ratio", MetricExpenseRatio, "Expenses against income", gt,
		tier{70, low}, tier{85, medium}, tier{100, high}),
	family("housing-ratio", MetricHousingRatio, "Housing cost against income", gt,
		tier{30, medium}, tier{40, high}),
	family("revolving-share", MetricRevolvingShare, "Share of debt on revolving credit", gt,
		tier{50, low}, tier{75, medium}),
	family("weighted-apr", MetricWeightedAPR, "Weighted average APR", gt,
		tier{10, low}, tier{18, medium}, tier{25, high}),
	family("net-worth-to-income", MetricNetWorthToIncome, "Net worth against annual income", lt,
		tier{0.5, low}, tier{0, high}),
	family("goal-funding", MetricGoalFundingRatio, "Goal funding progress", lt,
		tier{25, low}, tier{10, medium}),
	family("min-payment-share", MetricMinPaymentShare, "Card minimums against income", gt,
		tier{10, low}, tier{20, medium}, tier{30, high}),
)

var percentMetrics = map[string]bool{
	MetricDTI:              true,
	MetricUtilization:      true,
	MetricSavingsRate:      true,
	MetricLTV:              true,
	MetricDebtToAsset:      true,
	MetricExpenseRatio:     true,
	MetricHousingRatio:     true,
	MetricRevolvingShare:   true,
	MetricWeightedAPR:      true,
	MetricGoalFundingRatio: true,
	MetricMinPaymentShare:  true,
}

func formatMetric(metric string, v float64) string {
	switch {
	case percentMetrics[metric]:
		return utils.FormatPercent(v)
	case metric == MetricEmergencyFundMonths:
		return fmt.Sprintf("%.1f months", v)
	case metric == MetricDiscretionaryBuffer:
		return utils.FormatMoney(v)
	}
	return fmt.Sprintf("%.2fx", v)
}

func (r Rule) finding(v float64) domain.RiskFinding {
	dir := "above"
	if r.Comparison == domain.LessThan {
		dir = "below"
	}
	return domain.RiskFinding{
		ID:          r.ID,
		Family:      Family(r.ID),
		Title:       r.Title,
		Message:     fmt.Sprintf("%s is %s, %s the %s threshold.", r.Title, formatMetric(r.Metric, v), dir, formatMetric(r.Metric, r.Threshold)),
		Severity:    r.Severity,
		Source:      domain.SourceThreshold,
		Metric:      r.Metric,
		MetricValue: v,
		Threshold:   r.Threshold,
		Comparison:  r.Comparison,
	}
}

// EvaluateThresholds runs the rule table over m and keeps, per family, only the
// tightest triggered rule. Families are returned in table order.
func EvaluateThresholds(m Metrics) []domain.RiskFinding {
	var order []string
	best := make(map[string]Rule)
	for _, r := range Rules {
		v, ok := m[r.Metric]
		if !ok || !v.Defined || !r.triggered(v.Value) {
			continue
		}
		fam := Family(r.ID)
		prev, seen := best[fam]
		if !seen {
			order = append(order, fam)
		}
		if !seen || r.tighter(prev) {
			best[fam] = r
		}
	}

	out := make([]domain.RiskFinding, 0, len(order))
	for _, fam := range order {
		r := best[fam]
		out = append(out, r.finding(m[r.Metric].Value))
	}
	return out
}
