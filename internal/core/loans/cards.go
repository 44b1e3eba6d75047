package loans

import (
	"math"
	"sort"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/metrics"
	"github.com/SscSPs/fincockpit/internal/utils"
)

// Weights and saturation points of the card priority score.
const (
	aprWeight         = 0.55
	utilizationWeight = 0.30
	balanceWeight     = 0.15

	aprCeiling     = 35.0
	balanceCeiling = 15000.0

	// ExtraPoolShare is the share of free cash flow routed to card paydown.
	ExtraPoolShare = 0.35
)

// CardUtilization is balance over limit in percent. A card without a limit but with a
// balance counts as fully used.
func CardUtilization(card domain.Record) float64 {
	limit := card.Limit()
	if limit <= 0 {
		if card.Balance() > 0 {
			return 100
		}
		return 0
	}
	return card.Balance() / limit * 100
}

// PriorityScore ranks a card for extra payments; APR dominates, then utilization and balance.
func PriorityScore(card domain.Record) float64 {
	return aprWeight*math.Min(1, card.InterestRatePercent/aprCeiling) +
		utilizationWeight*math.Min(1, CardUtilization(card)/100) +
		balanceWeight*math.Min(1, card.Balance()/balanceCeiling)
}

// RecommendCardPayments splits a payment pool across the cards carrying a balance. Every
// card receives its minimum; the pool above the minimums is shared by priority score,
// equally when all scores are zero. Rows are ordered by APR, highest first.
func RecommendCardPayments(cards []domain.Record, income, expenses, nonCardMinimums float64) domain.CardPaymentPlan {
	var active []domain.Record
	for _, c := range cards {
		if c.Balance() > 0 {
			active = append(active, c)
		}
	}

	var minimums, current, scores []float64
	for _, c := range active {
		minimums = append(minimums, c.MinimumPayment)
		current = append(current, c.ScheduledPayment())
		scores = append(scores, PriorityScore(c))
	}
	totalMinimums := utils.SumMoney(minimums...)
	baseline := math.Max(utils.SumMoney(current...), totalMinimums)
	extra := utils.RoundMoney(math.Max(0, ExtraPoolShare*(income-expenses-nonCardMinimums)))
	if len(active) == 0 {
		extra = 0
	}
	total := utils.RoundMoney(baseline + extra)
	above := math.Max(0, total-totalMinimums)

	totalScore := 0.0
	for _, s := range scores {
		totalScore += s
	}

	rows := make([]domain.CardRecommendation, 0, len(active))
	for i, c := range active {
		share := 1 / float64(len(active))
		if totalScore > 0 {
			share = scores[i] / totalScore
		}
		recommended := utils.RoundMoney(c.MinimumPayment + above*share)
		rows = append(rows, domain.CardRecommendation{
			CardID:                c.ID,
			Name:                  c.DisplayName(),
			Balance:               c.Balance(),
			APR:                   c.InterestRatePercent,
			UtilizationPercent:    utils.RoundTo(CardUtilization(c), 2),
			MinimumPayment:        c.MinimumPayment,
			CurrentPayment:        c.ScheduledPayment(),
			PriorityScore:         utils.RoundTo(scores[i], 4),
			RecommendedPayment:    recommended,
			EstimatedPayoffMonths: utils.RoundTo(CalculateEstimatedPayoffMonths(c.Balance(), recommended, c.InterestRatePercent), 1),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].APR != rows[j].APR {
			return rows[i].APR > rows[j].APR
		}
		return rows[i].CardID < rows[j].CardID
	})

	return domain.CardPaymentPlan{
		BaselinePool:  utils.RoundMoney(baseline),
		ExtraPool:     extra,
		TotalPool:     total,
		TotalMinimums: totalMinimums,
		Rows:          rows,
	}
}

// RecommendCardPaymentsForState feeds RecommendCardPayments from a snapshot: income and
// expenses come from the monthly totals, non-card minimums from debts, credit and loans.
func RecommendCardPaymentsForState(state domain.Snapshot) domain.CardPaymentPlan {
	t := metrics.ComputeTotals(state)
	var nonCard []float64
	for _, name := range domain.LiabilityCollections {
		if name == domain.CollectionCreditCards {
			continue
		}
		rows, _ := state.Collection(name)
		for _, r := range rows {
			nonCard = append(nonCard, r.ScheduledPayment())
		}
	}
	return RecommendCardPayments(state.CreditCards, t.Income, t.Expenses, utils.SumMoney(nonCard...))
}
