package loans_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/loans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEstimatedPayoffMonths(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		payment float64
		rate    float64
		want    float64
	}{
		{"no interest", 1000, 100, 0, 10},
		{"nothing owed", 0, 100, 5, 0},
		{"no payment", 1000, 0, 5, 0},
		{"payment below interest", 1000, 1, 24, 9999},
		{"payment equals interest", 1000, 20, 24, 9999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loans.CalculateEstimatedPayoffMonths(tt.balance, tt.payment, tt.rate))
		})
	}

	// 1000 at 12% with 100/month retires in a little over 10.5 months
	got := loans.CalculateEstimatedPayoffMonths(1000, 100, 12)
	assert.InDelta(t, 10.58, got, 0.01)
	assert.Equal(t, 11, loans.WholeMonths(got))
	assert.Equal(t, 10, loans.WholeMonths(10))
}

func TestSimulatePayoff(t *testing.T) {
	s := loans.SimulatePayoff(1000, 0, 100)
	assert.Equal(t, 10, s.Months)
	assert.Equal(t, 0.0, s.TotalInterest)
	assert.Equal(t, 1000.0, s.TotalPaid)
	assert.True(t, s.Converges())

	stuck := loans.SimulatePayoff(1000, 24, 20)
	assert.Equal(t, domain.NonConvergentMonths, stuck.Months)
	assert.True(t, math.IsInf(stuck.TotalInterest, 1))
	assert.False(t, stuck.Converges())

	// a tenth of a cent above interest would need more than MaxSimulationMonths
	slow := loans.SimulatePayoff(100000, 12, 1000.001)
	assert.Equal(t, domain.NonConvergentMonths, slow.Months)
}

func TestComparePayoffScenarios(t *testing.T) {
	cmp, err := loans.ComparePayoffScenarios(5000, 18, 150, 100)
	require.NoError(t, err)

	assert.True(t, cmp.Base.Converges())
	assert.True(t, cmp.Accelerated.Converges())
	assert.Greater(t, cmp.MonthsSaved, 0)
	assert.Greater(t, cmp.InterestSaved, 0.0)
	assert.Equal(t, cmp.Base.Months-cmp.Accelerated.Months, cmp.MonthsSaved)
}

func TestComparePayoffScenarios_NonConvergentBase(t *testing.T) {
	cmp, err := loans.ComparePayoffScenarios(10000, 24, 100, 500)
	require.NoError(t, err)

	assert.False(t, cmp.Base.Converges())
	assert.True(t, cmp.Accelerated.Converges())
	assert.Equal(t, 0, cmp.MonthsSaved)
	assert.Equal(t, 0.0, cmp.InterestSaved)

	raw, err := json.Marshal(cmp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"totalInterest":null`)
}

func TestComparePayoffScenarios_RejectsNegativeInput(t *testing.T) {
	_, err := loans.ComparePayoffScenarios(1000, 5, -10, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "monthlyPayment", appErr.Details["field"])
}

func TestRecommendCardPayments(t *testing.T) {
	cards := []domain.Record{
		{ID: "card-low", Kind: domain.KindCreditCard, Name: "Store", CurrentBalance: 1000, CreditLimit: 4000, MinimumPayment: 25, InterestRatePercent: 12},
		{ID: "card-high", Kind: domain.KindCreditCard, Name: "Travel", CurrentBalance: 6000, CreditLimit: 8000, MinimumPayment: 120, MonthlyPayment: 200, InterestRatePercent: 29.9},
		{ID: "card-paid", Kind: domain.KindCreditCard, Name: "Unused", CreditLimit: 2000, MinimumPayment: 0, InterestRatePercent: 35},
	}

	plan := loans.RecommendCardPayments(cards, 5000, 3000, 400)

	require.Len(t, plan.Rows, 2)
	assert.Equal(t, "card-high", plan.Rows[0].CardID, "highest APR first")
	assert.Equal(t, "card-low", plan.Rows[1].CardID)

	assert.Equal(t, 145.0, plan.TotalMinimums)
	assert.Equal(t, 225.0, plan.BaselinePool)
	assert.Equal(t, 560.0, plan.ExtraPool)
	assert.Equal(t, 785.0, plan.TotalPool)

	sum := 0.0
	for _, r := range plan.Rows {
		assert.GreaterOrEqual(t, r.RecommendedPayment, r.MinimumPayment)
		sum += r.RecommendedPayment
	}
	assert.InDelta(t, plan.TotalPool, sum, 0.02)
	assert.Greater(t, plan.Rows[0].RecommendedPayment, plan.Rows[1].RecommendedPayment)
}

func TestRecommendCardPayments_IdenticalCardsShareEqually(t *testing.T) {
	cards := []domain.Record{
		{ID: "b", Kind: domain.KindCreditCard, CurrentBalance: 0.0001, CreditLimit: 1e9, MinimumPayment: 10},
		{ID: "a", Kind: domain.KindCreditCard, CurrentBalance: 0.0001, CreditLimit: 1e9, MinimumPayment: 10},
	}
	plan := loans.RecommendCardPayments(cards, 1000, 0, 0)

	require.Len(t, plan.Rows, 2)
	assert.Equal(t, "a", plan.Rows[0].CardID, "ties on APR fall back to id")
	assert.Equal(t, plan.Rows[0].RecommendedPayment, plan.Rows[1].RecommendedPayment)
}

func TestRecommendCardPayments_NoCards(t *testing.T) {
	plan := loans.RecommendCardPayments(nil, 5000, 1000, 0)
	assert.NotNil(t, plan.Rows)
	assert.Empty(t, plan.Rows)
	assert.Equal(t, 0.0, plan.TotalPool)
}
