package metrics_test

import (
	"testing"

	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/metrics"
	"github.com/stretchr/testify/assert"
)

func sampleState() domain.Snapshot {
	s := domain.DefaultSnapshot()
	s.Income = []domain.Record{{ID: "inc-1", Kind: domain.KindIncome, Category: "Salary", Amount: 5000}}
	s.Expenses = []domain.Record{
		{ID: "exp-1", Kind: domain.KindExpense, Category: "Rent", Amount: 1500},
		{ID: "exp-2", Kind: domain.KindExpense, Category: "Groceries", Amount: 499.99},
		{ID: "exp-3", Kind: domain.KindExpense, Category: "Debt Payment", Amount: 150},
	}
	s.Assets = []domain.Record{
		{ID: "ast-1", Kind: domain.KindAsset, Amount: 6000},
		{ID: "ast-2", Kind: domain.KindAsset, RecordType: "savings", Amount: 250},
	}
	s.AssetHoldings = []domain.Record{
		{ID: "hold-1", Kind: domain.KindAssetHolding, AssetMarketValue: 300000, AssetValueOwed: 240000},
	}
	s.CreditCards = []domain.Record{
		{ID: "card-1", Kind: domain.KindCreditCard, CurrentBalance: 2000, CreditLimit: 5000, MinimumPayment: 50, MonthlyPayment: 150},
	}
	s.Loans = []domain.Record{
		{ID: "loan-1", Kind: domain.KindLoan, Amount: 12000, MonthlyPayment: 350},
	}
	return s
}

func TestSummarizeMonthly(t *testing.T) {
	got := metrics.SummarizeMonthly(sampleState())

	assert.Equal(t, 5000.0, got.Income)
	assert.Equal(t, 1999.99, got.Expenses, "debt payment rows are counted through the liabilities")
	assert.Equal(t, 500.0, got.DebtPayments)
	assert.Equal(t, 250.0, got.SavingsTransfers)
	assert.Equal(t, 2250.01, got.NetCashFlow)
}

func TestComputeEmergencyFundCoverage(t *testing.T) {
	tests := []struct {
		name       string
		state      func() domain.Snapshot
		wantMonths float64
		wantStatus string
	}{
		{
			name:       "sample",
			state:      sampleState,
			wantMonths: 2.5,
			wantStatus: "low",
		},
		{
			name:       "empty",
			state:      domain.DefaultSnapshot,
			wantMonths: 0,
			wantStatus: "critical",
		},
		{
			name: "nothing to cover",
			state: func() domain.Snapshot {
				s := domain.DefaultSnapshot()
				s.Assets = []domain.Record{{Kind: domain.KindAsset, Amount: 100}}
				return s
			},
			wantMonths: 999,
			wantStatus: "strong",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.ComputeEmergencyFundCoverage(tt.state())
			assert.Equal(t, tt.wantMonths, got.MonthsCovered)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, metrics.EmergencyFundTargetMonths, got.TargetMonths)
		})
	}
}

func TestRecommendSavings(t *testing.T) {
	// surplus 2500.01, 20% of income 1000, shortfall (14999.94 - 6250)/12 ≈ 729
	assert.Equal(t, 1000.0, metrics.RecommendSavings(sampleState()))

	s := sampleState()
	s.Income = []domain.Record{{Kind: domain.KindIncome, Amount: 2000}}
	assert.Equal(t, 0.0, metrics.RecommendSavings(s), "no surplus, nothing to save")
}

func TestComputeDashboardHealth(t *testing.T) {
	h := metrics.ComputeDashboardHealth(sampleState())

	assert.Equal(t, 6250.0+60000-14000, h.NetWorth)
	assert.Equal(t, 14000.0, h.TotalLiabilities)
	assert.Equal(t, 10.0, h.DebtToIncomePercent)
	assert.Equal(t, 40.0, h.UtilizationPercent)
	assert.Equal(t, 50.0, h.SavingsRatePercent)
	assert.Equal(t, 75, h.HealthScore)
	assert.Equal(t, "low", h.EmergencyFund.Status)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, metrics.Percent(10, 0))
	assert.Equal(t, 33.33, metrics.Percent(1, 3))
}
