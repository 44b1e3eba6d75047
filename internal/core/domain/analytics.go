package domain

import (
	"encoding/json"
	"math"
)

// MonthlySummary aggregates one month of cash flow.
type MonthlySummary struct {
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	DebtPayments     float64 `json:"debtPayments"`
	SavingsTransfers float64 `json:"savingsTransfers"`
	NetCashFlow      float64 `json:"netCashFlow"`
}

// EmergencyFundCoverage describes how many months of essential outflow liquid assets cover.
type EmergencyFundCoverage struct {
	LiquidAssets          float64 `json:"liquidAssets"`
	EssentialMonthlySpend float64 `json:"essentialMonthlySpend"`
	MonthsCovered         float64 `json:"monthsCovered"`
	TargetMonths          float64 `json:"targetMonths"`
	Shortfall             float64 `json:"shortfall"`
	Status                string  `json:"status"`
}

// DashboardHealth is the headline metric block of the dashboard.
type DashboardHealth struct {
	NetWorth            float64               `json:"netWorth"`
	TotalAssets         float64               `json:"totalAssets"`
	TotalLiabilities    float64               `json:"totalLiabilities"`
	DebtToIncomePercent float64               `json:"debtToIncomePercent"`
	SavingsRatePercent  float64               `json:"savingsRatePercent"`
	UtilizationPercent  float64               `json:"utilizationPercent"`
	HealthScore         int                   `json:"healthScore"`
	Summary             MonthlySummary        `json:"summary"`
	EmergencyFund       EmergencyFundCoverage `json:"emergencyFund"`
	RecommendedSavings  float64               `json:"recommendedSavings"`
}

// NonConvergentMonths is reported when a payment can never retire a balance.
const NonConvergentMonths = 9999

// PayoffScenario is the outcome of one iterative payoff simulation.
// Non-convergent scenarios report NonConvergentMonths and +Inf totals.
type PayoffScenario struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	Months         int     `json:"months"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPaid      float64 `json:"totalPaid"`
}

// Converges reports whether the scenario retires the balance.
func (p PayoffScenario) Converges() bool {
	return !math.IsInf(p.TotalPaid, 1)
}

// MarshalJSON renders infinite totals as null.
func (p PayoffScenario) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		MonthlyPayment float64  `json:"monthlyPayment"`
		Months         int      `json:"months"`
		TotalInterest  *float64 `json:"totalInterest"`
		TotalPaid      *float64 `json:"totalPaid"`
		Converges      bool     `json:"converges"`
	}{
		MonthlyPayment: p.MonthlyPayment,
		Months:         p.Months,
		TotalInterest:  finitePtr(p.TotalInterest),
		TotalPaid:      finitePtr(p.TotalPaid),
		Converges:      p.Converges(),
	})
}

func finitePtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// PayoffComparison compares a base payment against base plus an extra payment.
type PayoffComparison struct {
	Balance       float64        `json:"balance"`
	AnnualRate    float64        `json:"annualRatePercent"`
	Base          PayoffScenario `json:"base"`
	Accelerated   PayoffScenario `json:"accelerated"`
	MonthsSaved   int            `json:"monthsSaved"`
	InterestSaved float64        `json:"interestSaved"`
}

// CardRecommendation is one row of the avalanche-weighted card payment plan.
type CardRecommendation struct {
	CardID                string  `json:"cardId"`
	Name                  string  `json:"name"`
	Balance               float64 `json:"balance"`
	APR                   float64 `json:"apr"`
	UtilizationPercent    float64 `json:"utilizationPercent"`
	MinimumPayment        float64 `json:"minimumPayment"`
	CurrentPayment        float64 `json:"currentPayment"`
	PriorityScore         float64 `json:"priorityScore"`
	RecommendedPayment    float64 `json:"recommendedPayment"`
	EstimatedPayoffMonths float64 `json:"estimatedPayoffMonths"`
}

// CardPaymentPlan is the full avalanche recommendation.
type CardPaymentPlan struct {
	BaselinePool  float64              `json:"baselinePool"`
	ExtraPool     float64              `json:"extraPool"`
	TotalPool     float64              `json:"totalPool"`
	TotalMinimums float64              `json:"totalMinimums"`
	Rows          []CardRecommendation `json:"rows"`
}

// ProjectionProfile parameterises one net-worth projection track.
type ProjectionProfile struct {
	Name                       string  `json:"name"`
	SavingsPaceMultiplier      float64 `json:"savingsPaceMultiplier"`
	AnnualAssetGrowthPercent   float64 `json:"annualAssetGrowthPercent"`
	DebtPaymentExtraPercent    float64 `json:"debtPaymentExtraPercent"`
	AprStressAdjustmentPercent float64 `json:"aprStressAdjustmentPercent"`
}

// ProjectionPoint is a projection sampled at one horizon.
type ProjectionPoint struct {
	Month             int     `json:"month"`
	ProjectedAssets   float64 `json:"projectedAssets"`
	ProjectedDebt     float64 `json:"projectedDebt"`
	ProjectedNetWorth float64 `json:"projectedNetWorth"`
}

// ProfileProjection holds every sampled horizon of one profile.
type ProfileProjection struct {
	Profile ProjectionProfile `json:"profile"`
	Points  []ProjectionPoint `json:"points"`
}

// NetWorthProjection is the three-profile projection result.
type NetWorthProjection struct {
	StartingAssets      float64             `json:"startingAssets"`
	StartingLiabilities float64             `json:"startingLiabilities"`
	MonthlyContribution float64             `json:"monthlyContribution"`
	Profiles            []ProfileProjection `json:"profiles"`
}
