package dto

import (
	"github.com/SscSPs/fincockpit/internal/core/domain"
	"github.com/SscSPs/fincockpit/internal/core/feed"
	"github.com/SscSPs/fincockpit/internal/core/loans"
	"github.com/SscSPs/fincockpit/internal/core/risk"
)

// PayoffEstimateRequest asks for the closed-form payoff estimate of one balance.
type PayoffEstimateRequest struct {
	Balance             *float64 `json:"balance" binding:"required"`
	MonthlyPayment      *float64 `json:"monthlyPayment" binding:"required"`
	InterestRatePercent *float64 `json:"interestRatePercent" binding:"required"`
}

type PayoffEstimateResponse struct {
	Months      float64 `json:"months"`
	WholeMonths int     `json:"wholeMonths"`
	Converges   bool    `json:"converges"`
}

// ToPayoffEstimateResponse converts an estimate in fractional months to its response.
func ToPayoffEstimateResponse(months float64) PayoffEstimateResponse {
	return PayoffEstimateResponse{
		Months:      months,
		WholeMonths: loans.WholeMonths(months),
		Converges:   months != domain.NonConvergentMonths,
	}
}

// ComparePayoffRequest compares a base payment with base plus extra.
type ComparePayoffRequest struct {
	Balance             *float64 `json:"balance" binding:"required"`
	InterestRatePercent *float64 `json:"interestRatePercent" binding:"required"`
	MonthlyPayment      *float64 `json:"monthlyPayment" binding:"required"`
	ExtraPayment        *float64 `json:"extraPayment" binding:"required"`
}

// ProjectionRequest projects net worth. Without profiles the three default profiles are used.
type ProjectionRequest struct {
	State    domain.Snapshot            `json:"state"`
	Profiles []domain.ProjectionProfile `json:"profiles"`
}

// FeedRequest builds the unified feed of State, filtered and sorted by Query. Limit pages
// the result; zero returns every row.
type FeedRequest struct {
	State     domain.Snapshot `json:"state"`
	Query     feed.Query      `json:"query"`
	Limit     int             `json:"limit" binding:"omitempty,min=0,max=500"`
	NextToken *string         `json:"nextToken"`
}

// FeedResponse holds one page of feed rows.
type FeedResponse struct {
	Rows      []domain.FeedRow `json:"rows"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// FindingsResponse lists the findings of a snapshot.
type FindingsResponse struct {
	Findings []domain.RiskFinding `json:"findings"`
}

// FindingsAsyncRequest mirrors the worker message.
type FindingsAsyncRequest struct {
	CurrentCollectionsState map[string]any `json:"currentCollectionsState"`
}

// DashboardResponse bundles the dashboard health block with the risk ratios behind it.
type DashboardResponse struct {
	domain.DashboardHealth
	RiskMetrics map[string]RatioResponse `json:"riskMetrics"`
}

// RatioResponse renders an undefined ratio as null.
type RatioResponse struct {
	Value   *float64 `json:"value"`
	Defined bool     `json:"defined"`
}

// ToDashboardResponse converts the dashboard block and risk ratios to their response.
func ToDashboardResponse(health domain.DashboardHealth, metrics risk.Metrics) DashboardResponse {
	ratios := make(map[string]RatioResponse, len(metrics))
	for name, r := range metrics {
		resp := RatioResponse{Defined: r.Defined}
		if r.Defined {
			v := r.Value
			resp.Value = &v
		}
		ratios[name] = resp
	}
	return DashboardResponse{DashboardHealth: health, RiskMetrics: ratios}
}
