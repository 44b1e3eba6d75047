package handlers

import (
	"net/http"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
	"github.com/SscSPs/fincockpit/internal/dto"
	"github.com/SscSPs/fincockpit/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// analyticsHandler handles the read-only computations over a snapshot.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{analyticsService: as}
}

// registerAnalyticsRoutes registers the analytics routes. cached wraps the routes whose
// output depends on the request body alone.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade, cached ...gin.HandlerFunc) {
	h := newAnalyticsHandler(analyticsService)
	with := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, cached...), handler)
	}

	rg.POST("/metrics/dashboard", with(h.dashboard)...)
	rg.POST("/loans/payoff", with(h.estimatePayoff)...)
	rg.POST("/loans/compare", with(h.comparePayoff)...)
	rg.POST("/cards/recommendations", with(h.recommendCards)...)
	rg.POST("/projections/net-worth", with(h.projectNetWorth)...)
	rg.POST("/feed", with(h.feed)...)
	rg.POST("/cockpit", h.cockpit)
}

// dashboard godoc
// @Summary Dashboard health
// @Description Net worth, debt-to-income, savings rate, utilization, emergency fund coverage, health score and risk ratios.
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   request body dto.StateRequest true "Snapshot"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /metrics/dashboard [post]
func (h *analyticsHandler) dashboard(c *gin.Context) {
	var req dto.StateRequest
	if !bindJSON(c, &req, "compute dashboard") {
		return
	}
	ctx := c.Request.Context()
	health, err := h.analyticsService.Dashboard(ctx, req.State)
	if err != nil {
		respondError(c, err, "compute dashboard")
		return
	}
	ratios, err := h.analyticsService.RiskMetrics(ctx, req.State)
	if err != nil {
		respondError(c, err, "compute risk metrics")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(health, ratios))
}

// estimatePayoff godoc
// @Summary Estimate payoff months
// @Description Closed-form amortization estimate. Payments that never retire the balance report 9999 months.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   request body dto.PayoffEstimateRequest true "Balance, payment and APR"
// @Success 200 {object} dto.PayoffEstimateResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /loans/payoff [post]
func (h *analyticsHandler) estimatePayoff(c *gin.Context) {
	var req dto.PayoffEstimateRequest
	if !bindJSON(c, &req, "estimate payoff") {
		return
	}
	months, err := h.analyticsService.EstimatePayoffMonths(c.Request.Context(), *req.Balance, *req.MonthlyPayment, *req.InterestRatePercent)
	if err != nil {
		respondError(c, err, "estimate payoff")
		return
	}
	c.JSON(http.StatusOK, dto.ToPayoffEstimateResponse(months))
}

// comparePayoff godoc
// @Summary Compare payoff scenarios
// @Description Simulates the base payment and base plus extra month by month and reports months and interest saved.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   request body dto.ComparePayoffRequest true "Balance, APR, payment and extra payment"
// @Success 200 {object} domain.PayoffComparison
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /loans/compare [post]
func (h *analyticsHandler) comparePayoff(c *gin.Context) {
	var req dto.ComparePayoffRequest
	if !bindJSON(c, &req, "compare payoff scenarios") {
		return
	}
	cmp, err := h.analyticsService.ComparePayoff(c.Request.Context(), *req.Balance, *req.InterestRatePercent, *req.MonthlyPayment, *req.ExtraPayment)
	if err != nil {
		respondError(c, err, "compare payoff scenarios")
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// recommendCards godoc
// @Summary Recommend card payments
// @Description Avalanche-weighted allocation of the card payment pool.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   request body dto.StateRequest true "Snapshot"
// @Success 200 {object} domain.CardPaymentPlan
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /cards/recommendations [post]
func (h *analyticsHandler) recommendCards(c *gin.Context) {
	var req dto.StateRequest
	if !bindJSON(c, &req, "recommend card payments") {
		return
	}
	plan, err := h.analyticsService.RecommendCardPayments(c.Request.Context(), req.State)
	if err != nil {
		respondError(c, err, "recommend card payments")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// projectNetWorth godoc
// @Summary Project net worth
// @Description 120-month projection under the conservative, base and accelerated profiles, or the supplied ones.
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   request body dto.ProjectionRequest true "Snapshot and optional profiles"
// @Success 200 {object} domain.NetWorthProjection
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /projections/net-worth [post]
func (h *analyticsHandler) projectNetWorth(c *gin.Context) {
	var req dto.ProjectionRequest
	if !bindJSON(c, &req, "project net worth") {
		return
	}
	proj, err := h.analyticsService.ProjectNetWorth(c.Request.Context(), req.State, req.Profiles)
	if err != nil {
		respondError(c, err, "project net worth")
		return
	}
	c.JSON(http.StatusOK, proj)
}

// feed godoc
// @Summary Unified feed
// @Description Every record with its source collection and signed amount, searched, filtered and sorted. Pages of limit rows are chained through nextToken.
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   request body dto.FeedRequest true "Snapshot and query"
// @Success 200 {object} dto.FeedResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /feed [post]
func (h *analyticsHandler) feed(c *gin.Context) {
	var req dto.FeedRequest
	if !bindJSON(c, &req, "build feed") {
		return
	}
	rows, err := h.analyticsService.Feed(c.Request.Context(), req.State, req.Query)
	if err != nil {
		respondError(c, err, "build feed")
		return
	}
	page, next, err := pagination.Paginate(rows, req.Limit, req.NextToken, pagination.Scope(req.Query))
	if err != nil {
		respondError(c, apperrors.NewValidation(err.Error(), map[string]any{"field": "nextToken"}), "build feed")
		return
	}
	c.JSON(http.StatusOK, dto.FeedResponse{Rows: page, NextToken: next})
}

// cockpit godoc
// @Summary Planning cockpit
// @Description Budget against actuals, recurring baseline, forecast, debt waterfall, goal templates, scenarios, risk provenance and checklist as of today.
// @Tags analytics
// @Accept  json
// @Produce  json
// @Param   request body dto.StateRequest true "Snapshot"
// @Success 200 {object} domain.Cockpit
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /cockpit [post]
func (h *analyticsHandler) cockpit(c *gin.Context) {
	var req dto.StateRequest
	if !bindJSON(c, &req, "build cockpit") {
		return
	}
	view, err := h.analyticsService.Cockpit(c.Request.Context(), req.State)
	if err != nil {
		respondError(c, err, "build cockpit")
		return
	}
	c.JSON(http.StatusOK, view)
}
