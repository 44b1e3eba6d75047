package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/fincockpit/internal/core/ports/services"
	"github.com/SscSPs/fincockpit/internal/dto"
	"github.com/SscSPs/fincockpit/internal/middleware"
	"github.com/gin-gonic/gin"
)

type findingsHandler struct {
	findingsService portssvc.FindingsSvcFacade
	timeout         time.Duration
}

// registerFindingsRoutes registers the risk findings routes. timeout bounds the wait for
// the findings worker; zero disables it.
func registerFindingsRoutes(rg *gin.RouterGroup, findingsService portssvc.FindingsSvcFacade, timeout time.Duration) {
	h := &findingsHandler{findingsService: findingsService, timeout: timeout}

	findings := rg.Group("/findings")
	{
		findings.POST("", h.evaluate)
		findings.POST("/async", h.evaluateAsync)
	}
}

// evaluate godoc
// @Summary Risk findings
// @Description Evaluates threshold rules, per-record drilldowns and singular checks; sorted by severity and capped at 50.
// @Tags findings
// @Accept  json
// @Produce  json
// @Param   request body dto.StateRequest true "Snapshot"
// @Success 200 {object} dto.FindingsResponse
// @Failure 400 {object} apperrors.AppError "Validation error"
// @Router /findings [post]
func (h *findingsHandler) evaluate(c *gin.Context) {
	var req dto.StateRequest
	if !bindJSON(c, &req, "evaluate findings") {
		return
	}
	findings, err := h.findingsService.EvaluateFindings(c.Request.Context(), req.State)
	if err != nil {
		respondError(c, err, "evaluate findings")
		return
	}
	c.JSON(http.StatusOK, dto.FindingsResponse{Findings: findings})
}

// evaluateAsync godoc
// @Summary Risk findings through the worker
// @Description Queues the raw collections state on the findings worker. Malformed state is reported in the error field with an empty findings list.
// @Tags findings
// @Accept  json
// @Produce  json
// @Param   request body dto.FindingsAsyncRequest true "Worker message"
// @Success 200 {object} worker.Response
// @Failure 504 {object} map[string]string "Worker timed out"
// @Router /findings/async [post]
func (h *findingsHandler) evaluateAsync(c *gin.Context) {
	var req dto.FindingsAsyncRequest
	if !bindJSON(c, &req, "evaluate findings") {
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	resp, err := h.findingsService.EvaluateFindingsAsync(ctx, req.CurrentCollectionsState)
	if err != nil {
		respondError(c, err, "evaluate findings")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Findings returned by worker",
		slog.String("correlation_id", resp.CorrelationID),
		slog.Int("count", len(resp.Findings)))
	c.JSON(http.StatusOK, resp)
}
