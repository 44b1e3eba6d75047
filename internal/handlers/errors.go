package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fincockpit/internal/apperrors"
	"github.com/SscSPs/fincockpit/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bindJSON binds the request body into req. On failure it writes a VALIDATION error and
// returns false.
func bindJSON(c *gin.Context, req any, operation string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, apperrors.NewValidation(
			"Invalid request format: "+err.Error(),
			map[string]any{"operation": operation},
		))
		return false
	}
	return true
}

// respondError maps a service error to its HTTP response. VALIDATION errors, including
// unknown ids, are the caller's to fix and map to 400 with the error body as is.
func respondError(c *gin.Context, err error, operation string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if appErr, ok := apperrors.AsAppError(err); ok && errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Validation error in "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, appErr)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("Timed out in "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Timed out while trying to " + operation})
		return
	}
	logger.Error("Failed to "+operation, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + operation})
}
