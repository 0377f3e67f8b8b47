package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError writes the status mapped from err. Server errors are logged
// and answered with fallback so internals do not leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", message))
	c.JSON(status, gin.H{"error": message})
}
