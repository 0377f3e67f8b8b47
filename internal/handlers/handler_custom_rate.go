package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/SscSPs/bcv_rates/internal/dto"
	"github.com/SscSPs/bcv_rates/internal/middleware"
	"github.com/SscSPs/bcv_rates/internal/utils"
	"github.com/gin-gonic/gin"
)

// customRateHandler handles HTTP requests for user-defined rates.
type customRateHandler struct {
	customRateService portssvc.CustomRateSvcFacade
	posthogClient     *utils.PosthogClientWrapper
}

// RegisterCustomRateRoutes registers the custom rate routes. The group must
// already run the auth middleware.
func RegisterCustomRateRoutes(rg *gin.RouterGroup, customRateService portssvc.CustomRateSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	registerValidators()
	h := &customRateHandler{customRateService: customRateService, posthogClient: posthogClient}

	customRates := rg.Group("/custom-rates")
	{
		customRates.GET("", h.listCustomRates)
		customRates.POST("", h.createCustomRate)
		customRates.PATCH("/:id", h.updateCustomRate)
		customRates.DELETE("/:id", h.deleteCustomRate)
	}
}

// listCustomRates godoc
// @Summary List custom rates
// @Description Lists the caller's custom rates ordered by label, together with the per-user cap.
// @Tags custom rates
// @Produce json
// @Success 200 {object} dto.ListCustomRatesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list custom rates"
// @Security BearerAuth
// @Router /custom-rates [get]
func (h *customRateHandler) listCustomRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rates, err := h.customRateService.ListCustomRates(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list custom rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomRatesResponse(rates, h.customRateService.MaxPerUser()))
}

// createCustomRate godoc
// @Summary Create a custom rate
// @Description Saves a named rate for the caller. Labels are uppercased and must be unique per user.
// @Tags custom rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateCustomRateRequest true "Custom rate"
// @Success 201 {object} dto.CustomRateResponse
// @Failure 400 {object} map[string]string "Invalid label or rate"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Custom rate limit reached"
// @Failure 409 {object} map[string]string "Label already used"
// @Failure 500 {object} map[string]string "Failed to create custom rate"
// @Security BearerAuth
// @Router /custom-rates [post]
func (h *customRateHandler) createCustomRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCustomRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.customRateService.CreateCustomRate(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			middleware.PosthogEvent(c, h.posthogClient, "custom_rate_limit_reached", map[string]any{
				"max_per_user": h.customRateService.MaxPerUser(),
			})
		}
		respondError(c, logger, err, "Failed to create custom rate")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomRateResponse(created))
}

// updateCustomRate godoc
// @Summary Update a custom rate
// @Description Changes the label, the rate or both of a custom rate owned by the caller.
// @Tags custom rates
// @Accept json
// @Produce json
// @Param id path string true "Custom rate ID"
// @Param rate body dto.UpdateCustomRateRequest true "Fields to change"
// @Success 200 {object} dto.CustomRateResponse
// @Failure 400 {object} map[string]string "Invalid label or rate"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Custom rate not found"
// @Failure 409 {object} map[string]string "Label already used"
// @Failure 500 {object} map[string]string "Failed to update custom rate"
// @Security BearerAuth
// @Router /custom-rates/{id} [patch]
func (h *customRateHandler) updateCustomRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCustomRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCustomRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.customRateService.UpdateCustomRate(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update custom rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomRateResponse(updated))
}

// deleteCustomRate godoc
// @Summary Delete a custom rate
// @Tags custom rates
// @Produce json
// @Param id path string true "Custom rate ID"
// @Success 200 {object} dto.DeleteCustomRateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Custom rate not found"
// @Failure 500 {object} map[string]string "Failed to delete custom rate"
// @Security BearerAuth
// @Router /custom-rates/{id} [delete]
func (h *customRateHandler) deleteCustomRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.customRateService.DeleteCustomRate(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete custom rate")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteCustomRateResponse{OK: true})
}
