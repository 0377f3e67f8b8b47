package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/SscSPs/bcv_rates/internal/dto"
	"github.com/SscSPs/bcv_rates/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to the official BCV rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	refreshService      portssvc.RefreshSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, rs portssvc.RefreshSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		refreshService:      rs,
	}
}

// RegisterExchangeRateRoutes registers the exchange rate routes. The read
// routes are public; refresh additionally runs the given auth middleware.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, refreshService portssvc.RefreshSvc, auth ...gin.HandlerFunc) {
	h := newExchangeRateHandler(exchangeRateService, refreshService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("/latest", h.getLatestRates)
		exchangeRates.GET("/history", h.getHistory)
		exchangeRates.GET("/convert", h.convert)
		exchangeRates.POST("/refresh", append(auth, h.refreshRates)...)
	}
}

// getLatestRates godoc
// @Summary Latest official rates
// @Description Returns the latest persisted USD and EUR rates. A currency is null until its first snapshot is stored.
// @Tags exchange rates
// @Produce json
// @Success 200 {object} dto.LatestRatesResponse
// @Failure 500 {object} map[string]string "Failed to retrieve latest rates"
// @Router /exchange-rates/latest [get]
func (h *exchangeRateHandler) getLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	latest, err := h.exchangeRateService.GetLatestRates(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve latest rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToLatestRatesResponse(latest))
}

// getHistory godoc
// @Summary Historical official rates
// @Description Returns the daily series of a currency, newest first.
// @Tags exchange rates
// @Produce json
// @Param currency query string true "Currency code" Enums(USD, EUR)
// @Param limit query int false "Number of days (1-365, default 30)"
// @Success 200 {array} dto.HistoricalRateResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to retrieve rate history"
// @Router /exchange-rates/history [get]
func (h *exchangeRateHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query for GetHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	history, err := h.exchangeRateService.GetHistory(c.Request.Context(), q.Currency, q.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve rate history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryResponse(history))
}

// convert godoc
// @Summary Convert an amount with the latest official rate
// @Description Multiplies (to_ves) or divides (from_ves) the amount by the latest rate. Amount accepts "1.234,56" and "1,234.56".
// @Tags exchange rates
// @Produce json
// @Param currency query string true "Currency code" Enums(USD, EUR)
// @Param amount query string true "Amount to convert"
// @Param direction query string false "Conversion direction" Enums(to_ves, from_ves)
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid query or amount"
// @Failure 404 {object} map[string]string "No rate published yet"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ConvertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	conversion, err := h.exchangeRateService.Convert(c.Request.Context(), q)
	if err != nil {
		respondError(c, logger, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(*conversion))
}

// refreshRates godoc
// @Summary Run a refresh cycle now
// @Description Scrapes the BCV homepage and persists the snapshot. Joins the cycle already running, if any.
// @Tags exchange rates
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} dto.RefreshResponse "Refresh cycle failed"
// @Security BearerAuth
// @Router /exchange-rates/refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, _ := middleware.GetUserIDFromContext(c)
	logger.Info("Manual refresh requested", slog.String("user_id", userID))

	// other callers may be waiting on the same cycle
	ctx := context.WithoutCancel(c.Request.Context())
	outcome := h.refreshService.Run(ctx, domain.TriggerManual)

	status := http.StatusOK
	if !outcome.Succeeded() {
		status = http.StatusBadGateway
	}
	c.JSON(status, dto.ToRefreshResponse(outcome))
}
