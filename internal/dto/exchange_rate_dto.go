package dto

import (
	"time"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LatestRateResponse is the latest official rate of one currency.
type LatestRateResponse struct {
	Rate      decimal.Decimal `json:"rate"`
	ValidAt   time.Time       `json:"validAt"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// LatestRatesResponse holds one entry per supported currency; null when nothing was persisted yet.
type LatestRatesResponse struct {
	USD *LatestRateResponse `json:"USD"`
	EUR *LatestRateResponse `json:"EUR"`
}

// HistoryQuery are the query parameters of the history endpoint.
type HistoryQuery struct {
	Currency string `form:"currency" binding:"required"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=365"`
}

// HistoricalRateResponse is one point of the history series.
type HistoricalRateResponse struct {
	Date string          `json:"date"` // YYYY-MM-DD
	Rate decimal.Decimal `json:"rate"`
}

// ConvertQuery are the query parameters of the conversion endpoint.
// Amount accepts locale formatted numbers such as "1.234,56".
type ConvertQuery struct {
	Currency  string `form:"currency" binding:"required"`
	Amount    string `form:"amount" binding:"required"`
	Direction string `form:"direction" binding:"omitempty,oneof=to_ves from_ves"`
}

// ConversionResponse is the result of a conversion.
type ConversionResponse struct {
	Currency  string          `json:"currency"`
	Direction string          `json:"direction"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
	Result    decimal.Decimal `json:"result"`
	ValidAt   string          `json:"validAt"`
}

func toLatestRateResponse(s *domain.RateSnapshot) *LatestRateResponse {
	if s == nil {
		return nil
	}
	return &LatestRateResponse{Rate: s.Rate, ValidAt: s.ValidAt, FetchedAt: s.FetchedAt}
}

// ToLatestRatesResponse converts domain.LatestRates to its response DTO
func ToLatestRatesResponse(l domain.LatestRates) LatestRatesResponse {
	return LatestRatesResponse{
		USD: toLatestRateResponse(l.USD),
		EUR: toLatestRateResponse(l.EUR),
	}
}

// ToHistoryResponse converts a history series to response DTOs
func ToHistoryResponse(rates []domain.HistoricalRate) []HistoricalRateResponse {
	res := make([]HistoricalRateResponse, len(rates))
	for i, r := range rates {
		res[i] = HistoricalRateResponse{Date: r.Date.Format(time.DateOnly), Rate: r.Rate}
	}
	return res
}

// ToConversionResponse converts a domain.Conversion to its response DTO
func ToConversionResponse(c domain.Conversion) ConversionResponse {
	return ConversionResponse{
		Currency:  string(c.Currency),
		Direction: string(c.Direction),
		Rate:      c.Rate,
		Amount:    c.Amount,
		Result:    c.Result,
		ValidAt:   c.ValidAt.Format(time.DateOnly),
	}
}
