package services

import (
	"context"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/SscSPs/bcv_rates/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for official rate data
type ExchangeRateReaderSvc interface {
	// GetLatestRates returns the latest snapshot of every supported currency.
	GetLatestRates(ctx context.Context) (domain.LatestRates, error)

	// GetHistory returns up to limit points of a currency's series, newest first.
	// A zero limit means the default.
	GetHistory(ctx context.Context, currency string, limit int) ([]domain.HistoricalRate, error)
}

// ExchangeRateConverterSvc converts amounts with the latest official rate
type ExchangeRateConverterSvc interface {
	Convert(ctx context.Context, req dto.ConvertQuery) (*domain.Conversion, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateConverterSvc
}
