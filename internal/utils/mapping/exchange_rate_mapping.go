package mapping

import (
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/SscSPs/bcv_rates/internal/models"
)

// ToModelExchangeRate converts a domain RateSnapshot to a model ExchangeRate
func ToModelExchangeRate(d domain.RateSnapshot) models.ExchangeRate {
	return models.ExchangeRate{
		Currency:  string(d.Currency),
		ValidAt:   domain.DateOnly(d.ValidAt),
		Rate:      d.Rate,
		FetchedAt: d.FetchedAt,
	}
}

// ToDomainRateSnapshot converts a model ExchangeRate to a domain RateSnapshot
func ToDomainRateSnapshot(m models.ExchangeRate) domain.RateSnapshot {
	return domain.RateSnapshot{
		Currency:  domain.CurrencyCode(m.Currency),
		ValidAt:   domain.DateOnly(m.ValidAt),
		Rate:      m.Rate,
		FetchedAt: m.FetchedAt,
	}
}

// ToModelHistoricalExchangeRate converts a domain HistoricalRate to its model
func ToModelHistoricalExchangeRate(d domain.HistoricalRate) models.HistoricalExchangeRate {
	return models.HistoricalExchangeRate{
		Currency:  string(d.Currency),
		Date:      domain.DateOnly(d.Date),
		Rate:      d.Rate,
		FetchedAt: d.FetchedAt,
	}
}

// ToDomainHistoricalRate converts a model HistoricalExchangeRate to a domain HistoricalRate
func ToDomainHistoricalRate(m models.HistoricalExchangeRate) domain.HistoricalRate {
	return domain.HistoricalRate{
		Currency:  domain.CurrencyCode(m.Currency),
		Date:      domain.DateOnly(m.Date),
		Rate:      m.Rate,
		FetchedAt: m.FetchedAt,
	}
}

// ToDomainHistoricalRateSlice converts a slice of models to domain historical rates
func ToDomainHistoricalRateSlice(ms []models.HistoricalExchangeRate) []domain.HistoricalRate {
	out := make([]domain.HistoricalRate, len(ms))
	for i, m := range ms {
		out[i] = ToDomainHistoricalRate(m)
	}
	return out
}
