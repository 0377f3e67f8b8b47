package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of exchange_rates: the latest official rate per (currency, valid_at).
type ExchangeRate struct {
	Currency  string          `json:"currency"`
	ValidAt   time.Time       `json:"validAt"` // DATE column
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// HistoricalExchangeRate is a row of historical_exchange_rates.
type HistoricalExchangeRate struct {
	Currency  string          `json:"currency"`
	Date      time.Time       `json:"date"` // DATE column
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
}
