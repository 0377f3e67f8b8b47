package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is the latest known official rate of a currency for a given valid date.
// There is at most one snapshot per (Currency, ValidAt).
type RateSnapshot struct {
	Currency  CurrencyCode    `json:"currency"`
	ValidAt   time.Time       `json:"validAt"`   // calendar date, stored at midnight
	Rate      decimal.Decimal `json:"rate"`      // Bolívares per unit of Currency
	FetchedAt time.Time       `json:"fetchedAt"` // instant the scrape completed
}

// HistoricalRate is one point of the per-currency time series.
type HistoricalRate struct {
	Currency  CurrencyCode    `json:"currency"`
	Date      time.Time       `json:"date"`
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// ScrapedSnapshot is the complete result of one successful scrape.
// It is only ever persisted as a whole.
type ScrapedSnapshot struct {
	ValidAt   time.Time
	USD       decimal.Decimal
	EUR       decimal.Decimal
	FetchedAt time.Time
}

// Rates returns the snapshot rates keyed by currency.
func (s ScrapedSnapshot) Rates() map[CurrencyCode]decimal.Decimal {
	return map[CurrencyCode]decimal.Decimal{
		USD: s.USD,
		EUR: s.EUR,
	}
}

// LatestRates holds the latest snapshot per currency; nil means no rate has been persisted yet.
type LatestRates struct {
	USD *RateSnapshot `json:"USD"`
	EUR *RateSnapshot `json:"EUR"`
}

// Get returns the snapshot for the given currency.
func (l LatestRates) Get(code CurrencyCode) *RateSnapshot {
	switch code {
	case USD:
		return l.USD
	case EUR:
		return l.EUR
	}
	return nil
}

// ConversionDirection says which side of a conversion is in Bolívares.
type ConversionDirection string

const (
	// ToVES converts an amount of foreign currency into Bolívares.
	ToVES ConversionDirection = "to_ves"
	// FromVES converts an amount of Bolívares into the foreign currency.
	FromVES ConversionDirection = "from_ves"
)

// Conversion is the result of converting an amount with the latest official rate.
type Conversion struct {
	Currency  CurrencyCode
	Direction ConversionDirection
	Rate      decimal.Decimal
	Amount    decimal.Decimal
	Result    decimal.Decimal
	ValidAt   time.Time
}
