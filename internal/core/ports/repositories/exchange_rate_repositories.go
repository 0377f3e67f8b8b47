package repositories

import (
	"context"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeRateReader defines read operations for official rate data
type ExchangeRateReader interface {
	// GetLatest returns the most recent snapshot for a currency, or nil if none was ever persisted.
	GetLatest(ctx context.Context, currency domain.CurrencyCode) (*domain.RateSnapshot, error)

	// GetHistory returns up to limit historical rates, newest first.
	GetHistory(ctx context.Context, currency domain.CurrencyCode, limit int) ([]domain.HistoricalRate, error)
}

// ExchangeRateWriter defines write operations for official rate data
type ExchangeRateWriter interface {
	// SaveSnapshot upserts the current and historical rows of every currency in one transaction.
	SaveSnapshot(ctx context.Context, snapshot domain.ScrapedSnapshot) error
}

// ExchangeRateUpserter exposes the single-row upserts used inside a snapshot transaction.
type ExchangeRateUpserter interface {
	UpsertLatest(ctx context.Context, tx pgx.Tx, rate domain.RateSnapshot) error
	UpsertHistorical(ctx context.Context, tx pgx.Tx, rate domain.HistoricalRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	ExchangeRateUpserter
	TransactionManager
}
