package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portsrepo "github.com/SscSPs/bcv_rates/internal/core/ports/repositories"
	"github.com/SscSPs/bcv_rates/internal/models"
	"github.com/SscSPs/bcv_rates/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxExchangeRateRepository stores official rates in exchange_rates and historical_exchange_rates.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db DB) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

const upsertLatestQuery = `
	INSERT INTO exchange_rates (currency, valid_at, rate, fetched_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (currency, valid_at) DO UPDATE SET
		rate = EXCLUDED.rate,
		fetched_at = EXCLUDED.fetched_at;
`

const upsertHistoricalQuery = `
	INSERT INTO historical_exchange_rates (currency, date, rate, fetched_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (currency, date) DO UPDATE SET
		rate = EXCLUDED.rate,
		fetched_at = EXCLUDED.fetched_at;
`

// SaveSnapshot writes the current and historical row of every currency in a single transaction.
// Either all four rows are written or none are.
func (r *PgxExchangeRateRepository) SaveSnapshot(ctx context.Context, snapshot domain.ScrapedSnapshot) error {
	validAt := domain.DateOnly(snapshot.ValidAt)
	rates := snapshot.Rates()

	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, c := range domain.SupportedCurrencies {
			err := r.UpsertLatest(ctx, tx, domain.RateSnapshot{
				Currency:  c.CurrencyCode,
				ValidAt:   validAt,
				Rate:      rates[c.CurrencyCode],
				FetchedAt: snapshot.FetchedAt,
			})
			if err != nil {
				return err
			}
		}
		for _, c := range domain.SupportedCurrencies {
			err := r.UpsertHistorical(ctx, tx, domain.HistoricalRate{
				Currency:  c.CurrencyCode,
				Date:      validAt,
				Rate:      rates[c.CurrencyCode],
				FetchedAt: snapshot.FetchedAt,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertLatest writes one exchange_rates row inside tx.
func (r *PgxExchangeRateRepository) UpsertLatest(ctx context.Context, tx pgx.Tx, rate domain.RateSnapshot) error {
	m := mapping.ToModelExchangeRate(rate)
	if _, err := tx.Exec(ctx, upsertLatestQuery, m.Currency, m.ValidAt, m.Rate, m.FetchedAt); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to upsert latest %s rate", m.Currency), err)
	}
	return nil
}

// UpsertHistorical writes one historical_exchange_rates row inside tx.
func (r *PgxExchangeRateRepository) UpsertHistorical(ctx context.Context, tx pgx.Tx, rate domain.HistoricalRate) error {
	m := mapping.ToModelHistoricalExchangeRate(rate)
	if _, err := tx.Exec(ctx, upsertHistoricalQuery, m.Currency, m.Date, m.Rate, m.FetchedAt); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to upsert historical %s rate", m.Currency), err)
	}
	return nil
}

// GetLatest returns the row with the newest valid_at for currency, or nil if there is none.
func (r *PgxExchangeRateRepository) GetLatest(ctx context.Context, currency domain.CurrencyCode) (*domain.RateSnapshot, error) {
	query := `
		SELECT currency, valid_at, rate, fetched_at
		FROM exchange_rates
		WHERE currency = $1
		ORDER BY valid_at DESC, fetched_at DESC
		LIMIT 1;
	`
	var m models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, string(currency)).Scan(&m.Currency, &m.ValidAt, &m.Rate, &m.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest %s rate: %w", currency, err)
	}

	snap := mapping.ToDomainRateSnapshot(m)
	return &snap, nil
}

// GetHistory returns up to limit rows of the historical series, newest first.
func (r *PgxExchangeRateRepository) GetHistory(ctx context.Context, currency domain.CurrencyCode, limit int) ([]domain.HistoricalRate, error) {
	query := `
		SELECT currency, date, rate, fetched_at
		FROM historical_exchange_rates
		WHERE currency = $1
		ORDER BY date DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, string(currency), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s history: %w", currency, err)
	}
	defer rows.Close()

	history, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.HistoricalExchangeRate, error) {
		var m models.HistoricalExchangeRate
		err := row.Scan(&m.Currency, &m.Date, &m.Rate, &m.FetchedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s history: %w", currency, err)
	}

	return mapping.ToDomainHistoricalRateSlice(history), nil
}
