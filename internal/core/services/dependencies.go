package services

import (
	"context"
	"time"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/SscSPs/bcv_rates/internal/events"
)

// LatestRatesCache stores the latest official rates in front of the database.
type LatestRatesCache interface {
	// GetLatestRates returns nil, nil on a miss.
	GetLatestRates(ctx context.Context) (*domain.LatestRates, error)
	// SetLatestRates overwrites the cached value.
	SetLatestRates(ctx context.Context, rates domain.LatestRates) error
	// FillLatestRates stores rates only if nothing is cached.
	FillLatestRates(ctx context.Context, rates domain.LatestRates) error
	InvalidateLatestRates(ctx context.Context) error
}

// RatesEventPublisher announces persisted snapshots to other systems.
type RatesEventPublisher interface {
	PublishRatesUpdated(ctx context.Context, event events.RatesUpdatedEvent) error
}

// RefreshMetrics records finished refresh cycles.
type RefreshMetrics interface {
	RecordRefresh(trigger string, success bool, failedStage string, duration time.Duration, finishedAt time.Time)
}
