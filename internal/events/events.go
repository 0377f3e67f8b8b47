package events

import (
	"context"
	"time"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RatesUpdatedEvent is emitted after a snapshot has been persisted.
type RatesUpdatedEvent struct {
	ValidAt   string          `json:"validAt"` // YYYY-MM-DD
	USD       decimal.Decimal `json:"USD"`
	EUR       decimal.Decimal `json:"EUR"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Trigger   string          `json:"trigger"`
}

// NewRatesUpdatedEvent builds the event of a successful refresh cycle.
func NewRatesUpdatedEvent(outcome domain.RefreshOutcome, fetchedAt time.Time) RatesUpdatedEvent {
	return RatesUpdatedEvent{
		ValidAt:   outcome.ValidAt.Format(time.DateOnly),
		USD:       outcome.USD,
		EUR:       outcome.EUR,
		FetchedAt: fetchedAt.UTC(),
		Trigger:   string(outcome.Trigger),
	}
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRatesUpdated(context.Context, RatesUpdatedEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
