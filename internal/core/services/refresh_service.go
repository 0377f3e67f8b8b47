package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bcv_rates/internal/bcv"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portsrepo "github.com/SscSPs/bcv_rates/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/SscSPs/bcv_rates/internal/events"
	"golang.org/x/sync/singleflight"
)

const refreshFlightKey = "bcv_refresh"

// refreshService runs the fetch, extract, normalize and persist cycle.
// Concurrent Run calls share the cycle already in flight.
type refreshService struct {
	fetcher   bcv.Fetcher
	extractor bcv.Extractor
	repo      portsrepo.ExchangeRateRepositoryFacade

	url       string
	fetchOpts bcv.FetchOptions

	cache     LatestRatesCache
	publisher RatesEventPublisher
	metrics   RefreshMetrics
	logger    *slog.Logger
	now       func() time.Time

	flight singleflight.Group
}

// RefreshServiceOption is a functional option for configuring the refresh service
type RefreshServiceOption func(*refreshService)

// WithRefreshURL overrides the page the rates are scraped from
func WithRefreshURL(url string) RefreshServiceOption {
	return func(s *refreshService) {
		s.url = url
	}
}

// WithFetchOptions sets per-request headers and timeout
func WithFetchOptions(opts bcv.FetchOptions) RefreshServiceOption {
	return func(s *refreshService) {
		s.fetchOpts = opts
	}
}

// WithCacheRefresh rewrites the cached latest rates after each persisted snapshot
func WithCacheRefresh(cache LatestRatesCache) RefreshServiceOption {
	return func(s *refreshService) {
		s.cache = cache
	}
}

// WithEventPublisher announces each persisted snapshot
func WithEventPublisher(p RatesEventPublisher) RefreshServiceOption {
	return func(s *refreshService) {
		s.publisher = p
	}
}

// WithRefreshMetrics records every finished cycle
func WithRefreshMetrics(m RefreshMetrics) RefreshServiceOption {
	return func(s *refreshService) {
		s.metrics = m
	}
}

// WithRefreshLogger sets the logger used by background cycles
func WithRefreshLogger(logger *slog.Logger) RefreshServiceOption {
	return func(s *refreshService) {
		s.logger = logger
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) RefreshServiceOption {
	return func(s *refreshService) {
		s.now = now
	}
}

// NewRefreshService creates the refresh orchestrator.
func NewRefreshService(fetcher bcv.Fetcher, extractor bcv.Extractor, repo portsrepo.ExchangeRateRepositoryFacade, options ...RefreshServiceOption) portssvc.RefreshSvc {
	svc := &refreshService{
		fetcher:   fetcher,
		extractor: extractor,
		repo:      repo,
		url:       bcv.DefaultURL,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RefreshSvc = (*refreshService)(nil)

func (s *refreshService) Run(ctx context.Context, trigger domain.RefreshTrigger) domain.RefreshOutcome {
	v, _, shared := s.flight.Do(refreshFlightKey, func() (any, error) {
		return s.runCycle(ctx, trigger), nil
	})
	outcome := v.(domain.RefreshOutcome)
	if shared && outcome.Trigger != trigger {
		s.logger.Info("Refresh trigger coalesced with cycle in flight",
			slog.String("trigger", string(trigger)),
			slog.String("in_flight_trigger", string(outcome.Trigger)),
		)
	}
	return outcome
}

func (s *refreshService) RunAsync(trigger domain.RefreshTrigger) {
	go s.Run(context.Background(), trigger)
}

func (s *refreshService) runCycle(ctx context.Context, trigger domain.RefreshTrigger) (outcome domain.RefreshOutcome) {
	logger := s.logger.With(slog.String("trigger", string(trigger)))
	outcome = domain.RefreshOutcome{
		Trigger:   trigger,
		Stage:     domain.StageIdle,
		StartedAt: s.now(),
	}

	defer func() {
		if r := recover(); r != nil {
			if outcome.Succeeded() {
				// the snapshot is already committed
				logger.Error("Panic after BCV refresh succeeded", slog.Any("panic", r))
			} else {
				outcome = s.fail(logger, outcome, fmt.Errorf("panic during %s: %v", outcome.Stage, r))
			}
		}
		outcome.FinishedAt = s.now()
		if s.metrics != nil {
			s.metrics.RecordRefresh(string(trigger), outcome.Succeeded(), string(outcome.FailedStage),
				outcome.FinishedAt.Sub(outcome.StartedAt), outcome.FinishedAt)
		}
	}()

	outcome.Stage = domain.StageFetching
	html, err := s.fetcher.FetchText(ctx, s.url, s.fetchOpts)
	if err != nil {
		return s.fail(logger, outcome, fmt.Errorf("fetching %s: %w", s.url, err))
	}

	outcome.Stage = domain.StageExtracting
	extraction, err := s.extractor.Extract(html)
	if err != nil {
		return s.fail(logger, outcome, fmt.Errorf("extracting rates: %w", err))
	}

	outcome.Stage = domain.StageNormalizing
	usd, err := bcv.NormalizeDecimal(extraction.USDRaw)
	if err != nil {
		return s.fail(logger, outcome, fmt.Errorf("normalizing USD rate: %w", err))
	}
	eur, err := bcv.NormalizeDecimal(extraction.EURRaw)
	if err != nil {
		return s.fail(logger, outcome, fmt.Errorf("normalizing EUR rate: %w", err))
	}
	outcome.ValidAt = domain.DateOnly(extraction.ValidAt)
	outcome.USD = usd
	outcome.EUR = eur

	outcome.Stage = domain.StagePersisting
	fetchedAt := s.now()
	err = s.repo.SaveSnapshot(ctx, domain.ScrapedSnapshot{
		ValidAt:   outcome.ValidAt,
		USD:       usd,
		EUR:       eur,
		FetchedAt: fetchedAt,
	})
	if err != nil {
		return s.fail(logger, outcome, fmt.Errorf("persisting snapshot: %w", err))
	}

	outcome.Stage = domain.StageSucceeded
	logger.Info("BCV rates refreshed",
		slog.String("valid_at", outcome.ValidAt.Format(time.DateOnly)),
		slog.String("usd", usd.String()),
		slog.String("eur", eur.String()),
	)
	s.afterSuccess(ctx, logger, outcome, fetchedAt)
	return outcome
}

func (s *refreshService) fail(logger *slog.Logger, outcome domain.RefreshOutcome, err error) domain.RefreshOutcome {
	outcome.FailedStage = outcome.Stage
	outcome.Stage = domain.StageFailed
	outcome.Err = err
	logger.Error("BCV refresh cycle failed",
		slog.String("stage", string(outcome.FailedStage)),
		slog.String("error", err.Error()),
	)
	return outcome
}

// afterSuccess runs the best-effort side effects of a persisted snapshot.
func (s *refreshService) afterSuccess(ctx context.Context, logger *slog.Logger, outcome domain.RefreshOutcome, fetchedAt time.Time) {
	if s.cache != nil {
		s.refreshCache(ctx, logger)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishRatesUpdated(ctx, events.NewRatesUpdatedEvent(outcome, fetchedAt)); err != nil {
			logger.Warn("Failed to publish rates updated event", slog.String("error", err.Error()))
		}
	}
}

// refreshCache overwrites the cached latest rates with what is now committed.
// If that fails the key is dropped so readers fall through to the database.
func (s *refreshService) refreshCache(ctx context.Context, logger *slog.Logger) {
	latest, err := loadLatestRates(ctx, s.repo)
	if err == nil {
		err = s.cache.SetLatestRates(ctx, latest)
	}
	if err == nil {
		return
	}
	logger.Warn("Failed to refresh latest rates cache", slog.String("error", err.Error()))
	if err := s.cache.InvalidateLatestRates(ctx); err != nil {
		logger.Warn("Failed to invalidate latest rates cache", slog.String("error", err.Error()))
	}
}
