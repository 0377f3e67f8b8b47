package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	"github.com/SscSPs/bcv_rates/internal/bcv"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portsrepo "github.com/SscSPs/bcv_rates/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/SscSPs/bcv_rates/internal/dto"
)

const (
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 365

	conversionScale = 8
)

type exchangeRateService struct {
	BaseService
	repo  portsrepo.ExchangeRateReader
	cache LatestRatesCache
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithLatestRatesCache serves latest rates from cache when possible
func WithLatestRatesCache(cache LatestRatesCache) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.cache = cache
	}
}

// NewExchangeRateService creates the read side of the official rates.
func NewExchangeRateService(repo portsrepo.ExchangeRateReader, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{repo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) GetLatestRates(ctx context.Context) (domain.LatestRates, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLatestRates(ctx)
		if err != nil {
			s.GetLogger(ctx).Warn("Latest rates cache read failed", slog.String("error", err.Error()))
		} else if cached != nil {
			return *cached, nil
		}
	}

	latest, err := loadLatestRates(ctx, s.repo)
	if err != nil {
		s.LogError(ctx, err, "Failed to get latest rates")
		return domain.LatestRates{}, err
	}

	if s.cache != nil {
		if err := s.cache.FillLatestRates(ctx, latest); err != nil {
			s.GetLogger(ctx).Warn("Latest rates cache write failed", slog.String("error", err.Error()))
		}
	}
	return latest, nil
}

// loadLatestRates reads the newest snapshot of every supported currency.
func loadLatestRates(ctx context.Context, repo portsrepo.ExchangeRateReader) (domain.LatestRates, error) {
	var latest domain.LatestRates
	for _, c := range domain.SupportedCurrencies {
		snap, err := repo.GetLatest(ctx, c.CurrencyCode)
		if err != nil {
			return domain.LatestRates{}, fmt.Errorf("latest %s rate: %w", c.CurrencyCode, err)
		}
		switch c.CurrencyCode {
		case domain.USD:
			latest.USD = snap
		case domain.EUR:
			latest.EUR = snap
		}
	}
	return latest, nil
}

func (s *exchangeRateService) GetHistory(ctx context.Context, currency string, limit int) ([]domain.HistoricalRate, error) {
	code, err := domain.ParseCurrencyCode(currency)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, apperrors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxHistoryLimit))
	}

	history, err := s.repo.GetHistory(ctx, code, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to get rate history", slog.String("currency", string(code)))
		return nil, err
	}
	return history, nil
}

func (s *exchangeRateService) Convert(ctx context.Context, req dto.ConvertQuery) (*domain.Conversion, error) {
	code, err := domain.ParseCurrencyCode(req.Currency)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	amount, err := bcv.NormalizePositive(req.Amount)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid amount value")
	}
	direction := domain.ConversionDirection(req.Direction)
	if direction == "" {
		direction = domain.ToVES
	}
	if direction != domain.ToVES && direction != domain.FromVES {
		return nil, apperrors.NewValidationError("direction must be to_ves or from_ves")
	}

	latest, err := s.GetLatestRates(ctx)
	if err != nil {
		return nil, err
	}
	snap := latest.Get(code)
	if snap == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No %s rate has been published yet", code))
	}

	result := amount.Mul(snap.Rate).Round(conversionScale)
	if direction == domain.FromVES {
		result = amount.DivRound(snap.Rate, conversionScale)
	}

	return &domain.Conversion{
		Currency:  code,
		Direction: direction,
		Rate:      snap.Rate,
		Amount:    amount,
		Result:    result,
		ValidAt:   snap.ValidAt,
	}, nil
}
