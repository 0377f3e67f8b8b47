package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bcv_rates/internal/bcv"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/SscSPs/bcv_rates/internal/events"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) GetLatest(ctx context.Context, currency domain.CurrencyCode) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockExchangeRateRepository) GetHistory(ctx context.Context, currency domain.CurrencyCode, limit int) ([]domain.HistoricalRate, error) {
	args := m.Called(ctx, currency, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoricalRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveSnapshot(ctx context.Context, snapshot domain.ScrapedSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// --- Mock CustomRateRepository ---
type MockCustomRateRepository struct {
	mock.Mock
}

func (m *MockCustomRateRepository) ListCustomRates(ctx context.Context, userID string) ([]domain.UserCustomRate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserCustomRate), args.Error(1)
}

func (m *MockCustomRateRepository) FindCustomRate(ctx context.Context, userID, id string) (*domain.UserCustomRate, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCustomRate), args.Error(1)
}

func (m *MockCustomRateRepository) CreateCustomRate(ctx context.Context, rate domain.UserCustomRate, maxPerUser int) error {
	args := m.Called(ctx, rate, maxPerUser)
	return args.Error(0)
}

func (m *MockCustomRateRepository) UpdateCustomRate(ctx context.Context, rate domain.UserCustomRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockCustomRateRepository) DeleteCustomRate(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// --- Pipeline mocks ---
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchText(ctx context.Context, url string, opts bcv.FetchOptions) (string, error) {
	args := m.Called(ctx, url, opts)
	return args.String(0), args.Error(1)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(html string) (bcv.Extraction, error) {
	args := m.Called(html)
	return args.Get(0).(bcv.Extraction), args.Error(1)
}

type MockLatestRatesCache struct {
	mock.Mock
}

func (m *MockLatestRatesCache) GetLatestRates(ctx context.Context) (*domain.LatestRates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LatestRates), args.Error(1)
}

func (m *MockLatestRatesCache) SetLatestRates(ctx context.Context, rates domain.LatestRates) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockLatestRatesCache) FillLatestRates(ctx context.Context, rates domain.LatestRates) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockLatestRatesCache) InvalidateLatestRates(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishRatesUpdated(ctx context.Context, event events.RatesUpdatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRefreshMetrics struct {
	mock.Mock
}

func (m *MockRefreshMetrics) RecordRefresh(trigger string, success bool, failedStage string, duration time.Duration, finishedAt time.Time) {
	m.Called(trigger, success, failedStage, duration, finishedAt)
}
