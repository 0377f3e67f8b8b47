package handlers_test

import (
	"context"

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/SscSPs/bcv_rates/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetLatestRates(ctx context.Context) (domain.LatestRates, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.LatestRates), args.Error(1)
}

func (m *MockExchangeRateService) GetHistory(ctx context.Context, currency string, limit int) ([]domain.HistoricalRate, error) {
	args := m.Called(ctx, currency, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoricalRate), args.Error(1)
}

func (m *MockExchangeRateService) Convert(ctx context.Context, req dto.ConvertQuery) (*domain.Conversion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock RefreshService ---
type MockRefreshService struct {
	mock.Mock
}

func (m *MockRefreshService) Run(ctx context.Context, trigger domain.RefreshTrigger) domain.RefreshOutcome {
	args := m.Called(ctx, trigger)
	return args.Get(0).(domain.RefreshOutcome)
}

func (m *MockRefreshService) RunAsync(trigger domain.RefreshTrigger) {
	m.Called(trigger)
}

var _ portssvc.RefreshSvc = (*MockRefreshService)(nil)

// --- Mock CustomRateService ---
type MockCustomRateService struct {
	mock.Mock
}

func (m *MockCustomRateService) ListCustomRates(ctx context.Context, userID string) ([]domain.UserCustomRate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserCustomRate), args.Error(1)
}

func (m *MockCustomRateService) MaxPerUser() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockCustomRateService) CreateCustomRate(ctx context.Context, userID string, req dto.CreateCustomRateRequest) (*domain.UserCustomRate, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCustomRate), args.Error(1)
}

func (m *MockCustomRateService) UpdateCustomRate(ctx context.Context, userID, id string, req dto.UpdateCustomRateRequest) (*domain.UserCustomRate, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCustomRate), args.Error(1)
}

func (m *MockCustomRateService) DeleteCustomRate(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

var _ portssvc.CustomRateSvcFacade = (*MockCustomRateService)(nil)
