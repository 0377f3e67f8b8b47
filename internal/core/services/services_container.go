package services

import (
	"github.com/SscSPs/bcv_rates/internal/bcv"
	portsrepo "github.com/SscSPs/bcv_rates/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/SscSPs/bcv_rates/internal/platform/config"
)

// Dependencies groups the adapters the services are wired with.
// Cache and Publisher are optional.
type Dependencies struct {
	Fetcher   bcv.Fetcher
	Extractor bcv.Extractor
	Cache     LatestRatesCache
	Publisher RatesEventPublisher
	Metrics   RefreshMetrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	var rateOpts []ExchangeRateServiceOption
	refreshOpts := []RefreshServiceOption{
		WithRefreshURL(cfg.BCVURL),
		WithFetchOptions(bcv.FetchOptions{Timeout: cfg.BCVFetchTimeout}),
	}
	if deps.Cache != nil {
		rateOpts = append(rateOpts, WithLatestRatesCache(deps.Cache))
		refreshOpts = append(refreshOpts, WithCacheRefresh(deps.Cache))
	}
	if deps.Publisher != nil {
		refreshOpts = append(refreshOpts, WithEventPublisher(deps.Publisher))
	}
	if deps.Metrics != nil {
		refreshOpts = append(refreshOpts, WithRefreshMetrics(deps.Metrics))
	}

	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, rateOpts...)
	container.Refresh = NewRefreshService(deps.Fetcher, deps.Extractor, repos.ExchangeRateRepo, refreshOpts...)
	container.CustomRate = NewCustomRateService(repos.CustomRateRepo, cfg.CustomRatesMaxPerUser)

	return container
}
