package pgsql

import (
	portsrepo "github.com/SscSPs/bcv_rates/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres repositories. db is normally a *pgxpool.Pool.
func NewRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: newPgxExchangeRateRepository(db),
		CustomRateRepo:   newPgxCustomRateRepository(db),
	}
}
