package memory

import (
	portsrepo "github.com/SscSPs/rate_tracker/internal/core/ports/repositories"
)

// NewRepositoryProvider returns a provider backed by a fresh in-process store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	repo := NewExchangeRateRepository()
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo: repo,
		Close:            repo.Close,
	}
}
