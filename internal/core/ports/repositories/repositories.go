package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	ExchangeRateRepo ExchangeRateRepositoryFacade

	// Close releases the resources held by the store.
	Close func()
}
