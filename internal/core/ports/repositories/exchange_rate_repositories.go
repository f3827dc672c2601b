package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
// Implementations return apperrors.ErrStoreUnavailable for engine failures and
// reserve a not-found result for confirmed absence of data.
type ExchangeRateReader interface {
	// FindExactRate returns the rate stored for exactly (date, currency).
	FindExactRate(ctx context.Context, date time.Time, currencyCode string) (domain.OptionalRate, error)

	// FindMostRecentRateOnOrBefore returns the rate with the latest stored date <= date.
	FindMostRecentRateOnOrBefore(ctx context.Context, date time.Time, currencyCode string) (domain.OptionalRate, error)

	// ListRatesForPeriod returns rows with start <= date <= end and currency in currencyCodes,
	// ordered by date then currency.
	ListRatesForPeriod(ctx context.Context, start, end time.Time, currencyCodes []string) ([]domain.RateRecord, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	IngestionManager
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
