package services

import (
	"context"
	"time"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetRatesForPeriod retrieves every stored rate in [start, end] for the given currencies.
	GetRatesForPeriod(ctx context.Context, start, end time.Time, currencies []string) ([]domain.RateRecord, error)

	// GetRatesTable retrieves the same rows pivoted by date.
	GetRatesTable(ctx context.Context, start, end time.Time, currencies []string) (*domain.RatesTable, error)

	// GetMostRecentRate retrieves the latest rate on or before date.
	GetMostRecentRate(ctx context.Context, date time.Time, currency string) (domain.OptionalRate, error)

	// GetExactRate retrieves the rate published on exactly date.
	GetExactRate(ctx context.Context, date time.Time, currency string) (domain.OptionalRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
}
