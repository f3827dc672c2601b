package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/rate_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// exchangeRateService provides read access to stored exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateReader
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateReader) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// GetRatesForPeriod retrieves every stored rate in [start, end] for the given currencies.
func (s *exchangeRateService) GetRatesForPeriod(ctx context.Context, start, end time.Time, currencies []string) ([]domain.RateRecord, error) {
	codes, err := normalizeCurrencies(currencies)
	if err != nil {
		return nil, err
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	records, err := s.rateRepo.ListRatesForPeriod(ctx, start, end, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rates for period",
			slog.String("start", domain.FormatDate(start)),
			slog.String("end", domain.FormatDate(end)))
		return nil, fmt.Errorf("failed to get rates for period: %w", err)
	}
	return records, nil
}

// GetRatesTable retrieves the rates of the period pivoted by date.
func (s *exchangeRateService) GetRatesTable(ctx context.Context, start, end time.Time, currencies []string) (*domain.RatesTable, error) {
	codes, err := normalizeCurrencies(currencies)
	if err != nil {
		return nil, err
	}
	records, err := s.GetRatesForPeriod(ctx, start, end, codes)
	if err != nil {
		return nil, err
	}
	return domain.PivotRates(records, codes), nil
}

// GetMostRecentRate retrieves the latest rate published on or before date.
func (s *exchangeRateService) GetMostRecentRate(ctx context.Context, date time.Time, currency string) (domain.OptionalRate, error) {
	return s.lookup(ctx, date, currency, s.rateRepo.FindMostRecentRateOnOrBefore)
}

// GetExactRate retrieves the rate published on exactly date.
func (s *exchangeRateService) GetExactRate(ctx context.Context, date time.Time, currency string) (domain.OptionalRate, error) {
	return s.lookup(ctx, date, currency, s.rateRepo.FindExactRate)
}

type rateFinder func(ctx context.Context, date time.Time, currencyCode string) (domain.OptionalRate, error)

func (s *exchangeRateService) lookup(ctx context.Context, date time.Time, currency string, find rateFinder) (domain.OptionalRate, error) {
	code, err := normalizeCurrency(currency)
	if err != nil {
		return domain.NoRate(), err
	}
	if date.IsZero() {
		return domain.NoRate(), fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if code == domain.PivotCurrency {
		return domain.SomeRate(decimal.NewFromInt(1), domain.TruncateDate(date)), nil
	}

	rate, err := find(ctx, date, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up rate",
			slog.String("currency", code),
			slog.String("date", domain.FormatDate(date)))
		return domain.NoRate(), fmt.Errorf("failed to get rate for %s: %w", code, err)
	}
	return rate, nil
}

// normalizeCurrency trims, upper-cases and validates a single code.
func normalizeCurrency(currency string) (string, error) {
	code := domain.NormalizeCurrency(currency)
	if err := validate.Var(code, "required,len=3,alpha"); err != nil {
		return "", fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, currency)
	}
	return code, nil
}

// normalizeCurrencies normalises a currency list, dropping blanks and duplicates
// while keeping the requested order.
func normalizeCurrencies(currencies []string) ([]string, error) {
	codes := make([]string, 0, len(currencies))
	seen := make(map[string]bool, len(currencies))
	for _, c := range currencies {
		if domain.NormalizeCurrency(c) == "" {
			continue
		}
		code, err := normalizeCurrency(c)
		if err != nil {
			return nil, err
		}
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: at least one currency is required", apperrors.ErrValidation)
	}
	return codes, nil
}

func validatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", apperrors.ErrValidation)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start date %s is after end date %s", apperrors.ErrValidation,
			domain.FormatDate(start), domain.FormatDate(end))
	}
	return nil
}
