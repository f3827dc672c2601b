// Package memory provides a process-local rate store. It honours the same
// contract as the PostgreSQL store and is used for tests and ephemeral runs.
package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/rate_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

var errClosed = errors.New("memory store is closed")

// series is a chronological list of rates for one currency with unique dates.
type series struct {
	days  []time.Time
	rates []decimal.Decimal
}

// set inserts or overwrites the rate at day, keeping the series sorted.
func (s *series) set(day time.Time, rate decimal.Decimal) {
	i := sort.Search(len(s.days), func(i int) bool { return !s.days[i].Before(day) })
	if i < len(s.days) && s.days[i].Equal(day) {
		s.rates[i] = rate
		return
	}
	s.days = slices.Insert(s.days, i, day)
	s.rates = slices.Insert(s.rates, i, rate)
}

// onOrBefore returns the index of the latest day <= day, or -1.
func (s *series) onOrBefore(day time.Time) int {
	return sort.Search(len(s.days), func(i int) bool { return s.days[i].After(day) }) - 1
}

// ExchangeRateRepository is an in-memory implementation of the rate store.
type ExchangeRateRepository struct {
	mu       sync.RWMutex
	byCode   map[string]*series
	closed   bool
	inFlight bool
}

// NewExchangeRateRepository creates an empty store.
func NewExchangeRateRepository() *ExchangeRateRepository {
	return &ExchangeRateRepository{byCode: make(map[string]*series)}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*ExchangeRateRepository)(nil)

// Close makes every further operation fail with a store error.
func (r *ExchangeRateRepository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// Len returns the number of stored rows.
func (r *ExchangeRateRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, s := range r.byCode {
		n += len(s.days)
	}
	return n
}

// FindExactRate retrieves the rate stored for exactly (date, currency).
func (r *ExchangeRateRepository) FindExactRate(_ context.Context, date time.Time, currencyCode string) (domain.OptionalRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return domain.NoRate(), apperrors.NewStoreError("failed to find exact rate", errClosed)
	}

	day := domain.TruncateDate(date)
	s, ok := r.byCode[currencyCode]
	if !ok {
		return domain.NoRate(), nil
	}
	i := s.onOrBefore(day)
	if i < 0 || !s.days[i].Equal(day) {
		return domain.NoRate(), nil
	}
	return domain.SomeRate(s.rates[i], s.days[i]), nil
}

// FindMostRecentRateOnOrBefore retrieves the latest rate with a stored date <= date.
func (r *ExchangeRateRepository) FindMostRecentRateOnOrBefore(_ context.Context, date time.Time, currencyCode string) (domain.OptionalRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return domain.NoRate(), apperrors.NewStoreError("failed to find most recent rate", errClosed)
	}

	s, ok := r.byCode[currencyCode]
	if !ok {
		return domain.NoRate(), nil
	}
	i := s.onOrBefore(domain.TruncateDate(date))
	if i < 0 {
		return domain.NoRate(), nil
	}
	return domain.SomeRate(s.rates[i], s.days[i]), nil
}

// ListRatesForPeriod returns the rows in [start, end] for the given currencies,
// ordered by date then currency.
func (r *ExchangeRateRepository) ListRatesForPeriod(_ context.Context, start, end time.Time, currencyCodes []string) ([]domain.RateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, apperrors.NewStoreError("failed to list rates", errClosed)
	}

	start, end = domain.TruncateDate(start), domain.TruncateDate(end)
	records := []domain.RateRecord{}
	seen := make(map[string]bool, len(currencyCodes))
	for _, code := range currencyCodes {
		if seen[code] {
			continue
		}
		seen[code] = true
		s, ok := r.byCode[code]
		if !ok {
			continue
		}
		from := sort.Search(len(s.days), func(i int) bool { return !s.days[i].Before(start) })
		for i := from; i < len(s.days) && !s.days[i].After(end); i++ {
			records = append(records, domain.RateRecord{Date: s.days[i], Currency: code, Rate: s.rates[i]})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].Currency < records[j].Currency
	})
	return records, nil
}

// BeginIngestion starts a pass whose writes are staged until Commit.
func (r *ExchangeRateRepository) BeginIngestion(_ context.Context) (portsrepo.RateIngestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, apperrors.NewStoreError("failed to begin ingestion", errClosed)
	}
	if r.inFlight {
		return nil, apperrors.NewStoreError("failed to begin ingestion", errors.New("another ingestion is in flight"))
	}
	r.inFlight = true
	return &ingestion{repo: r}, nil
}

// ingestion stages records and applies them under the write lock on Commit.
type ingestion struct {
	repo   *ExchangeRateRepository
	staged []domain.RateRecord
	done   bool
}

func (in *ingestion) UpsertMany(_ context.Context, records []domain.RateRecord) error {
	if in.done {
		return apperrors.NewStoreError("failed to upsert rates", errors.New("ingestion already finished"))
	}
	for _, rec := range records {
		if rec.Currency == "" || !rec.Rate.IsPositive() {
			return apperrors.NewStoreError("failed to upsert rates", errors.New("invalid record for "+rec.Currency))
		}
	}
	in.staged = append(in.staged, records...)
	return nil
}

func (in *ingestion) Commit(_ context.Context) error {
	if in.done {
		return apperrors.NewStoreError("failed to commit ingestion", errors.New("ingestion already finished"))
	}
	r := in.repo
	r.mu.Lock()
	defer r.mu.Unlock()
	in.done = true
	r.inFlight = false
	if r.closed {
		return apperrors.NewStoreError("failed to commit ingestion", errClosed)
	}

	for _, rec := range in.staged {
		s, ok := r.byCode[rec.Currency]
		if !ok {
			s = &series{}
			r.byCode[rec.Currency] = s
		}
		s.set(domain.TruncateDate(rec.Date), rec.Rate)
	}
	in.staged = nil
	return nil
}

func (in *ingestion) Rollback(_ context.Context) error {
	if in.done {
		return nil
	}
	r := in.repo
	r.mu.Lock()
	defer r.mu.Unlock()
	in.done = true
	in.staged = nil
	r.inFlight = false
	return nil
}
