package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/rate_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const upsertRateSQL = `
	INSERT INTO exchange_rates (rate_date, currency, rate)
	VALUES ($1, $2, $3)
	ON CONFLICT (rate_date, currency) DO UPDATE SET rate = EXCLUDED.rate`

// ingestionLockKey serialises ingestion passes across processes sharing the database.
const ingestionLockKey int64 = 0x52415445 // "RATE"

// PgxExchangeRateRepository implements the exchange rate store using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// FindExactRate retrieves the rate stored for exactly (date, currency).
func (r *PgxExchangeRateRepository) FindExactRate(ctx context.Context, date time.Time, currencyCode string) (domain.OptionalRate, error) {
	query := `
		SELECT rate_date, rate
		FROM exchange_rates
		WHERE currency = $1 AND rate_date = $2;
	`
	return r.findRate(ctx, query, currencyCode, domain.TruncateDate(date))
}

// FindMostRecentRateOnOrBefore retrieves the latest rate with rate_date <= date.
func (r *PgxExchangeRateRepository) FindMostRecentRateOnOrBefore(ctx context.Context, date time.Time, currencyCode string) (domain.OptionalRate, error) {
	query := `
		SELECT rate_date, rate
		FROM exchange_rates
		WHERE currency = $1 AND rate_date <= $2
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	return r.findRate(ctx, query, currencyCode, domain.TruncateDate(date))
}

// findRate runs a single-row rate query. No row is a confirmed absence, not an error.
func (r *PgxExchangeRateRepository) findRate(ctx context.Context, query, currencyCode string, date time.Time) (domain.OptionalRate, error) {
	var (
		rateDate time.Time
		rate     decimal.Decimal
	)
	err := r.Pool.QueryRow(ctx, query, currencyCode, date).Scan(&rateDate, &rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NoRate(), nil
		}
		return domain.NoRate(), apperrors.NewStoreError("failed to find exchange rate", err)
	}
	return domain.SomeRate(rate, domain.TruncateDate(rateDate)), nil
}

// ListRatesForPeriod retrieves all rows in [start, end] for the given currencies.
func (r *PgxExchangeRateRepository) ListRatesForPeriod(ctx context.Context, start, end time.Time, currencyCodes []string) ([]domain.RateRecord, error) {
	records := []domain.RateRecord{}
	if len(currencyCodes) == 0 {
		return records, nil
	}

	query := `
		SELECT rate_date, currency, rate
		FROM exchange_rates
		WHERE rate_date BETWEEN $1 AND $2 AND currency = ANY($3)
		ORDER BY rate_date, currency;
	`
	rows, err := r.Pool.Query(ctx, query, domain.TruncateDate(start), domain.TruncateDate(end), currencyCodes)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list exchange rates", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.RateRecord
		if err := rows.Scan(&rec.Date, &rec.Currency, &rec.Rate); err != nil {
			return nil, apperrors.NewStoreError("failed to scan exchange rate", err)
		}
		rec.Date = domain.TruncateDate(rec.Date)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating exchange rates", err)
	}

	return records, nil
}

// BeginIngestion opens a transaction spanning one ingestion pass.
func (r *PgxExchangeRateRepository) BeginIngestion(ctx context.Context) (portsrepo.RateIngestion, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", ingestionLockKey); err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, apperrors.NewStoreError("failed to acquire ingestion lock", err)
	}
	return &pgxIngestion{repo: r, tx: tx}, nil
}

// pgxIngestion stages upserts inside a single pgx transaction.
type pgxIngestion struct {
	repo *PgxExchangeRateRepository
	tx   pgx.Tx
}

// UpsertMany sends the records as one pgx batch on the ingestion transaction.
func (in *pgxIngestion) UpsertMany(ctx context.Context, records []domain.RateRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(upsertRateSQL, domain.TruncateDate(rec.Date), rec.Currency, rec.Rate)
	}

	results := in.tx.SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return apperrors.NewStoreError("failed to upsert exchange rate", err)
		}
	}
	if err := results.Close(); err != nil {
		return apperrors.NewStoreError("failed to close upsert batch", err)
	}
	return nil
}

func (in *pgxIngestion) Commit(ctx context.Context) error {
	return in.repo.Commit(ctx, in.tx)
}

func (in *pgxIngestion) Rollback(ctx context.Context) error {
	return in.repo.Rollback(ctx, in.tx)
}
