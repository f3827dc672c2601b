package repositories

import (
	"context"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
)

// RateIngestion is the transactional boundary of one ingestion pass.
// Nothing staged through UpsertMany is visible to readers before Commit.
type RateIngestion interface {
	// UpsertMany inserts or replaces rows keyed by (date, currency).
	// Within a pass the last record for a key wins.
	UpsertMany(ctx context.Context, records []domain.RateRecord) error

	// Commit makes every staged record visible at once.
	Commit(ctx context.Context) error

	// Rollback discards the pass. It is a no-op after Commit.
	Rollback(ctx context.Context) error
}

// IngestionManager opens ingestion passes.
type IngestionManager interface {
	// BeginIngestion starts a new pass. At most one pass may be in flight.
	BeginIngestion(ctx context.Context) (RateIngestion, error)
}
