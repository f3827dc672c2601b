package services

import (
	"context"
	"io"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
)

// IngestionSvcFacade loads rate documents into the store.
type IngestionSvcFacade interface {
	// Ingest parses document and upserts its records in a single pass.
	Ingest(ctx context.Context, document io.Reader) (*domain.IngestionResult, error)

	// IngestFromSource downloads the configured document and ingests it.
	IngestFromSource(ctx context.Context) (*domain.IngestionResult, error)
}
