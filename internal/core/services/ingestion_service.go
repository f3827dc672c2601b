package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/rate_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/source"
	"github.com/google/uuid"
)

// DefaultIngestBatchSize is the number of records sent to the store per UpsertMany call.
const DefaultIngestBatchSize = 500

// DocumentSource yields a rate document, e.g. source.Downloader.
type DocumentSource interface {
	Download(ctx context.Context) (io.ReadCloser, error)
}

// ingestionService loads rate documents into the store.
type ingestionService struct {
	BaseService
	rateRepo  portsrepo.IngestionManager
	source    DocumentSource
	batchSize int
	parserOpt source.ParserOptions
}

// IngestionOption is a functional option for configuring the ingestion service
type IngestionOption func(*ingestionService)

// WithDocumentSource sets where IngestFromSource reads the document from.
func WithDocumentSource(src DocumentSource) IngestionOption {
	return func(s *ingestionService) {
		s.source = src
	}
}

// WithBatchSize sets how many records are sent per UpsertMany call.
func WithBatchSize(n int) IngestionOption {
	return func(s *ingestionService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithParserOptions overrides the document layout.
func WithParserOptions(opts source.ParserOptions) IngestionOption {
	return func(s *ingestionService) {
		s.parserOpt = opts
	}
}

// NewIngestionService creates a new ingestion service with the provided options
func NewIngestionService(repo portsrepo.IngestionManager, options ...IngestionOption) portssvc.IngestionSvcFacade {
	svc := &ingestionService{
		rateRepo:  repo,
		batchSize: DefaultIngestBatchSize,
		parserOpt: source.DefaultParserOptions(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IngestionSvcFacade = (*ingestionService)(nil)

// Ingest parses the whole document, then upserts its records in one pass.
// Malformed entries are skipped and counted. If the document cannot be read the
// store is left untouched; if the store fails the pass is rolled back.
func (s *ingestionService) Ingest(ctx context.Context, document io.Reader) (*domain.IngestionResult, error) {
	result := &domain.IngestionResult{RunID: uuid.NewString()}
	logger := s.GetLogger(ctx).With(slog.String("ingestion_id", result.RunID))

	var records []domain.RateRecord
	parser := source.NewParserWithOptions(document, s.parserOpt, logger)
	for rec, err := range parser.Records() {
		if err != nil {
			if errors.Is(err, apperrors.ErrMalformedEntry) {
				result.Skipped++
				result.Skips = append(result.Skips, err)
				continue
			}
			logger.Error("Rate document unreadable, store left unchanged", slog.String("error", err.Error()))
			return nil, err
		}
		if result.FirstDate.IsZero() || rec.Date.Before(result.FirstDate) {
			result.FirstDate = rec.Date
		}
		if rec.Date.After(result.LastDate) {
			result.LastDate = rec.Date
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		if err := s.store(ctx, records); err != nil {
			logger.Error("Ingestion rolled back", slog.String("error", err.Error()))
			return nil, err
		}
	}
	result.Upserted = len(records)

	logger.Info("Ingestion completed",
		slog.Int("upserted", result.Upserted),
		slog.Int("skipped", result.Skipped),
		slog.String("first_date", formatOptionalDate(result.FirstDate)),
		slog.String("last_date", formatOptionalDate(result.LastDate)))
	return result, nil
}

// store writes records in batches inside a single ingestion pass.
func (s *ingestionService) store(ctx context.Context, records []domain.RateRecord) error {
	in, err := s.rateRepo.BeginIngestion(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin ingestion: %w", err)
	}

	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))
		if err := in.UpsertMany(ctx, records[start:end]); err != nil {
			if rbErr := in.Rollback(ctx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to roll back ingestion")
			}
			return fmt.Errorf("failed to upsert rates: %w", err)
		}
	}

	if err := in.Commit(ctx); err != nil {
		if rbErr := in.Rollback(ctx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back ingestion")
		}
		return fmt.Errorf("failed to commit ingestion: %w", err)
	}
	return nil
}

// IngestFromSource downloads the configured document and ingests it.
func (s *ingestionService) IngestFromSource(ctx context.Context) (*domain.IngestionResult, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: no document source configured", apperrors.ErrSourceUnavailable)
	}
	body, err := s.source.Download(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to download rate document")
		return nil, err
	}
	defer body.Close()
	return s.Ingest(ctx, body)
}

func formatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return domain.FormatDate(t)
}
