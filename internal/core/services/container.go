package services

import (
	"log/slog"
	"net/http"

	portsrepo "github.com/SscSPs/rate_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/platform/config"
	"github.com/SscSPs/rate_tracker/internal/source"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)
	container.Valuation = NewValuationService(container.ExchangeRate)

	options := []IngestionOption{WithBatchSize(cfg.IngestBatchSize)}
	if cfg.SourceURL != "" {
		client := &http.Client{Timeout: cfg.SourceTimeout}
		options = append(options, WithDocumentSource(source.NewDownloader(client, cfg.SourceURL, cfg.SourceMaxRedirects, logger)))
	}
	container.Ingestion = NewIngestionService(repos.ExchangeRateRepo, options...)

	return container
}
