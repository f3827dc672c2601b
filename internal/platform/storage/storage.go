package storage

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/rate_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/rate_tracker/internal/platform/config"
	"github.com/SscSPs/rate_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/rate_tracker/internal/repositories/memory"
	"github.com/SscSPs/rate_tracker/pkg/database"
)

// Open builds the repositories for the configured store driver. For postgres
// the schema is migrated before the provider is returned.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory rate store; rates are lost on exit")
		return memory.NewRepositoryProvider(), nil
	case config.StoreDriverPostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), nil
	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
