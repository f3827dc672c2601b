// Package cli implements the ratectl subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/core/services"
	"github.com/SscSPs/rate_tracker/internal/middleware"
	"github.com/SscSPs/rate_tracker/internal/platform/config"
	"github.com/SscSPs/rate_tracker/internal/platform/storage"
	"github.com/google/subcommands"
)

// OpenFunc builds the services a command runs against. The returned func
// releases them.
type OpenFunc func(ctx context.Context) (*portssvc.ServiceContainer, func(), error)

// App carries what every command shares.
type App struct {
	Out    io.Writer
	Err    io.Writer
	Logger *slog.Logger
	Open   OpenFunc
	Now    func() time.Time
}

// NewApp returns an App writing to the standard streams and opening the
// store described by the environment.
func NewApp() *App {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	app := &App{Out: os.Stdout, Err: os.Stderr, Logger: logger, Now: time.Now}
	app.Open = func(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, nil, err
		}
		repos, err := storage.Open(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return services.NewServiceContainer(cfg, repos, logger), repos.Close, nil
	}
	return app
}

// Commands lists the subcommands bound to app.
func Commands(app *App) []subcommands.Command {
	return []subcommands.Command{
		&ingestCmd{app: app},
		&tableCmd{app: app},
		&gainLossCmd{app: app},
		&latestCmd{app: app},
	}
}

// run opens the services, attaches the logger and reports the error of fn.
func (a *App) run(ctx context.Context, fn func(context.Context, *portssvc.ServiceContainer) error) subcommands.ExitStatus {
	svc, closeFn, err := a.Open(ctx)
	if err != nil {
		fmt.Fprintf(a.Err, "Error opening rate store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	if err := fn(middleware.WithLogger(ctx, a.Logger), svc); err != nil {
		fmt.Fprintf(a.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseDate parses a YYYY-MM-DD flag value; empty means today.
func (a *App) parseDate(name, value string) (time.Time, error) {
	if value == "" {
		return domain.TruncateDate(a.Now()), nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("-%s: %w", name, err)
	}
	return d, nil
}

func splitCurrencies(s string) []string {
	return strings.Split(s, ",")
}
