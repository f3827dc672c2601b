package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/source"
	"github.com/google/subcommands"
)

type ingestCmd struct {
	app     *App
	file    string
	verbose bool
}

func (*ingestCmd) Name() string     { return "ingest" }
func (*ingestCmd) Synopsis() string { return "load reference rates into the store" }
func (*ingestCmd) Usage() string {
	return `ingest [-f <file>] [-v]

  Downloads the reference rate list from SOURCE_URL, or reads it from a local
  file, and upserts every rate. Malformed entries are skipped and counted.
`
}

func (c *ingestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "read the rate document from this file instead of SOURCE_URL")
	f.BoolVar(&c.verbose, "v", false, "print every skipped entry")
}

func (c *ingestCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		var (
			result *domain.IngestionResult
			err    error
		)
		if c.file != "" {
			doc, openErr := source.OpenFile(c.file)
			if openErr != nil {
				return openErr
			}
			defer doc.Close()
			result, err = svc.Ingestion.Ingest(ctx, doc)
		} else {
			result, err = svc.Ingestion.IngestFromSource(ctx)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(c.app.Out, "Upserted %d rates, skipped %d entries\n", result.Upserted, result.Skipped)
		if !result.FirstDate.IsZero() {
			fmt.Fprintf(c.app.Out, "Dates %s to %s\n", domain.FormatDate(result.FirstDate), domain.FormatDate(result.LastDate))
		}
		if c.verbose {
			for _, skip := range result.Skips {
				fmt.Fprintf(c.app.Err, "skipped: %v\n", skip)
			}
		}
		return nil
	})
}
