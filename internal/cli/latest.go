package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/dto"
	"github.com/google/subcommands"
)

type latestCmd struct {
	app      *App
	date     string
	currency string
	exact    bool
}

func (*latestCmd) Name() string     { return "latest" }
func (*latestCmd) Synopsis() string { return "display the latest rate of a currency" }
func (*latestCmd) Usage() string {
	return `latest -c <CUR> [-d <YYYY-MM-DD>] [-exact]

  Displays the latest rate published on or before the date (default today).
`
}

func (c *latestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "currency code")
	f.StringVar(&c.date, "d", "", "as-of date (default today)")
	f.BoolVar(&c.exact, "exact", false, "only accept a rate published on the date itself")
}

func (c *latestCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency == "" {
		fmt.Fprintln(c.app.Err, "-c must be provided")
		return subcommands.ExitUsageError
	}
	asOf, err := c.app.parseDate("d", c.date)
	if err != nil {
		fmt.Fprintln(c.app.Err, err)
		return subcommands.ExitUsageError
	}

	return c.app.run(ctx, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		find := svc.ExchangeRate.GetMostRecentRate
		if c.exact {
			find = svc.ExchangeRate.GetExactRate
		}
		rate, err := find(ctx, asOf, c.currency)
		if err != nil {
			return err
		}
		code := domain.NormalizeCurrency(c.currency)
		if !rate.Found {
			fmt.Fprintf(c.app.Out, "%s\t%s\n", code, dto.NotAvailable)
			return nil
		}
		fmt.Fprintf(c.app.Out, "%s\t%s\t%s\n", code, dto.FormatOptionalRate(rate), domain.FormatDate(rate.Date))
		return nil
	})
}
