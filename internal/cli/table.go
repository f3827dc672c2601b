package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/dto"
	"github.com/google/subcommands"
)

type tableCmd struct {
	app        *App
	start      string
	end        string
	currencies string
}

func (*tableCmd) Name() string     { return "table" }
func (*tableCmd) Synopsis() string { return "display rates for a period" }
func (*tableCmd) Usage() string {
	return `table -s <YYYY-MM-DD> -e <YYYY-MM-DD> -c <USD,JPY,...>

  Displays one row per published date with a column per currency.
  Rates carry four decimals; N/A marks a date without a rate for that currency.
`
}

func (c *tableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "first date")
	f.StringVar(&c.end, "e", "", "last date (default today)")
	f.StringVar(&c.currencies, "c", "", "comma separated currency codes")
}

func (c *tableCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.start == "" || c.currencies == "" {
		fmt.Fprintln(c.app.Err, "-s and -c must be provided")
		return subcommands.ExitUsageError
	}
	start, err := c.app.parseDate("s", c.start)
	if err != nil {
		fmt.Fprintln(c.app.Err, err)
		return subcommands.ExitUsageError
	}
	end, err := c.app.parseDate("e", c.end)
	if err != nil {
		fmt.Fprintln(c.app.Err, err)
		return subcommands.ExitUsageError
	}

	return c.app.run(ctx, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		table, err := svc.ExchangeRate.GetRatesTable(ctx, start, end, splitCurrencies(c.currencies))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(c.app.Out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "Date\t%s\t\n", strings.Join(table.Currencies, "\t"))
		for _, row := range table.Rows {
			cells := make([]string, len(table.Currencies))
			for i, code := range table.Currencies {
				cells[i] = dto.FormatOptionalRate(row.Rates[code])
			}
			fmt.Fprintf(w, "%s\t%s\t\n", domain.FormatDate(row.Date), strings.Join(cells, "\t"))
		}
		return w.Flush()
	})
}
