package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/dto"
	"github.com/SscSPs/rate_tracker/internal/utils"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type gainLossCmd struct {
	app     *App
	base    string
	quote   string
	start   string
	end     string
	amount  string
	verbose bool
}

func (*gainLossCmd) Name() string     { return "gainloss" }
func (*gainLossCmd) Synopsis() string { return "compute the opportunity gain/loss of holding another currency" }
func (*gainLossCmd) Usage() string {
	return `gainloss -base <CUR> -quote <CUR> -s <YYYY-MM-DD> -e <YYYY-MM-DD> -amount <n>

  Converts amount of the base currency into the quote currency on the start
  date, holds it, and converts it back on the end date. All conversions go
  through EUR using the latest rate published on or before each date.
`
}

func (c *gainLossCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "", "currency the amount is held in")
	f.StringVar(&c.quote, "quote", "", "currency held during the period")
	f.StringVar(&c.start, "s", "", "start date")
	f.StringVar(&c.end, "e", "", "end date (default today)")
	f.StringVar(&c.amount, "amount", "", "amount of the base currency")
	f.BoolVar(&c.verbose, "v", false, "print every conversion leg")
}

func (c *gainLossCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.base == "" || c.quote == "" || c.start == "" || c.amount == "" {
		fmt.Fprintln(c.app.Err, "-base, -quote, -s and -amount must be provided")
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
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(c.app.Err, "-amount: invalid decimal %q\n", c.amount)
		return subcommands.ExitUsageError
	}

	return c.app.run(ctx, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
		gl, err := svc.Valuation.CalculateGainLoss(ctx, domain.GainLossRequest{
			BaseCurrency:  c.base,
			QuoteCurrency: c.quote,
			StartDate:     start,
			EndDate:       end,
			Amount:        amount,
		})
		if err != nil {
			return err
		}

		req := gl.Request
		if c.verbose {
			fmt.Fprintf(c.app.Out, "%s %s = %s EUR (%s %s on %s)\n", utils.FormatWithPrecision(req.Amount, dto.AmountPrecision), req.BaseCurrency,
				utils.FormatWithPrecision(gl.EURAmount, dto.RatePrecision), req.BaseCurrency, dto.FormatOptionalRate(gl.BaseStartRate), domain.FormatDate(gl.BaseStartRate.Date))
			fmt.Fprintf(c.app.Out, "  = %s %s (%s %s on %s)\n", utils.FormatWithPrecision(gl.QuoteAmount, dto.RatePrecision), req.QuoteCurrency,
				req.QuoteCurrency, dto.FormatOptionalRate(gl.QuoteStartRate), domain.FormatDate(gl.QuoteStartRate.Date))
			fmt.Fprintf(c.app.Out, "  = %s EUR (%s %s on %s)\n", utils.FormatWithPrecision(gl.EndEURAmount, dto.RatePrecision),
				req.QuoteCurrency, dto.FormatOptionalRate(gl.QuoteEndRate), domain.FormatDate(gl.QuoteEndRate.Date))
			fmt.Fprintf(c.app.Out, "  = %s %s (%s %s on %s)\n", utils.FormatWithPrecision(gl.FinalBaseAmount, dto.RatePrecision), req.BaseCurrency,
				req.BaseCurrency, dto.FormatOptionalRate(gl.BaseEndRate), domain.FormatDate(gl.BaseEndRate.Date))
		}
		fmt.Fprintf(c.app.Out, "Gain/loss holding %s from %s to %s: %s %s\n", req.QuoteCurrency,
			domain.FormatDate(req.StartDate), domain.FormatDate(req.EndDate),
			utils.FormatFixed(gl.GainLoss, dto.AmountPrecision), req.BaseCurrency)
		return nil
	})
}
