package cli

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/core/services"
	"github.com/SscSPs/rate_tracker/internal/platform/config"
	"github.com/SscSPs/rate_tracker/internal/repositories/memory"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `<?xml version="1.0" encoding="UTF-8"?>
<DtecBS xmlns="http://www.bsi.si">
  <tecajnica datum="2024-03-01">
    <tecaj oznaka="USD">1.10</tecaj>
    <tecaj oznaka="JPY">160.0</tecaj>
  </tecajnica>
  <tecajnica datum="2024-03-08">
    <tecaj oznaka="USD">1.05</tecaj>
    <tecaj oznaka="JPY">165.0</tecaj>
    <tecaj oznaka="GBP">oops</tecaj>
  </tecajnica>
</DtecBS>`

type testApp struct {
	*App
	out, err *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	repos := memory.NewRepositoryProvider()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewServiceContainer(&config.Config{IngestBatchSize: 100}, repos, logger)

	ta := &testApp{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	ta.App = &App{
		Out:    ta.out,
		Err:    ta.err,
		Logger: logger,
		Now:    func() time.Time { return time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC) },
		Open: func(context.Context) (*portssvc.ServiceContainer, func(), error) {
			return svc, func() {}, nil
		},
	}
	return ta
}

func (ta *testApp) exec(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	ta.out.Reset()
	ta.err.Reset()
	fs := flag.NewFlagSet("ratectl", flag.ContinueOnError)
	cmdr := subcommands.NewCommander(fs, "ratectl")
	for _, c := range Commands(ta.App) {
		cmdr.Register(c, "")
	}
	require.NoError(t, fs.Parse(args))
	return cmdr.Execute(context.Background())
}

func (ta *testApp) ingest(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.xml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))
	require.Equal(t, subcommands.ExitSuccess, ta.exec(t, "ingest", "-f", path, "-v"), ta.err.String())
}

func TestIngest(t *testing.T) {
	ta := newTestApp(t)
	ta.ingest(t)

	assert.Contains(t, ta.out.String(), "Upserted 4 rates, skipped 1 entries")
	assert.Contains(t, ta.out.String(), "Dates 2024-03-01 to 2024-03-08")
	assert.Contains(t, ta.err.String(), "GBP")
}

func TestIngest_MissingFile(t *testing.T) {
	ta := newTestApp(t)

	status := ta.exec(t, "ingest", "-f", filepath.Join(t.TempDir(), "missing.xml"))

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, ta.err.String(), "source unavailable")
}

func TestIngest_NoSourceConfigured(t *testing.T) {
	ta := newTestApp(t)

	assert.Equal(t, subcommands.ExitFailure, ta.exec(t, "ingest"))
}

func TestTable(t *testing.T) {
	ta := newTestApp(t)
	ta.ingest(t)

	status := ta.exec(t, "table", "-s", "2024-03-01", "-e", "2024-03-08", "-c", "usd,gbp")

	require.Equal(t, subcommands.ExitSuccess, status, ta.err.String())
	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Date", "USD", "GBP"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2024-03-01", "1.1000", "N/A"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2024-03-08", "1.0500", "N/A"}, strings.Fields(lines[2]))
}

func TestTable_Usage(t *testing.T) {
	ta := newTestApp(t)

	assert.Equal(t, subcommands.ExitUsageError, ta.exec(t, "table", "-c", "USD"))
	assert.Equal(t, subcommands.ExitUsageError, ta.exec(t, "table", "-s", "1/3/2024", "-c", "USD"))
	assert.Equal(t, subcommands.ExitFailure, ta.exec(t, "table", "-s", "2024-03-08", "-e", "2024-03-01", "-c", "USD"))
	assert.Contains(t, ta.err.String(), "validation error")
}

func TestGainLoss(t *testing.T) {
	ta := newTestApp(t)
	ta.ingest(t)

	status := ta.exec(t, "gainloss", "-base", "USD", "-quote", "JPY", "-s", "2024-03-01", "-e", "2024-03-08", "-amount", "100")

	require.Equal(t, subcommands.ExitSuccess, status, ta.err.String())
	assert.Equal(t, "Gain/loss holding JPY from 2024-03-01 to 2024-03-08: -7.44 USD\n", ta.out.String())
}

func TestGainLoss_DefaultsEndToToday(t *testing.T) {
	ta := newTestApp(t)
	ta.ingest(t)

	status := ta.exec(t, "gainloss", "-base", "USD", "-quote", "JPY", "-s", "2024-03-02", "-amount", "100", "-v")

	require.Equal(t, subcommands.ExitSuccess, status, ta.err.String())
	assert.Contains(t, ta.out.String(), "(USD 1.1000 on 2024-03-01)")
	assert.Contains(t, ta.out.String(), "2024-03-02 to 2024-03-10: -7.44 USD")
}

func TestGainLoss_InsufficientData(t *testing.T) {
	ta := newTestApp(t)
	ta.ingest(t)

	status := ta.exec(t, "gainloss", "-base", "USD", "-quote", "GBP", "-s", "2024-03-01", "-e", "2024-03-08", "-amount", "100")

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, ta.err.String(), "insufficient data")
}

func TestLatest(t *testing.T) {
	ta := newTestApp(t)
	ta.ingest(t)

	require.Equal(t, subcommands.ExitSuccess, ta.exec(t, "latest", "-c", "jpy", "-d", "2024-03-05"))
	assert.Equal(t, "JPY\t160.0000\t2024-03-01\n", ta.out.String())

	require.Equal(t, subcommands.ExitSuccess, ta.exec(t, "latest", "-c", "JPY", "-d", "2024-03-05", "-exact"))
	assert.Equal(t, "JPY\tN/A\n", ta.out.String())

	require.Equal(t, subcommands.ExitSuccess, ta.exec(t, "latest", "-c", "USD"))
	assert.Equal(t, "USD\t1.0500\t2024-03-08\n", ta.out.String())
}

func TestParseDate(t *testing.T) {
	ta := newTestApp(t)

	d, err := ta.parseDate("d", "")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.March, 10), d)

	_, err = ta.parseDate("d", "2024-13-01")
	assert.ErrorContains(t, err, "-d")
}
