package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/SscSPs/rate_tracker/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestOpen_Memory(t *testing.T) {
	repos, err := Open(context.Background(), &config.Config{StoreDriver: config.StoreDriverMemory}, quietLogger)
	require.NoError(t, err)
	require.NotNil(t, repos.ExchangeRateRepo)
	repos.Close()
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "sqlite"}, quietLogger)
	assert.ErrorContains(t, err, "unknown store driver")
}
