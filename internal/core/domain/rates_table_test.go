package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivotRates(t *testing.T) {
	d1 := domain.NewDate(2024, time.January, 2)
	d2 := domain.NewDate(2024, time.January, 3)
	d4 := domain.NewDate(2024, time.January, 5)

	records := []domain.RateRecord{
		{Date: d1, Currency: "CHF", Rate: decimal.RequireFromString("0.9300")},
		{Date: d1, Currency: "USD", Rate: decimal.RequireFromString("1.0956")},
		{Date: d2, Currency: "USD", Rate: decimal.RequireFromString("1.0919")},
		{Date: d4, Currency: "CHF", Rate: decimal.RequireFromString("0.9320")},
	}

	table := domain.PivotRates(records, []string{"USD", "CHF"})

	require.Len(t, table.Rows, 3, "dates without any row must be omitted")
	assert.Equal(t, []string{"USD", "CHF"}, table.Currencies)
	assert.Equal(t, d1, table.Rows[0].Date)
	assert.Equal(t, d2, table.Rows[1].Date)
	assert.Equal(t, d4, table.Rows[2].Date)

	usd, ok := table.Rows[0].Rates["USD"].Get()
	assert.True(t, ok)
	assert.True(t, usd.Equal(decimal.RequireFromString("1.0956")))

	assert.False(t, table.Rows[1].Rates["CHF"].Found, "missing currency on a present date is marked as no data")
	assert.False(t, table.Rows[2].Rates["USD"].Found)
	assert.True(t, table.Rows[2].Rates["CHF"].Found)
}

func TestPivotRates_Empty(t *testing.T) {
	table := domain.PivotRates(nil, []string{"USD"})
	assert.Empty(t, table.Rows)
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.February, 29), d)

	for _, bad := range []string{"", "2024-2-29", "29.02.2024", "2023-02-29", "2024-13-01"} {
		_, err := domain.ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "USD", domain.NormalizeCurrency(" usd "))
	assert.Equal(t, "", domain.NormalizeCurrency("  "))
}
