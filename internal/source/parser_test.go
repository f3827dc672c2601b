package source_test

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	"github.com/SscSPs/rate_tracker/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const bsiDocument = `<?xml version="1.0" encoding="UTF-8"?>
<DtecBS xmlns="http://www.bsi.si" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <tecajnica datum="2024-01-02">
    <tecaj oznaka="USD" sifra="840">1.0956</tecaj>
    <tecaj oznaka="JPY" sifra="392">155.4700</tecaj>
  </tecajnica>
  <tecajnica datum="2024-01-03">
    <tecaj oznaka="USD" sifra="840"> 1.0919 </tecaj>
  </tecajnica>
</DtecBS>`

func collect(t *testing.T, p *source.Parser) ([]domain.RateRecord, []error) {
	t.Helper()
	var (
		records []domain.RateRecord
		errs    []error
	)
	for rec, err := range p.Records() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

func TestParser_Records(t *testing.T) {
	records, errs := collect(t, source.NewParser(strings.NewReader(bsiDocument), quietLogger))

	require.Empty(t, errs)
	require.Len(t, records, 3)
	assert.Equal(t, domain.NewDate(2024, time.January, 2), records[0].Date)
	assert.Equal(t, "USD", records[0].Currency)
	assert.Equal(t, "1.0956", records[0].Rate.String())
	assert.Equal(t, "JPY", records[1].Currency)
	assert.Equal(t, "155.47", records[1].Rate.String())
	assert.Equal(t, domain.NewDate(2024, time.January, 3), records[2].Date)
	assert.Equal(t, "1.0919", records[2].Rate.String(), "surrounding whitespace is trimmed")
}

func TestParser_IgnoresNamespacePrefixes(t *testing.T) {
	doc := `<bs:DtecBS xmlns:bs="http://www.bsi.si">
  <bs:tecajnica bs:datum="2024-01-02">
    <bs:tecaj bs:oznaka="chf">0.9300</bs:tecaj>
  </bs:tecajnica>
  <other:tecajnica xmlns:other="urn:x" datum="2024-01-03"><tecaj oznaka="GBP">0.8600</tecaj></other:tecajnica>
</bs:DtecBS>`

	records, errs := collect(t, source.NewParser(strings.NewReader(doc), quietLogger))

	require.Empty(t, errs)
	require.Len(t, records, 2)
	assert.Equal(t, "CHF", records[0].Currency, "codes are normalised to uppercase")
	assert.Equal(t, "GBP", records[1].Currency)
}

func TestParser_MalformedEntriesAreSkipped(t *testing.T) {
	doc := `<DtecBS>
  <tecajnica datum="2024-01-02">
    <tecaj oznaka="USD">1.0956</tecaj>
    <tecaj oznaka="JPY">abc</tecaj>
    <tecaj oznaka="">1.5</tecaj>
    <tecaj oznaka="GBP">-0.86</tecaj>
    <tecaj oznaka="HUF">0</tecaj>
    <tecaj oznaka="EUR">1</tecaj>
    <tecaj oznaka="US1">1.2</tecaj>
    <tecaj oznaka="CHF">0.9300</tecaj>
  </tecajnica>
  <tecajnica datum="02.01.2024">
    <tecaj oznaka="USD">1.0919</tecaj>
    <tecaj oznaka="CHF">0.9310</tecaj>
  </tecajnica>
  <tecaj oznaka="NOK">11.2</tecaj>
  <tecajnica datum="2024-01-04">
    <tecaj oznaka="USD">1.0950</tecaj>
  </tecajnica>
</DtecBS>`

	records, errs := collect(t, source.NewParser(strings.NewReader(doc), quietLogger))

	require.Len(t, records, 3)
	assert.Equal(t, "USD", records[0].Currency)
	assert.Equal(t, "CHF", records[1].Currency)
	assert.Equal(t, domain.NewDate(2024, time.January, 4), records[2].Date)

	// six bad rates, one bad day group (reported once), one orphan rate
	require.Len(t, errs, 8)
	for _, err := range errs {
		assert.ErrorIs(t, err, apperrors.ErrMalformedEntry)
		assert.NotErrorIs(t, err, apperrors.ErrSourceUnavailable)
	}
}

func TestParser_UnreadableDocument(t *testing.T) {
	tests := []struct {
		name string
		r    io.Reader
	}{
		{"empty", strings.NewReader("")},
		{"not xml", strings.NewReader("this is not a document")},
		{"truncated", strings.NewReader(`<DtecBS><tecajnica datum="2024-01-02"><tecaj oznaka="USD">1.09</tecaj>`)},
		{"read failure", io.MultiReader(strings.NewReader("<DtecBS>"), failingReader{})},
		{"nil reader", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := collect(t, source.NewParser(tt.r, quietLogger))
			require.NotEmpty(t, errs)
			assert.ErrorIs(t, errs[len(errs)-1], apperrors.ErrSourceUnavailable)
		})
	}
}

func TestParser_NotRestartable(t *testing.T) {
	p := source.NewParser(strings.NewReader(bsiDocument), quietLogger)
	first, _ := collect(t, p)
	require.Len(t, first, 3)

	second, errs := collect(t, p)
	assert.Empty(t, second)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], apperrors.ErrSourceUnavailable)
}

func TestParser_StopsWhenConsumerStops(t *testing.T) {
	p := source.NewParser(strings.NewReader(bsiDocument), quietLogger)
	n := 0
	for range p.Records() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestParser_CustomOptions(t *testing.T) {
	doc := `<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01">
  <Day date="2024-01-02"><Rate currency="USD">1.0956</Rate></Day>
</gesmes:Envelope>`
	opts := source.ParserOptions{DayElement: "Day", DateAttr: "date", RateElement: "Rate", CurrencyAttr: "currency"}

	records, errs := collect(t, source.NewParserWithOptions(strings.NewReader(doc), opts, nil))

	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, "USD", records[0].Currency)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
