// Package source reads published reference-rate documents.
package source

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ParserOptions names the elements and attributes of the rate document.
// Element names are matched by local name; namespace prefixes are ignored.
type ParserOptions struct {
	DayElement   string
	DateAttr     string
	RateElement  string
	CurrencyAttr string
}

// DefaultParserOptions matches the Bank of Slovenia reference rate list
// (<tecajnica datum="..."><tecaj oznaka="USD">1.0956</tecaj></tecajnica>).
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		DayElement:   "tecajnica",
		DateAttr:     "datum",
		RateElement:  "tecaj",
		CurrencyAttr: "oznaka",
	}
}

type dayEntry struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

type rateEntry struct {
	Currency string `validate:"required,alpha,len=3,uppercase,ne=EUR"`
	Value    string `validate:"required,numeric"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parser turns one rate document into RateRecords.
type Parser struct {
	r        io.Reader
	opts     ParserOptions
	logger   *slog.Logger
	consumed bool
}

// NewParser creates a parser for the default document layout.
func NewParser(r io.Reader, logger *slog.Logger) *Parser {
	return NewParserWithOptions(r, DefaultParserOptions(), logger)
}

// NewParserWithOptions creates a parser for a custom document layout.
func NewParserWithOptions(r io.Reader, opts ParserOptions, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{r: r, opts: opts, logger: logger}
}

// Records lazily yields the records of the document.
//
// A yielded error wrapping apperrors.ErrMalformedEntry reports a skipped day
// group or rate entry; iteration continues after it. An error wrapping
// apperrors.ErrSourceUnavailable is terminal. The sequence can be ranged over
// once; a fresh Parser is needed per document.
func (p *Parser) Records() iter.Seq2[domain.RateRecord, error] {
	return func(yield func(domain.RateRecord, error) bool) {
		if p.consumed {
			yield(domain.RateRecord{}, fmt.Errorf("%w: document already consumed", apperrors.ErrSourceUnavailable))
			return
		}
		p.consumed = true
		p.parse(yield)
	}
}

func (p *Parser) parse(yield func(domain.RateRecord, error) bool) {
	if p.r == nil {
		yield(domain.RateRecord{}, fmt.Errorf("%w: no document", apperrors.ErrSourceUnavailable))
		return
	}

	dec := xml.NewDecoder(p.r)
	var (
		sawRoot  bool
		inDay    bool
		dayOK    bool
		dayDate  string
		inRate   bool
		currency string
		text     strings.Builder
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if !sawRoot {
				yield(domain.RateRecord{}, fmt.Errorf("%w: empty document", apperrors.ErrSourceUnavailable))
			}
			return
		}
		if err != nil {
			yield(domain.RateRecord{}, fmt.Errorf("%w: %w", apperrors.ErrSourceUnavailable, err))
			return
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			switch t.Name.Local {
			case p.opts.DayElement:
				inDay = true
				dayDate = attr(t, p.opts.DateAttr)
				dayOK = true
				if err := validate.Struct(dayEntry{Date: dayDate}); err != nil {
					dayOK = false
					if !p.skip(yield, fmt.Errorf("%w: day group with date %q: %v", apperrors.ErrMalformedEntry, dayDate, err)) {
						return
					}
				}
			case p.opts.RateElement:
				inRate = true
				currency = attr(t, p.opts.CurrencyAttr)
				text.Reset()
			}
		case xml.CharData:
			if inRate {
				text.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case p.opts.RateElement:
				if !inRate {
					continue
				}
				inRate = false
				if !inDay {
					if !p.skip(yield, fmt.Errorf("%w: rate %q outside of a day group", apperrors.ErrMalformedEntry, currency)) {
						return
					}
					continue
				}
				if !dayOK {
					// Already reported with its day group.
					continue
				}
				rec, err := newRecord(dayDate, currency, text.String())
				if err != nil {
					if !p.skip(yield, err) {
						return
					}
					continue
				}
				if !yield(rec, nil) {
					return
				}
			case p.opts.DayElement:
				inDay = false
			}
		}
	}
}

// skip logs and yields a malformed-entry error.
func (p *Parser) skip(yield func(domain.RateRecord, error) bool, err error) bool {
	p.logger.Warn("Skipping malformed entry", slog.String("error", err.Error()))
	return yield(domain.RateRecord{}, err)
}

func newRecord(date, currency, value string) (domain.RateRecord, error) {
	entry := rateEntry{
		Currency: domain.NormalizeCurrency(currency),
		Value:    strings.TrimSpace(value),
	}
	if err := validate.Struct(entry); err != nil {
		return domain.RateRecord{}, fmt.Errorf("%w: rate %q=%q on %s: %v", apperrors.ErrMalformedEntry, currency, entry.Value, date, err)
	}

	rate, err := decimal.NewFromString(entry.Value)
	if err != nil || !rate.IsPositive() {
		return domain.RateRecord{}, fmt.Errorf("%w: rate %q=%q on %s: must be a positive decimal", apperrors.ErrMalformedEntry, currency, entry.Value, date)
	}

	day, err := domain.ParseDate(date)
	if err != nil {
		return domain.RateRecord{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedEntry, err)
	}

	return domain.RateRecord{Date: day, Currency: entry.Currency, Rate: rate}, nil
}

// attr returns the value of the attribute with the given local name.
func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
