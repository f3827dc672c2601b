package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PivotCurrency is the currency every stored rate is quoted against.
const PivotCurrency = "EUR"

// DateFormat is the ISO calendar date layout used at every boundary.
const DateFormat = "2006-01-02"

// RateRecord is a single published rate: units of Currency per 1 EUR on Date.
// (Date, Currency) is unique in the store.
type RateRecord struct {
	Date     time.Time       `json:"date"`
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// NewDate returns the calendar date of t as midnight UTC.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDate drops the time-of-day component of t, keeping its calendar date.
func TruncateDate(t time.Time) time.Time {
	return NewDate(t.Date())
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// OptionalRate is the result of a single-rate lookup.
// Found is false when the store confirmed there is no matching row.
type OptionalRate struct {
	Rate  decimal.Decimal
	Date  time.Time // effective date of the row that was found
	Found bool
}

// SomeRate returns a present OptionalRate.
func SomeRate(rate decimal.Decimal, date time.Time) OptionalRate {
	return OptionalRate{Rate: rate, Date: date, Found: true}
}

// NoRate returns an absent OptionalRate.
func NoRate() OptionalRate {
	return OptionalRate{}
}

// Get returns the rate and whether it is present.
func (o OptionalRate) Get() (decimal.Decimal, bool) {
	return o.Rate, o.Found
}
