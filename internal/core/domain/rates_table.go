package domain

import (
	"sort"
	"time"
)

// RatesTable is a date-by-currency pivot of stored rates.
type RatesTable struct {
	Currencies []string
	Rows       []RatesTableRow
}

// RatesTableRow holds the rates of one date. Every requested currency has an
// entry; currencies without a row on that date are marked not found.
type RatesTableRow struct {
	Date  time.Time
	Rates map[string]OptionalRate
}

// PivotRates groups a flat record list by date. Dates with no record at all
// are omitted; there is no zero-fill.
func PivotRates(records []RateRecord, currencies []string) *RatesTable {
	byDate := make(map[time.Time]map[string]OptionalRate)
	for _, r := range records {
		rates, ok := byDate[r.Date]
		if !ok {
			rates = make(map[string]OptionalRate, len(currencies))
			byDate[r.Date] = rates
		}
		rates[r.Currency] = SomeRate(r.Rate, r.Date)
	}

	table := &RatesTable{
		Currencies: currencies,
		Rows:       make([]RatesTableRow, 0, len(byDate)),
	}
	for date, rates := range byDate {
		for _, c := range currencies {
			if _, ok := rates[c]; !ok {
				rates[c] = NoRate()
			}
		}
		table.Rows = append(table.Rows, RatesTableRow{Date: date, Rates: rates})
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i].Date.Before(table.Rows[j].Date)
	})
	return table
}
