package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	"github.com/SscSPs/rate_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// Display precision for rates and monetary amounts.
const (
	RatePrecision   = 4
	AmountPrecision = 2
)

// NotAvailable is printed in place of an absent rate.
const NotAvailable = "N/A"

// RatesPeriodQuery binds the query parameters of the rate listing endpoints.
type RatesPeriodQuery struct {
	Start      string `form:"start" binding:"required,datetime=2006-01-02"`
	End        string `form:"end" binding:"required,datetime=2006-01-02"`
	Currencies string `form:"currencies" binding:"required"` // comma separated, e.g. USD,JPY
}

// CurrencyList splits the comma separated currency parameter.
func (q RatesPeriodQuery) CurrencyList() []string {
	return strings.Split(q.Currencies, ",")
}

// LatestRateQuery binds the query parameters of the latest rate endpoint.
type LatestRateQuery struct {
	Date  string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Exact bool   `form:"exact"`
}

// GainLossQuery binds the query parameters of the gain/loss endpoint.
type GainLossQuery struct {
	Base   string `form:"base" binding:"required,len=3"`
	Quote  string `form:"quote" binding:"required,len=3"`
	Start  string `form:"start" binding:"required,datetime=2006-01-02"`
	End    string `form:"end" binding:"required,datetime=2006-01-02"`
	Amount string `form:"amount" binding:"required,numeric"`
}

// ToGainLossRequest converts the query into a domain request.
func (q GainLossQuery) ToGainLossRequest() (domain.GainLossRequest, error) {
	start, err := domain.ParseDate(q.Start)
	if err != nil {
		return domain.GainLossRequest{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	end, err := domain.ParseDate(q.End)
	if err != nil {
		return domain.GainLossRequest{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	amount, err := decimal.NewFromString(q.Amount)
	if err != nil {
		return domain.GainLossRequest{}, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, q.Amount)
	}
	return domain.GainLossRequest{
		BaseCurrency:  q.Base,
		QuoteCurrency: q.Quote,
		StartDate:     start,
		EndDate:       end,
		Amount:        amount,
	}, nil
}

// RateResponse is a single stored rate.
type RateResponse struct {
	Date     string          `json:"date"`
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// ToRateResponse converts a domain.RateRecord to RateResponse DTO
func ToRateResponse(rec domain.RateRecord) RateResponse {
	return RateResponse{
		Date:     domain.FormatDate(rec.Date),
		Currency: rec.Currency,
		Rate:     rec.Rate,
	}
}

// ToListRateResponse converts a slice of domain.RateRecord to a slice of RateResponse DTOs.
func ToListRateResponse(records []domain.RateRecord) []RateResponse {
	responses := make([]RateResponse, len(records))
	for i, rec := range records {
		responses[i] = ToRateResponse(rec)
	}
	return responses
}

// LatestRateResponse answers a point lookup. Rate and RateDate are omitted when absent.
type LatestRateResponse struct {
	Currency  string           `json:"currency"`
	AsOf      string           `json:"asOf"`
	Found     bool             `json:"found"`
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	RateDate  string           `json:"rateDate,omitempty"`
	Formatted string           `json:"formatted"`
}

// ToLatestRateResponse converts an OptionalRate to LatestRateResponse DTO
func ToLatestRateResponse(currency string, asOf time.Time, rate domain.OptionalRate) LatestRateResponse {
	resp := LatestRateResponse{
		Currency:  domain.NormalizeCurrency(currency),
		AsOf:      domain.FormatDate(asOf),
		Found:     rate.Found,
		Formatted: FormatOptionalRate(rate),
	}
	if rate.Found {
		r := rate.Rate
		resp.Rate = &r
		resp.RateDate = domain.FormatDate(rate.Date)
	}
	return resp
}

// RatesTableResponse is the date x currency grid. Absent cells are "N/A".
type RatesTableResponse struct {
	Currencies []string               `json:"currencies"`
	Rows       []RatesTableRowResponse `json:"rows"`
}

// RatesTableRowResponse is one published date of the grid.
type RatesTableRowResponse struct {
	Date  string            `json:"date"`
	Rates map[string]string `json:"rates"`
}

// ToRatesTableResponse converts a domain.RatesTable to RatesTableResponse DTO
func ToRatesTableResponse(table *domain.RatesTable) RatesTableResponse {
	resp := RatesTableResponse{
		Currencies: table.Currencies,
		Rows:       make([]RatesTableRowResponse, len(table.Rows)),
	}
	for i, row := range table.Rows {
		cells := make(map[string]string, len(table.Currencies))
		for _, code := range table.Currencies {
			cells[code] = FormatOptionalRate(row.Rates[code])
		}
		resp.Rows[i] = RatesTableRowResponse{Date: domain.FormatDate(row.Date), Rates: cells}
	}
	return resp
}

// FormatOptionalRate renders a rate with four decimals, or N/A when absent.
func FormatOptionalRate(rate domain.OptionalRate) string {
	if !rate.Found {
		return NotAvailable
	}
	return utils.FormatFixed(rate.Rate, RatePrecision)
}

// GainLossResponse carries the gain/loss and every intermediate leg.
type GainLossResponse struct {
	Base            string          `json:"base"`
	Quote           string          `json:"quote"`
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	Amount          decimal.Decimal `json:"amount"`
	BaseStartRate   decimal.Decimal `json:"baseStartRate"`
	QuoteStartRate  decimal.Decimal `json:"quoteStartRate"`
	BaseEndRate     decimal.Decimal `json:"baseEndRate"`
	QuoteEndRate    decimal.Decimal `json:"quoteEndRate"`
	EURAmount       decimal.Decimal `json:"eurAmount"`
	QuoteAmount     decimal.Decimal `json:"quoteAmount"`
	EndEURAmount    decimal.Decimal `json:"endEurAmount"`
	FinalBaseAmount decimal.Decimal `json:"finalBaseAmount"`
	GainLoss        decimal.Decimal `json:"gainLoss"`
	Formatted       string          `json:"formatted"`
}

// ToGainLossResponse converts a domain.GainLoss to GainLossResponse DTO
func ToGainLossResponse(gl *domain.GainLoss) GainLossResponse {
	return GainLossResponse{
		Base:            gl.Request.BaseCurrency,
		Quote:           gl.Request.QuoteCurrency,
		StartDate:       domain.FormatDate(gl.Request.StartDate),
		EndDate:         domain.FormatDate(gl.Request.EndDate),
		Amount:          gl.Request.Amount,
		BaseStartRate:   gl.BaseStartRate.Rate,
		QuoteStartRate:  gl.QuoteStartRate.Rate,
		BaseEndRate:     gl.BaseEndRate.Rate,
		QuoteEndRate:    gl.QuoteEndRate.Rate,
		EURAmount:       gl.EURAmount,
		QuoteAmount:     gl.QuoteAmount,
		EndEURAmount:    gl.EndEURAmount,
		FinalBaseAmount: gl.FinalBaseAmount,
		GainLoss:        gl.GainLoss,
		Formatted:       utils.FormatFixed(gl.GainLoss, AmountPrecision),
	}
}

// IngestionResponse summarises one ingestion pass.
type IngestionResponse struct {
	RunID     string   `json:"runID"`
	Upserted  int      `json:"upserted"`
	Skipped   int      `json:"skipped"`
	Skips     []string `json:"skips,omitempty"`
	FirstDate string   `json:"firstDate,omitempty"`
	LastDate  string   `json:"lastDate,omitempty"`
}

// ToIngestionResponse converts a domain.IngestionResult to IngestionResponse DTO
func ToIngestionResponse(res *domain.IngestionResult) IngestionResponse {
	resp := IngestionResponse{
		RunID:    res.RunID,
		Upserted: res.Upserted,
		Skipped:  res.Skipped,
	}
	for _, skip := range res.Skips {
		resp.Skips = append(resp.Skips, skip.Error())
	}
	if !res.FirstDate.IsZero() {
		resp.FirstDate = domain.FormatDate(res.FirstDate)
		resp.LastDate = domain.FormatDate(res.LastDate)
	}
	return resp
}
