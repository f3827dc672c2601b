package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GainLossRequest describes an opportunity gain/loss calculation: Amount of
// BaseCurrency held as QuoteCurrency from StartDate to EndDate.
type GainLossRequest struct {
	BaseCurrency  string
	QuoteCurrency string
	StartDate     time.Time
	EndDate       time.Time
	Amount        decimal.Decimal
}

// GainLoss is the outcome of a triangulated round trip through EUR.
// Amounts are kept at full precision; rounding is left to presentation.
type GainLoss struct {
	Request GainLossRequest

	BaseStartRate  OptionalRate
	QuoteStartRate OptionalRate
	BaseEndRate    OptionalRate
	QuoteEndRate   OptionalRate

	EURAmount       decimal.Decimal
	QuoteAmount     decimal.Decimal
	EndEURAmount    decimal.Decimal
	FinalBaseAmount decimal.Decimal
	GainLoss        decimal.Decimal // denominated in BaseCurrency
}

// IngestionResult summarises one ingestion pass.
type IngestionResult struct {
	RunID     string
	Upserted  int
	Skipped   int
	Skips     []error
	FirstDate time.Time
	LastDate  time.Time
}
