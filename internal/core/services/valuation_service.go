package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
)

// divisionPrecision is the number of fractional digits kept by each division leg.
const divisionPrecision = 16

// valuationService computes opportunity gain/loss from stored rates.
type valuationService struct {
	BaseService
	rates portssvc.ExchangeRateReaderSvc
}

// NewValuationService creates a valuation service reading rates through rates.
func NewValuationService(rates portssvc.ExchangeRateReaderSvc) portssvc.ValuationSvcFacade {
	return &valuationService{rates: rates}
}

var _ portssvc.ValuationSvcFacade = (*valuationService)(nil)

// CalculateGainLoss converts Amount of the base currency into the quote currency
// through EUR on the start date, holds it until the end date and converts it back.
// Every leg uses the most recent rate on or before its own date.
func (s *valuationService) CalculateGainLoss(ctx context.Context, req domain.GainLossRequest) (*domain.GainLoss, error) {
	req, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	result := &domain.GainLoss{Request: req}
	lookups := []struct {
		dst      *domain.OptionalRate
		date     time.Time
		currency string
	}{
		{&result.BaseStartRate, req.StartDate, req.BaseCurrency},
		{&result.QuoteStartRate, req.StartDate, req.QuoteCurrency},
		{&result.BaseEndRate, req.EndDate, req.BaseCurrency},
		{&result.QuoteEndRate, req.EndDate, req.QuoteCurrency},
	}

	var missing []string
	for _, l := range lookups {
		rate, err := s.rates.GetMostRecentRate(ctx, l.date, l.currency)
		if err != nil {
			return nil, err
		}
		if !rate.Found {
			missing = append(missing, fmt.Sprintf("%s on or before %s", l.currency, domain.FormatDate(l.date)))
		}
		*l.dst = rate
	}
	if len(missing) > 0 {
		err := fmt.Errorf("%w: no rate for %s", apperrors.ErrInsufficientData, strings.Join(missing, ", "))
		s.LogInfo(ctx, "Gain/loss abandoned", slog.String("reason", err.Error()))
		return nil, err
	}

	// The legs are composed in this exact order; they are never collapsed into a cross rate.
	result.EURAmount = req.Amount.DivRound(result.BaseStartRate.Rate, divisionPrecision)
	result.QuoteAmount = result.EURAmount.Mul(result.QuoteStartRate.Rate)
	result.EndEURAmount = result.QuoteAmount.DivRound(result.QuoteEndRate.Rate, divisionPrecision)
	result.FinalBaseAmount = result.EndEURAmount.Mul(result.BaseEndRate.Rate)
	result.GainLoss = result.FinalBaseAmount.Sub(req.Amount)

	s.LogDebug(ctx, "Calculated gain/loss",
		slog.String("base", req.BaseCurrency),
		slog.String("quote", req.QuoteCurrency),
		slog.String("gain_loss", result.GainLoss.StringFixed(2)))
	return result, nil
}

func (s *valuationService) validateRequest(req domain.GainLossRequest) (domain.GainLossRequest, error) {
	base, err := normalizeCurrency(req.BaseCurrency)
	if err != nil {
		return req, err
	}
	quote, err := normalizeCurrency(req.QuoteCurrency)
	if err != nil {
		return req, err
	}
	if base == quote {
		return req, fmt.Errorf("%w: base and quote currencies cannot be the same", apperrors.ErrValidation)
	}
	if err := validatePeriod(req.StartDate, req.EndDate); err != nil {
		return req, err
	}
	if !req.Amount.IsPositive() {
		return req, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	req.BaseCurrency = base
	req.QuoteCurrency = quote
	req.StartDate = domain.TruncateDate(req.StartDate)
	req.EndDate = domain.TruncateDate(req.EndDate)
	return req, nil
}
