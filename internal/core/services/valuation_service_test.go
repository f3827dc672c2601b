package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/core/services"
	"github.com/SscSPs/rate_tracker/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ValuationServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *memory.ExchangeRateRepository
	service portssvc.ValuationSvcFacade
}

func TestValuationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ValuationServiceTestSuite))
}

var (
	mar1 = domain.NewDate(2024, time.March, 1)
	mar4 = domain.NewDate(2024, time.March, 4)
	mar8 = domain.NewDate(2024, time.March, 8)
)

func (suite *ValuationServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = memory.NewExchangeRateRepository()
	suite.service = services.NewValuationService(services.NewExchangeRateService(suite.repo))
}

func (suite *ValuationServiceTestSuite) seed(records ...domain.RateRecord) {
	in, err := suite.repo.BeginIngestion(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(in.UpsertMany(suite.ctx, records))
	suite.Require().NoError(in.Commit(suite.ctx))
}

func rate(date time.Time, code, value string) domain.RateRecord {
	return domain.RateRecord{Date: date, Currency: code, Rate: decimal.RequireFromString(value)}
}

func request(base, quote string, start, end time.Time, amount string) domain.GainLossRequest {
	return domain.GainLossRequest{
		BaseCurrency:  base,
		QuoteCurrency: quote,
		StartDate:     start,
		EndDate:       end,
		Amount:        decimal.RequireFromString(amount),
	}
}

func (suite *ValuationServiceTestSuite) TestCalculateGainLoss() {
	suite.seed(
		rate(mar1, "USD", "1.10"), rate(mar1, "JPY", "160.0"),
		rate(mar8, "USD", "1.05"), rate(mar8, "JPY", "165.0"),
	)

	got, err := suite.service.CalculateGainLoss(suite.ctx, request("usd", "jpy", mar1, mar8, "100"))

	suite.Require().NoError(err)
	suite.Equal("USD", got.Request.BaseCurrency)
	suite.Equal("JPY", got.Request.QuoteCurrency)
	suite.Equal("90.91", got.EURAmount.StringFixed(2))
	suite.Equal("14545.45", got.QuoteAmount.StringFixed(2))
	suite.Equal("88.15", got.EndEURAmount.StringFixed(2))
	suite.Equal("92.56", got.FinalBaseAmount.StringFixed(2))
	suite.Equal("-7.44", got.GainLoss.StringFixed(2))
}

func (suite *ValuationServiceTestSuite) TestCalculateGainLoss_StableRates() {
	suite.seed(
		rate(mar1, "USD", "1.25"), rate(mar1, "CHF", "2"),
		rate(mar8, "USD", "1.25"), rate(mar8, "CHF", "2"),
	)

	got, err := suite.service.CalculateGainLoss(suite.ctx, request("USD", "CHF", mar1, mar8, "100"))

	suite.Require().NoError(err)
	suite.True(got.GainLoss.IsZero(), "got %s", got.GainLoss)
	suite.True(got.FinalBaseAmount.Equal(decimal.NewFromInt(100)))
}

func (suite *ValuationServiceTestSuite) TestCalculateGainLoss_UsesMostRecentRate() {
	// Mar 2 and 3 are a weekend without publications.
	suite.seed(
		rate(mar1, "USD", "1.10"), rate(mar1, "JPY", "160.0"),
		rate(mar4, "USD", "1.05"), rate(mar4, "JPY", "165.0"),
	)

	got, err := suite.service.CalculateGainLoss(suite.ctx,
		request("USD", "JPY", domain.NewDate(2024, time.March, 2), domain.NewDate(2024, time.March, 10), "100"))

	suite.Require().NoError(err)
	suite.Equal(mar1, got.BaseStartRate.Date)
	suite.Equal(mar4, got.QuoteEndRate.Date)
	suite.Equal("-7.44", got.GainLoss.StringFixed(2))
}

func (suite *ValuationServiceTestSuite) TestCalculateGainLoss_PivotCurrency() {
	suite.seed(rate(mar1, "USD", "1.25"), rate(mar8, "USD", "1.00"))

	got, err := suite.service.CalculateGainLoss(suite.ctx, request("EUR", "USD", mar1, mar8, "100"))

	suite.Require().NoError(err)
	// 100 EUR -> 125 USD -> 125 EUR
	suite.Equal("25.00", got.GainLoss.StringFixed(2))
	suite.True(got.BaseStartRate.Rate.Equal(decimal.NewFromInt(1)))
}

func (suite *ValuationServiceTestSuite) TestCalculateGainLoss_InsufficientData() {
	suite.seed(rate(mar4, "USD", "1.10"), rate(mar4, "JPY", "160.0"))

	tests := []struct {
		name string
		req  domain.GainLossRequest
	}{
		{"no rates before start", request("USD", "JPY", mar1, mar8, "100")},
		{"unknown quote currency", request("USD", "GBP", mar4, mar8, "100")},
		{"unknown base currency", request("CHF", "USD", mar4, mar8, "100")},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.service.CalculateGainLoss(suite.ctx, tt.req)
			suite.Nil(got)
			suite.ErrorIs(err, apperrors.ErrInsufficientData)
		})
	}
}

func (suite *ValuationServiceTestSuite) TestCalculateGainLoss_InvalidRequest() {
	tests := []struct {
		name string
		req  domain.GainLossRequest
	}{
		{"same currency", request("USD", "usd", mar1, mar8, "100")},
		{"bad base", request("US", "JPY", mar1, mar8, "100")},
		{"reversed period", request("USD", "JPY", mar8, mar1, "100")},
		{"zero amount", request("USD", "JPY", mar1, mar8, "0")},
		{"negative amount", request("USD", "JPY", mar1, mar8, "-5")},
		{"missing end", request("USD", "JPY", mar1, time.Time{}, "100")},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.service.CalculateGainLoss(suite.ctx, tt.req)
			suite.Nil(got)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *ValuationServiceTestSuite) TestCalculateGainLoss_StoreUnavailable() {
	suite.repo.Close()

	_, err := suite.service.CalculateGainLoss(suite.ctx, request("USD", "JPY", mar1, mar8, "100"))

	suite.ErrorIs(err, apperrors.ErrStoreUnavailable)
	suite.NotErrorIs(err, apperrors.ErrInsufficientData)
}
