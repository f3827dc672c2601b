package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
	"github.com/SscSPs/rate_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/rate_tracker/internal/core/ports/services"
	"github.com/SscSPs/rate_tracker/internal/dto"
	"github.com/SscSPs/rate_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	valuationService    portssvc.ValuationSvcFacade
	now                 func() time.Time
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, vs portssvc.ValuationSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		valuationService:    vs,
		now:                 time.Now,
	}
}

// RegisterExchangeRateRoutes registers routes related to exchange rates and valuation.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, valuationService portssvc.ValuationSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService, valuationService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/table", h.getRatesTable)
		rates.GET("/:currency/latest", h.getLatestRate)
	}

	valuation := rg.Group("/valuation")
	{
		valuation.GET("/gain-loss", h.getGainLoss)
	}
}

// listRates godoc
// @Summary List exchange rates for a period
// @Description Retrieves every stored EUR-based rate in [start, end] for the given currencies, ordered by date then currency
// @Tags rates
// @Produce  json
// @Param   start query string true "First date (YYYY-MM-DD)"
// @Param   end query string true "Last date (YYYY-MM-DD)"
// @Param   currencies query string true "Comma separated currency codes, e.g. USD,JPY"
// @Success 200 {array} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Rate store unavailable"
// @Router /rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.RatesPeriodQuery
	start, end, ok := bindPeriod(c, logger, &query)
	if !ok {
		return
	}

	records, err := h.exchangeRateService.GetRatesForPeriod(c.Request.Context(), start, end, query.CurrencyList())
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve exchange rates")
		return
	}

	logger.Info("Exchange rates retrieved successfully", slog.Int("count", len(records)))
	c.JSON(http.StatusOK, dto.ToListRateResponse(records))
}

// getRatesTable godoc
// @Summary Get a rates table
// @Description Retrieves the rates of a period pivoted by date. Cells without a published rate read "N/A", others carry four decimals.
// @Tags rates
// @Produce  json
// @Param   start query string true "First date (YYYY-MM-DD)"
// @Param   end query string true "Last date (YYYY-MM-DD)"
// @Param   currencies query string true "Comma separated currency codes, e.g. USD,JPY"
// @Success 200 {object} dto.RatesTableResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Rate store unavailable"
// @Router /rates/table [get]
func (h *exchangeRateHandler) getRatesTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.RatesPeriodQuery
	start, end, ok := bindPeriod(c, logger, &query)
	if !ok {
		return
	}

	table, err := h.exchangeRateService.GetRatesTable(c.Request.Context(), start, end, query.CurrencyList())
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve rates table")
		return
	}

	logger.Info("Rates table retrieved successfully", slog.Int("rows", len(table.Rows)))
	c.JSON(http.StatusOK, dto.ToRatesTableResponse(table))
}

// getLatestRate godoc
// @Summary Get the most recent rate
// @Description Retrieves the latest rate published on or before the given date (today when omitted). With exact=true only a rate published on that date is returned.
// @Tags rates
// @Produce  json
// @Param   currency path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   date query string false "As-of date (YYYY-MM-DD)"
// @Param   exact query bool false "Only accept a rate published on the date itself"
// @Success 200 {object} dto.LatestRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or date"
// @Failure 404 {object} dto.LatestRateResponse "No rate published on or before the date"
// @Failure 503 {object} map[string]string "Rate store unavailable"
// @Router /rates/{currency}/latest [get]
func (h *exchangeRateHandler) getLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := c.Param("currency")

	var query dto.LatestRateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for GetLatestRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	asOf := domain.TruncateDate(h.now())
	if query.Date != "" {
		d, err := domain.ParseDate(query.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		asOf = d
	}

	logger = logger.With(slog.String("currency", currency), slog.String("as_of", domain.FormatDate(asOf)))
	logger.Info("Received request to get latest rate", slog.Bool("exact", query.Exact))

	find := h.exchangeRateService.GetMostRecentRate
	if query.Exact {
		find = h.exchangeRateService.GetExactRate
	}
	rate, err := find(c.Request.Context(), asOf, currency)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	resp := dto.ToLatestRateResponse(currency, asOf, rate)
	if !rate.Found {
		logger.Info("No rate available")
		c.JSON(http.StatusNotFound, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getGainLoss godoc
// @Summary Calculate opportunity gain/loss
// @Description Converts amount of the base currency into the quote currency through EUR at start, holds it and converts it back at end. Every leg uses the most recent rate on or before its date.
// @Tags valuation
// @Produce  json
// @Param   base query string true "Base currency (3 letters)"
// @Param   quote query string true "Quote currency (3 letters)"
// @Param   start query string true "Start date (YYYY-MM-DD)"
// @Param   end query string true "End date (YYYY-MM-DD)"
// @Param   amount query string true "Positive amount of the base currency"
// @Success 200 {object} dto.GainLossResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} map[string]string "A required rate is missing"
// @Failure 503 {object} map[string]string "Rate store unavailable"
// @Router /valuation/gain-loss [get]
func (h *exchangeRateHandler) getGainLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.GainLossQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for GetGainLoss", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req, err := query.ToGainLossRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("base", req.BaseCurrency), slog.String("quote", req.QuoteCurrency))
	logger.Info("Received request to calculate gain/loss")

	result, err := h.valuationService.CalculateGainLoss(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to calculate gain/loss")
		return
	}

	c.JSON(http.StatusOK, dto.ToGainLossResponse(result))
}

// bindPeriod binds a RatesPeriodQuery and parses its dates. It writes the
// 400 response itself and reports false when binding fails.
func bindPeriod(c *gin.Context, logger *slog.Logger, query *dto.RatesPeriodQuery) (time.Time, time.Time, bool) {
	if err := c.ShouldBindQuery(query); err != nil {
		logger.Warn("Failed to bind period query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return time.Time{}, time.Time{}, false
	}
	start, err := domain.ParseDate(query.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	end, err := domain.ParseDate(query.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// respondWithError maps service errors to status codes. Client errors echo the
// error text; server side failures reply with fallback.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.StatusCode(err)
	if status < http.StatusInternalServerError {
		logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	logger.Error(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": fallback})
}
