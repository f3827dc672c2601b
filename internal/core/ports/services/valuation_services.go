package services

import (
	"context"

	"github.com/SscSPs/rate_tracker/internal/core/domain"
)

// ValuationSvcFacade answers opportunity gain/loss questions.
type ValuationSvcFacade interface {
	// CalculateGainLoss values holding the base amount in the quote currency over the period.
	CalculateGainLoss(ctx context.Context, req domain.GainLossRequest) (*domain.GainLoss, error)
}
