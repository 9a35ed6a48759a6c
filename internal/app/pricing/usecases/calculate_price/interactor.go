package calculate_price

import (
	"context"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/logger"
)

// Request contains the order to price.
type Request struct {
	Items         []domain.ProductWithQuantity
	PromotionType int64
}

// Interactor handles the calculate price use case.
type Interactor struct {
	engine *domain.Engine
}

// NewInteractor creates a new calculate price interactor.
func NewInteractor(engine *domain.Engine) *Interactor {
	return &Interactor{
		engine: engine,
	}
}

// Execute prices the order against the currently loaded rules.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PricingResult, error) {
	result, err := i.engine.CalculateOrderPrice(req.Items, req.PromotionType)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().
		Str("calculation_id", result.CalculationID).
		Int("items", len(req.Items)).
		Int64("promotion_type", req.PromotionType).
		Float64("original_total", result.OriginalTotalPrice).
		Float64("total_discount", result.TotalDiscountAmount).
		Float64("final_total", result.FinalTotalPrice).
		Msg("order priced")

	return result, nil
}
