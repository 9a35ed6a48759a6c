package domain

import "math"

// calculateDiscount computes the discount a strategy grants over a line with
// the given undiscounted amount and quantity. It fails closed: strategies
// without a computation (buyXGetY, bundle) and malformed configs contribute
// zero rather than erroring, so one bad rule never aborts a pricing pass.
func calculateDiscount(s DiscountStrategy, baseAmount float64, quantity int64) float64 {
	switch s.Type {
	case DiscountPercentage:
		return capDiscount(baseAmount*(s.Value/100), s.MaxDiscount)
	case DiscountFixed:
		// A fixed discount never turns a line negative.
		return math.Min(s.Value, baseAmount)
	case DiscountSpecialPrice:
		// Value is the per-unit target price.
		return math.Max(0, baseAmount-s.Value*float64(quantity))
	default:
		return 0
	}
}

// CalculateTieredDiscount resolves a tiered full-reduction ladder for the
// given subject values. Among tiers whose subject (amount or quantity per
// the tier's own SubjectType) meets the threshold, the tier with the highest
// threshold wins regardless of list order. No qualifying tier means zero.
func CalculateTieredDiscount(cfg *TieredReductionConfig, amount, quantity float64) float64 {
	if cfg == nil {
		return 0
	}

	var best *ReductionTier
	for i := range cfg.Tiers {
		tier := &cfg.Tiers[i]
		subject := amount
		if tier.SubjectType == TierSubjectQuantity {
			subject = quantity
		}
		if subject < tier.Threshold {
			continue
		}
		if best == nil || tier.Threshold > best.Threshold {
			best = tier
		}
	}
	if best == nil {
		return 0
	}

	subject := amount
	if best.SubjectType == TierSubjectQuantity {
		subject = quantity
	}

	var discount float64
	switch best.DiscountType {
	case TierDiscountEvery:
		every := best.Every
		if every <= 0 {
			every = 1
		}
		discount = best.Discount * math.Floor(subject/every)
	case TierDiscountPercentage:
		discount = amount * (best.Discount / 100)
	default: // fixed
		discount = best.Discount
	}

	return capDiscount(discount, cfg.MaxDiscount)
}

// capDiscount clamps a discount to max when a positive cap is configured.
func capDiscount(discount, max float64) float64 {
	if max > 0 {
		return math.Min(discount, max)
	}
	return discount
}
