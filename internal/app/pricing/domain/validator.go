package domain

import (
	"fmt"
	"strings"
	"time"
)

// ValidationResult is the outcome of checking one rule. Errors make the
// rule unusable; warnings flag configurations that are legal but probably
// not what the author meant.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateRule checks a rule for structural problems. It never fails; every
// finding lands in the result. now anchors the expiry warning.
func ValidateRule(rule PromotionRule, now time.Time) ValidationResult {
	res := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if rule.ID <= 0 {
		res.addError("rule id must be a positive integer")
	}
	if strings.TrimSpace(rule.Name) == "" {
		res.addError("rule name must not be empty")
	}
	if rule.Priority < 0 {
		res.addError("priority must not be negative")
	}
	switch rule.Scope {
	case ScopeProduct, ScopeOrder, ScopeGlobal:
	default:
		res.addError("scope must be product, order or global")
	}

	if rule.StartTime != nil && rule.EndTime != nil {
		if !rule.StartTime.Before(*rule.EndTime) {
			res.addError("start time must be before end time")
		}
		if rule.EndTime.Before(now) {
			res.addWarning("rule has already expired")
		}
	}

	validateStrategy(rule.DiscountStrategy, &res)
	validateConditions(rule, &res)

	res.Valid = len(res.Errors) == 0
	return res
}

func validateStrategy(s DiscountStrategy, res *ValidationResult) {
	switch s.Type {
	case DiscountPercentage:
		if s.Value < -100 || s.Value > 100 {
			res.addError("percentage value must be between -100 and 100")
		}
		if s.Value > 50 {
			res.addWarning("discount exceeds 50 percent, double-check the value")
		}

	case DiscountFixed:
		if s.Value <= 0 {
			res.addError("fixed discount amount must be greater than zero")
		}

	case DiscountSpecialPrice:
		if s.Value <= 0 {
			res.addError("special price must be greater than zero")
		}

	case DiscountTieredReduction:
		if s.TieredConfig == nil {
			res.addError("tiered reduction requires a tier configuration")
			return
		}
		tiers := s.TieredConfig.Tiers
		if len(tiers) == 0 {
			res.addError("tier list must not be empty")
			return
		}
		for i := 1; i < len(tiers); i++ {
			if tiers[i].Threshold <= tiers[i-1].Threshold {
				res.addError("tier thresholds must be strictly increasing")
			}
		}

	case DiscountBuyXGetY:
		if s.BuyXGetYConfig == nil {
			res.addError("buyXGetY requires a configuration")
			return
		}
		if s.BuyXGetYConfig.BuyQuantity <= 0 {
			res.addError("buy quantity must be greater than zero")
		}
		if s.BuyXGetYConfig.GetQuantity <= 0 {
			res.addError("get quantity must be greater than zero")
		}

	case DiscountBundle:
		if s.BundleConfig == nil {
			res.addError("bundle discount requires a bundle configuration")
		}

	default:
		res.addError(fmt.Sprintf("unsupported discount type: %s", s.Type))
	}
}

func validateConditions(rule PromotionRule, res *ValidationResult) {
	if rule.Scope == ScopeProduct && len(rule.ProductConditions) == 0 {
		res.addWarning("product rule has no product conditions and will match every product")
	}
	if rule.Scope == ScopeOrder && rule.OrderConditions == nil {
		res.addWarning("order rule has no order conditions")
	}
	if rule.Scope == ScopeGlobal && rule.OrderConditions == nil {
		res.addWarning("global rule has no order conditions")
	}
}

func (r *ValidationResult) addError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *ValidationResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
