package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRule() PromotionRule {
	return PromotionRule{
		ID:                1,
		Name:              "ten percent",
		Priority:          100,
		Scope:             ScopeProduct,
		ProductConditions: ConditionSet{"series": {Equal: "A"}},
		DiscountStrategy:  DiscountStrategy{Type: DiscountPercentage, Value: 10},
	}
}

func TestValidateRule(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("a well-formed rule passes", func(t *testing.T) {
		res := ValidateRule(validRule(), now)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
	})

	t.Run("basic field errors", func(t *testing.T) {
		rule := validRule()
		rule.ID = 0
		rule.Name = "   "
		rule.Priority = -1
		rule.Scope = "galaxy"

		res := ValidateRule(rule, now)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, "rule id must be a positive integer")
		assert.Contains(t, res.Errors, "rule name must not be empty")
		assert.Contains(t, res.Errors, "priority must not be negative")
		assert.Contains(t, res.Errors, "scope must be product, order or global")
	})

	t.Run("inverted time range is an error", func(t *testing.T) {
		rule := validRule()
		start := now.Add(time.Hour)
		end := now
		rule.StartTime = &start
		rule.EndTime = &end

		res := ValidateRule(rule, now)
		assert.Contains(t, res.Errors, "start time must be before end time")
	})

	t.Run("expired rule is a warning, not an error", func(t *testing.T) {
		rule := validRule()
		start := now.Add(-48 * time.Hour)
		end := now.Add(-24 * time.Hour)
		rule.StartTime = &start
		rule.EndTime = &end

		res := ValidateRule(rule, now)
		assert.True(t, res.Valid)
		assert.Contains(t, res.Warnings, "rule has already expired")
	})

	t.Run("percentage bounds", func(t *testing.T) {
		rule := validRule()
		rule.DiscountStrategy.Value = 150
		res := ValidateRule(rule, now)
		assert.Contains(t, res.Errors, "percentage value must be between -100 and 100")

		rule.DiscountStrategy.Value = 60
		res = ValidateRule(rule, now)
		assert.True(t, res.Valid)
		assert.NotEmpty(t, res.Warnings)
	})

	t.Run("fixed and special price must be positive", func(t *testing.T) {
		rule := validRule()
		rule.DiscountStrategy = DiscountStrategy{Type: DiscountFixed, Value: 0}
		assert.False(t, ValidateRule(rule, now).Valid)

		rule.DiscountStrategy = DiscountStrategy{Type: DiscountSpecialPrice, Value: -5}
		assert.False(t, ValidateRule(rule, now).Valid)
	})

	t.Run("tiered reduction configuration", func(t *testing.T) {
		rule := validRule()
		rule.DiscountStrategy = DiscountStrategy{Type: DiscountTieredReduction}
		res := ValidateRule(rule, now)
		assert.Contains(t, res.Errors, "tiered reduction requires a tier configuration")

		rule.DiscountStrategy.TieredConfig = &TieredReductionConfig{}
		res = ValidateRule(rule, now)
		assert.Contains(t, res.Errors, "tier list must not be empty")

		rule.DiscountStrategy.TieredConfig = &TieredReductionConfig{Tiers: []ReductionTier{
			{Threshold: 200, Discount: 30},
			{Threshold: 100, Discount: 10},
		}}
		res = ValidateRule(rule, now)
		assert.Contains(t, res.Errors, "tier thresholds must be strictly increasing")

		rule.DiscountStrategy.TieredConfig = &TieredReductionConfig{Tiers: []ReductionTier{
			{Threshold: 100, Discount: 10},
			{Threshold: 200, Discount: 30},
		}}
		assert.True(t, ValidateRule(rule, now).Valid)
	})

	t.Run("buy x get y configuration", func(t *testing.T) {
		rule := validRule()
		rule.DiscountStrategy = DiscountStrategy{Type: DiscountBuyXGetY}
		res := ValidateRule(rule, now)
		assert.Contains(t, res.Errors, "buyXGetY requires a configuration")

		rule.DiscountStrategy.BuyXGetYConfig = &BuyXGetYConfig{BuyQuantity: 0, GetQuantity: 0}
		res = ValidateRule(rule, now)
		assert.Contains(t, res.Errors, "buy quantity must be greater than zero")
		assert.Contains(t, res.Errors, "get quantity must be greater than zero")
	})

	t.Run("bundle requires its config", func(t *testing.T) {
		rule := validRule()
		rule.DiscountStrategy = DiscountStrategy{Type: DiscountBundle}
		res := ValidateRule(rule, now)
		assert.Contains(t, res.Errors, "bundle discount requires a bundle configuration")
	})

	t.Run("unknown discount type is an error", func(t *testing.T) {
		rule := validRule()
		rule.DiscountStrategy = DiscountStrategy{Type: "voucher"}
		res := ValidateRule(rule, now)
		require.False(t, res.Valid)
		assert.Contains(t, res.Errors[0], "unsupported discount type")
	})

	t.Run("advisory warnings per scope", func(t *testing.T) {
		product := validRule()
		product.ProductConditions = ConditionSet{}
		assert.NotEmpty(t, ValidateRule(product, now).Warnings)

		order := validRule()
		order.Scope = ScopeOrder
		order.OrderConditions = nil
		assert.NotEmpty(t, ValidateRule(order, now).Warnings)

		global := validRule()
		global.Scope = ScopeGlobal
		assert.NotEmpty(t, ValidateRule(global, now).Warnings)
	})
}
