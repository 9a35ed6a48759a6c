package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDiscount(t *testing.T) {
	t.Run("percentage takes a share of the amount", func(t *testing.T) {
		d := calculateDiscount(DiscountStrategy{Type: DiscountPercentage, Value: 10}, 200, 2)
		assert.Equal(t, float64(20), d)
	})

	t.Run("percentage honors the cap", func(t *testing.T) {
		d := calculateDiscount(DiscountStrategy{Type: DiscountPercentage, Value: 50, MaxDiscount: 30}, 200, 2)
		assert.Equal(t, float64(30), d)
	})

	t.Run("fixed is clamped to the amount", func(t *testing.T) {
		assert.Equal(t, float64(15), calculateDiscount(DiscountStrategy{Type: DiscountFixed, Value: 15}, 200, 1))
		assert.Equal(t, float64(200), calculateDiscount(DiscountStrategy{Type: DiscountFixed, Value: 500}, 200, 1))
	})

	t.Run("special price discounts down to value per unit", func(t *testing.T) {
		d := calculateDiscount(DiscountStrategy{Type: DiscountSpecialPrice, Value: 80}, 300, 3)
		assert.Equal(t, float64(60), d)
	})

	t.Run("special price above the base grants nothing", func(t *testing.T) {
		d := calculateDiscount(DiscountStrategy{Type: DiscountSpecialPrice, Value: 150}, 100, 1)
		assert.Equal(t, float64(0), d)
	})

	t.Run("strategies without a computation grant nothing", func(t *testing.T) {
		assert.Equal(t, float64(0), calculateDiscount(DiscountStrategy{Type: DiscountBuyXGetY}, 100, 1))
		assert.Equal(t, float64(0), calculateDiscount(DiscountStrategy{Type: DiscountBundle}, 100, 1))
		assert.Equal(t, float64(0), calculateDiscount(DiscountStrategy{Type: "mystery"}, 100, 1))
	})
}

func TestCalculateTieredDiscount(t *testing.T) {
	ladder := &TieredReductionConfig{Tiers: []ReductionTier{
		{Threshold: 100, Discount: 10},
		{Threshold: 200, Discount: 30},
	}}

	t.Run("below every threshold grants nothing", func(t *testing.T) {
		assert.Equal(t, float64(0), CalculateTieredDiscount(ladder, 99, 1))
	})

	t.Run("highest qualifying tier wins", func(t *testing.T) {
		assert.Equal(t, float64(10), CalculateTieredDiscount(ladder, 150, 1))
		assert.Equal(t, float64(30), CalculateTieredDiscount(ladder, 250, 1))
	})

	t.Run("tier order in the list does not matter", func(t *testing.T) {
		reversed := &TieredReductionConfig{Tiers: []ReductionTier{
			{Threshold: 200, Discount: 30},
			{Threshold: 100, Discount: 10},
		}}
		assert.Equal(t, float64(30), CalculateTieredDiscount(reversed, 250, 1))
		assert.Equal(t, float64(10), CalculateTieredDiscount(reversed, 150, 1))
	})

	t.Run("quantity subject tiers compare against quantity", func(t *testing.T) {
		cfg := &TieredReductionConfig{Tiers: []ReductionTier{
			{Threshold: 3, Discount: 5, SubjectType: TierSubjectQuantity},
		}}
		assert.Equal(t, float64(0), CalculateTieredDiscount(cfg, 1000, 2))
		assert.Equal(t, float64(5), CalculateTieredDiscount(cfg, 1000, 3))
	})

	t.Run("percentage tiers take a share of the amount", func(t *testing.T) {
		cfg := &TieredReductionConfig{Tiers: []ReductionTier{
			{Threshold: 100, Discount: 10, DiscountType: TierDiscountPercentage},
		}}
		assert.Equal(t, float64(25), CalculateTieredDiscount(cfg, 250, 1))
	})

	t.Run("every tiers repeat per step", func(t *testing.T) {
		cfg := &TieredReductionConfig{Tiers: []ReductionTier{
			{Threshold: 100, Discount: 10, Every: 100, DiscountType: TierDiscountEvery},
		}}
		assert.Equal(t, float64(20), CalculateTieredDiscount(cfg, 250, 1))
	})

	t.Run("zero step every defaults to one", func(t *testing.T) {
		cfg := &TieredReductionConfig{Tiers: []ReductionTier{
			{Threshold: 1, Discount: 2, DiscountType: TierDiscountEvery},
		}}
		assert.Equal(t, float64(6), CalculateTieredDiscount(cfg, 3, 1))
	})

	t.Run("config cap clamps the result", func(t *testing.T) {
		cfg := &TieredReductionConfig{
			Tiers:       []ReductionTier{{Threshold: 100, Discount: 50}},
			MaxDiscount: 40,
		}
		assert.Equal(t, float64(40), CalculateTieredDiscount(cfg, 500, 1))
	})

	t.Run("nil config grants nothing", func(t *testing.T) {
		assert.Equal(t, float64(0), CalculateTieredDiscount(nil, 500, 1))
	})
}
