package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/models/m_rule"
)

func TestRuleCodec(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	min := 300.0

	rule := &domain.PromotionRule{
		ID:          40,
		Name:        "spring ladder",
		Description: "tiered reduction for march",
		Priority:    80,
		Scope:       domain.ScopeOrder,
		StartTime:   &start,
		EndTime:     &end,
		ProductConditions: domain.ConditionSet{
			"series": {In: []any{"SERIES-A"}},
		},
		OrderConditions: domain.ConditionSet{
			domain.OrderFieldTotalAmount: {GreaterThanOrEqual: &min},
		},
		DiscountStrategy: domain.DiscountStrategy{
			Type: domain.DiscountTieredReduction,
			TieredConfig: &domain.TieredReductionConfig{Tiers: []domain.ReductionTier{
				{Threshold: 300, Discount: 40},
			}},
		},
		Tags:     []string{"seasonal"},
		Metadata: map[string]any{"campaign": "spring"},
	}

	data, err := domainToData(rule, m_rule.StatusActive)
	require.NoError(t, err)

	t.Run("documents are stored as json", func(t *testing.T) {
		assert.JSONEq(t, `{"series":{"in":["SERIES-A"]}}`, data.ProductConditions)
		require.True(t, data.OrderConditions.Valid)
		assert.JSONEq(t, `{"totalAmount":{"greaterThanOrEqual":300}}`, data.OrderConditions.StringVal)
		assert.True(t, data.StartTime.Valid)
		assert.Equal(t, m_rule.StatusActive, data.Status)
	})

	t.Run("decoding restores the rule", func(t *testing.T) {
		back, err := dataToDomain(data)
		require.NoError(t, err)

		assert.Equal(t, rule.ID, back.ID)
		assert.Equal(t, rule.Scope, back.Scope)
		assert.Equal(t, start, *back.StartTime)
		require.NotNil(t, back.DiscountStrategy.TieredConfig)
		assert.Equal(t, float64(40), back.DiscountStrategy.TieredConfig.Tiers[0].Discount)

		cond := back.OrderConditions[domain.OrderFieldTotalAmount]
		require.NotNil(t, cond.GreaterThanOrEqual)
		assert.Equal(t, float64(300), *cond.GreaterThanOrEqual)
	})

	t.Run("optional documents stay null", func(t *testing.T) {
		bare := &domain.PromotionRule{ID: 1, Name: "bare", Scope: domain.ScopeProduct}
		data, err := domainToData(bare, m_rule.StatusDisabled)
		require.NoError(t, err)

		assert.False(t, data.OrderConditions.Valid)
		assert.False(t, data.Metadata.Valid)
		assert.Equal(t, "{}", data.ProductConditions)

		back, err := dataToDomain(data)
		require.NoError(t, err)
		assert.Nil(t, back.OrderConditions)
		assert.NotNil(t, back.ProductConditions)
	})
}
