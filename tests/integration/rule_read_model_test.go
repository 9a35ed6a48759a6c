//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/promo-pricing-service/internal/models/m_rule"
	"github.com/light-bringer/promo-pricing-service/tests/testutil"
)

func TestRuleReadModel_ListRules(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	readModel := repo.NewRuleReadModel(client)

	productRule := testutil.SimplePercentRule(1, 10, 5)
	productRule.Tags = []string{"seasonal"}
	testutil.CreateTestRule(t, client, productRule, m_rule.StatusActive)

	orderRule := testutil.SimplePercentRule(2, 20, 5)
	orderRule.Scope = domain.ScopeOrder
	testutil.CreateTestRule(t, client, orderRule, m_rule.StatusDisabled)

	t.Run("no filter returns everything", func(t *testing.T) {
		result, err := readModel.ListRules(ctx, &contracts.RuleListFilter{})
		require.NoError(t, err)
		assert.Len(t, result.Rules, 2)
	})

	t.Run("scope filter", func(t *testing.T) {
		result, err := readModel.ListRules(ctx, &contracts.RuleListFilter{Scope: "order"})
		require.NoError(t, err)
		require.Len(t, result.Rules, 1)
		assert.Equal(t, int64(2), result.Rules[0].RuleID)
	})

	t.Run("status filter", func(t *testing.T) {
		result, err := readModel.ListRules(ctx, &contracts.RuleListFilter{Status: m_rule.StatusActive})
		require.NoError(t, err)
		require.Len(t, result.Rules, 1)
		assert.Equal(t, int64(1), result.Rules[0].RuleID)
	})

	t.Run("tag filter", func(t *testing.T) {
		result, err := readModel.ListRules(ctx, &contracts.RuleListFilter{Tag: "seasonal"})
		require.NoError(t, err)
		require.Len(t, result.Rules, 1)
		assert.Equal(t, int64(1), result.Rules[0].RuleID)
	})

	t.Run("get by id keeps documents as raw json", func(t *testing.T) {
		dto, err := readModel.GetRuleByID(ctx, 1)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, dto.ProductConditions)
		assert.NotEmpty(t, dto.DiscountStrategy)
	})

	t.Run("missing rule yields not found", func(t *testing.T) {
		_, err := readModel.GetRuleByID(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrRuleNotFound)
	})
}
