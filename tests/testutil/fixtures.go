package testutil

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/repo"
)

// CreateTestRule stores the given rule directly in the database with the
// given status and returns its ID.
func CreateTestRule(t *testing.T, client *spanner.Client, rule domain.PromotionRule, status string) int64 {
	t.Helper()

	ctx := context.Background()
	ruleRepo := repo.NewRuleRepo(client)

	mut, err := ruleRepo.InsertMut(&rule, status)
	require.NoError(t, err, "failed to build rule mutation")

	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err, "failed to create test rule")

	return rule.ID
}

// SimplePercentRule is a minimal valid product-scope percentage rule.
func SimplePercentRule(id int64, priority int64, percentage float64) domain.PromotionRule {
	return domain.PromotionRule{
		ID:                id,
		Name:              "test percent rule",
		Priority:          priority,
		Scope:             domain.ScopeProduct,
		ProductConditions: domain.ConditionSet{},
		DiscountStrategy: domain.DiscountStrategy{
			Type:  domain.DiscountPercentage,
			Value: percentage,
		},
	}
}
