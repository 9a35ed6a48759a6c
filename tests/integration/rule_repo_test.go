//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/promo-pricing-service/internal/models/m_rule"
	"github.com/light-bringer/promo-pricing-service/tests/testutil"
)

func TestRuleRepository_InsertAndGet(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	repository := repo.NewRuleRepo(client)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	rule := testutil.SimplePercentRule(1, 100, 10)
	rule.StartTime = &start
	rule.EndTime = &end
	rule.Tags = []string{"seasonal"}

	mut, err := repository.InsertMut(&rule, m_rule.StatusActive)
	require.NoError(t, err)
	_, err = client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	testutil.AssertRowCount(t, client, "promotion_rules", 1)

	retrieved, err := repository.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, rule.Name, retrieved.Name)
	assert.Equal(t, domain.ScopeProduct, retrieved.Scope)
	assert.Equal(t, domain.DiscountPercentage, retrieved.DiscountStrategy.Type)
	assert.Equal(t, float64(10), retrieved.DiscountStrategy.Value)
	require.NotNil(t, retrieved.StartTime)
	assert.True(t, start.Equal(*retrieved.StartTime))
}

func TestRuleRepository_GetByID_NotFound(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	_, err := repo.NewRuleRepo(client).GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestRuleRepository_ListActive(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	repository := repo.NewRuleRepo(client)

	testutil.CreateTestRule(t, client, testutil.SimplePercentRule(1, 10, 5), m_rule.StatusActive)
	testutil.CreateTestRule(t, client, testutil.SimplePercentRule(2, 30, 5), m_rule.StatusActive)
	testutil.CreateTestRule(t, client, testutil.SimplePercentRule(3, 20, 5), m_rule.StatusDisabled)

	rules, err := repository.ListActive(ctx)
	require.NoError(t, err)

	// Disabled rules are excluded; results come back by priority descending.
	require.Len(t, rules, 2)
	assert.Equal(t, int64(2), rules[0].ID)
	assert.Equal(t, int64(1), rules[1].ID)
}

func TestRuleRepository_SetStatus(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	repository := repo.NewRuleRepo(client)

	testutil.CreateTestRule(t, client, testutil.SimplePercentRule(1, 10, 5), m_rule.StatusActive)

	mut := repository.SetStatusMut(1, m_rule.StatusDisabled)
	_, err := client.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)

	rules, err := repository.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestRuleRepository_Exists(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	repository := repo.NewRuleRepo(client)

	testutil.CreateTestRule(t, client, testutil.SimplePercentRule(1, 10, 5), m_rule.StatusActive)

	exists, err := repository.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repository.Exists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, exists)
}
