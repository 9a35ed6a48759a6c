package save_rule

import (
	"context"
	"fmt"
	"strings"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/models/m_rule"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/logger"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/rulecache"
)

// Request contains the rule to persist.
type Request struct {
	Rule domain.PromotionRule
	// Disabled stores the rule without making it visible to the engine.
	Disabled bool
}

// Response carries the validation outcome alongside the stored rule ID.
type Response struct {
	RuleID     int64
	Validation domain.ValidationResult
}

// Interactor handles the save rule use case.
type Interactor struct {
	repo      contracts.RuleRepository
	committer *committer.Committer
	clock     clock.Clock
	cache     rulecache.Cache
}

// NewInteractor creates a new save rule interactor.
func NewInteractor(
	repo contracts.RuleRepository,
	committer *committer.Committer,
	clk clock.Clock,
	cache rulecache.Cache,
) *Interactor {
	return &Interactor{
		repo:      repo,
		committer: committer,
		clock:     clk,
		cache:     cache,
	}
}

// Execute validates the rule and persists it following the Golden Mutation
// Pattern. Invalid rules are rejected before any mutation is built; the
// validation findings are returned either way.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	validation := domain.ValidateRule(req.Rule, i.clock.Now())
	resp := &Response{RuleID: req.Rule.ID, Validation: validation}

	if !validation.Valid {
		return resp, fmt.Errorf("%w: %s", domain.ErrRuleInvalid, strings.Join(validation.Errors, "; "))
	}

	status := m_rule.StatusActive
	if req.Disabled {
		status = m_rule.StatusDisabled
	}

	plan := committer.NewPlan()
	mut, err := i.repo.InsertMut(&req.Rule, status)
	if err != nil {
		return resp, err
	}
	plan.Add(mut)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return resp, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Stored listings are stale now.
	i.cache.Flush()

	logger.WithContext(ctx).Info().
		Int64("rule_id", req.Rule.ID).
		Str("status", status).
		Int("warnings", len(validation.Warnings)).
		Msg("rule saved")

	return resp, nil
}
