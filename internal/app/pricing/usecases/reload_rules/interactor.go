package reload_rules

import (
	"context"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/logger"
)

// Response reports what the reload loaded.
type Response struct {
	Loaded  int
	Skipped int
}

// Interactor handles the reload rules use case: it pulls the active rule
// set from storage and swaps it into the engine.
type Interactor struct {
	repo   contracts.RuleRepository
	engine *domain.Engine
	clock  clock.Clock
}

// NewInteractor creates a new reload rules interactor.
func NewInteractor(repo contracts.RuleRepository, engine *domain.Engine, clk clock.Clock) *Interactor {
	return &Interactor{
		repo:   repo,
		engine: engine,
		clock:  clk,
	}
}

// Execute loads every active rule whose time window covers now into the
// engine. Rules outside their window stay stored but are not evaluated
// until a reload falls inside the window.
func (i *Interactor) Execute(ctx context.Context) (*Response, error) {
	rules, err := i.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	inWindow := make([]domain.PromotionRule, 0, len(rules))
	for _, rule := range rules {
		if rule.StartTime != nil && now.Before(*rule.StartTime) {
			continue
		}
		if rule.EndTime != nil && now.After(*rule.EndTime) {
			continue
		}
		inWindow = append(inWindow, rule)
	}

	i.engine.LoadRules(inWindow)

	resp := &Response{
		Loaded:  len(inWindow),
		Skipped: len(rules) - len(inWindow),
	}

	logger.WithContext(ctx).Info().
		Int("loaded", resp.Loaded).
		Int("skipped", resp.Skipped).
		Msg("rules reloaded")

	return resp, nil
}
