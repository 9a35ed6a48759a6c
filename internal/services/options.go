package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/queries/list_rules"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/usecases/calculate_price"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/usecases/reload_rules"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/usecases/save_rule"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/rulecache"
	transporthttp "github.com/light-bringer/promo-pricing-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	Engine         *domain.Engine
	ReloadRules    *reload_rules.Interactor
	PricingHandler *transporthttp.PricingHandler
	RulesHandler   *transporthttp.RulesHandler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string, bonusSeriesIDs []int64) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	cache := rulecache.NewMemoryCache(time.Minute, 5*time.Minute)

	// 3. Create the pricing engine
	engine := domain.NewEngine()
	engine.SetBonusSeriesIDs(bonusSeriesIDs)

	// 4. Create repositories
	ruleRepo := repo.NewRuleRepo(spannerClient)
	ruleReadModel := repo.NewRuleReadModel(spannerClient)

	// 5. Create command use cases (write operations)
	calculatePriceUseCase := calculate_price.NewInteractor(engine)
	saveRuleUseCase := save_rule.NewInteractor(ruleRepo, comm, clk, cache)
	reloadRulesUseCase := reload_rules.NewInteractor(ruleRepo, engine, clk)

	// 6. Create query use cases (read operations)
	listRulesQuery := list_rules.NewQuery(ruleReadModel, cache)

	// 7. Create HTTP handlers
	pricingHandler := transporthttp.NewPricingHandler(calculatePriceUseCase)
	rulesHandler := transporthttp.NewRulesHandler(saveRuleUseCase, reloadRulesUseCase, listRulesQuery, clk)

	return &ServiceOptions{
		SpannerClient:  spannerClient,
		Engine:         engine,
		ReloadRules:    reloadRulesUseCase,
		PricingHandler: pricingHandler,
		RulesHandler:   rulesHandler,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
