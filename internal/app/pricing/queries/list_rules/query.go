package list_rules

import (
	"context"
	"fmt"
	"time"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/rulecache"
)

// Request contains filtering parameters.
type Request struct {
	Scope         string
	Status        string
	PromotionType *int64
	Tag           string
	PageSize      int
}

// cacheTTL keeps back-office listings snappy without serving stale data for
// long. Saves flush the cache anyway.
const cacheTTL = 30 * time.Second

// Query handles the list rules query use case.
type Query struct {
	readModel contracts.RuleReadModel
	cache     rulecache.Cache
}

// NewQuery creates a new list rules query.
func NewQuery(readModel contracts.RuleReadModel, cache rulecache.Cache) *Query {
	return &Query{
		readModel: readModel,
		cache:     cache,
	}
}

// Execute retrieves a filtered list of rules, served from cache when the
// same filter was queried recently.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.RuleListResult, error) {
	key := cacheKey(req)
	if cached, ok := q.cache.Get(key); ok {
		if result, ok := cached.(*contracts.RuleListResult); ok {
			return result, nil
		}
	}

	filter := &contracts.RuleListFilter{
		Scope:         req.Scope,
		Status:        req.Status,
		PromotionType: req.PromotionType,
		Tag:           req.Tag,
		PageSize:      req.PageSize,
	}

	result, err := q.readModel.ListRules(ctx, filter)
	if err != nil {
		return nil, err
	}

	q.cache.Set(key, result, cacheTTL)
	return result, nil
}

func cacheKey(req *Request) string {
	promotionType := int64(-1)
	if req.PromotionType != nil {
		promotionType = *req.PromotionType
	}
	return fmt.Sprintf("rules:%s:%s:%d:%s:%d", req.Scope, req.Status, promotionType, req.Tag, req.PageSize)
}
