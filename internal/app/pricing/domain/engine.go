package domain

import (
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Engine evaluates promotion rules against an order. Rules are held in a
// snapshot replaced wholesale by LoadRules, so concurrent price calculations
// never observe a partially loaded rule set.
type Engine struct {
	mu            sync.RWMutex
	rules         []PromotionRule
	bonusSeriesID map[int64]struct{}
}

func NewEngine() *Engine {
	return &Engine{bonusSeriesID: map[int64]struct{}{}}
}

// LoadRules replaces the active rule set with a copy of the given rules,
// ordered by priority descending. Equal priorities keep their given order.
func (e *Engine) LoadRules(rules []PromotionRule) {
	sorted := make([]PromotionRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	e.mu.Lock()
	e.rules = sorted
	e.mu.Unlock()
}

// SetBonusSeriesIDs replaces the set of series whose items are settled with
// bonus points instead of money. Such items are excluded from monetary
// totals and contribute to UsedBonusPoints instead.
func (e *Engine) SetBonusSeriesIDs(ids []int64) {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	e.mu.Lock()
	e.bonusSeriesID = set
	e.mu.Unlock()
}

// Rules returns a copy of the active rule set in evaluation order.
func (e *Engine) Rules() []PromotionRule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]PromotionRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// CalculateOrderPrice prices the given line items under the rules of the
// given promotion type. Items with zero quantity or a zero ID are ignored;
// lines sharing an ID keep only the last one.
// The call is side-effect free: repeated calls with the same input yield
// the same prices under the same rule set.
func (e *Engine) CalculateOrderPrice(items []ProductWithQuantity, promotionType int64) (*PricingResult, error) {
	if items == nil {
		return nil, ErrNilLineItems
	}

	e.mu.RLock()
	rules := e.rules
	bonusSeries := e.bonusSeriesID
	e.mu.RUnlock()

	// Duplicate IDs collapse to the last occurrence; per-product pricing is
	// keyed by ID and one line item owns each key.
	deduped := make([]ProductWithQuantity, 0, len(items))
	position := make(map[int64]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 || item.ID == 0 {
			continue
		}
		if pos, seen := position[item.ID]; seen {
			deduped[pos] = item
			continue
		}
		position[item.ID] = len(deduped)
		deduped = append(deduped, item)
	}

	ordinary := make([]ProductWithQuantity, 0, len(deduped))
	var usedBonusPoints float64
	for _, item := range deduped {
		if item.Serie != nil {
			if _, isBonus := bonusSeries[item.Serie.ID]; isBonus {
				usedBonusPoints += float64(item.Quantity) * bonusPointFactor(item)
				continue
			}
		}
		ordinary = append(ordinary, item)
	}

	var originalTotal float64
	for i := range ordinary {
		originalTotal += ordinary[i].baseAmount()
	}
	originalTotal = math.Round(originalTotal*100) / 100

	result := &PricingResult{
		CalculationID:        uuid.NewString(),
		OriginalTotalPrice:   originalTotal,
		Products:             []ProductPricing{},
		DiscountApplications: []DiscountApplication{},
		MatchLogs:            []MatchLog{},
		FreeProducts:         []FreeProduct{},
		UsedBonusPoints:      usedBonusPoints,
	}

	calc := newOrderCalculation(ordinary, result)
	calc.runScopePass(rules, ScopeProduct, promotionType)
	calc.runScopePass(rules, ScopeOrder, promotionType)
	calc.runScopePass(rules, ScopeGlobal, promotionType)

	var totalDiscount float64
	for _, id := range calc.order {
		pricing := calc.pricing[id]
		totalDiscount += pricing.TotalDiscount
		result.Products = append(result.Products, *pricing)
	}
	result.TotalDiscountAmount = totalDiscount
	result.FinalTotalPrice = originalTotal - totalDiscount

	return result, nil
}

// bonusPointFactor reads the per-unit bonus point cost from the item's
// model type attribute, defaulting to zero when absent or unparseable.
func bonusPointFactor(item ProductWithQuantity) float64 {
	if item.ModelType == nil {
		return 0
	}
	factor := toNumber(item.ModelType.Value)
	if math.IsNaN(factor) {
		return 0
	}
	return factor
}
