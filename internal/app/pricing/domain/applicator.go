package domain

import (
	"fmt"
	"math"
)

// Non-match reasons recorded into match logs.
const (
	reasonNoMatchingProducts   = "no matching products"
	reasonOrderConditionsMiss  = "order conditions not met"
	reasonGlobalConditionsMiss = "global conditions not met"
)

// orderCalculation is the per-call working state of one pricing pass: the
// ordinary (non-bonus) line items, their running per-product pricing, and
// the result under construction. It is created fresh per CalculateOrderPrice
// call and discarded with the result.
type orderCalculation struct {
	items   []ProductWithQuantity
	pricing map[int64]*ProductPricing
	order   []int64
	result  *PricingResult
}

func newOrderCalculation(items []ProductWithQuantity, result *PricingResult) *orderCalculation {
	calc := &orderCalculation{
		items:   items,
		pricing: make(map[int64]*ProductPricing, len(items)),
		order:   make([]int64, 0, len(items)),
		result:  result,
	}
	for i := range items {
		item := &items[i]
		calc.pricing[item.ID] = &ProductPricing{
			ID:                item.ID,
			Quantity:          item.Quantity,
			OriginalUnitPrice: item.BasePrice,
			FinalUnitPrice:    item.BasePrice,
			AppliedRules:      []int64{},
		}
		calc.order = append(calc.order, item.ID)
	}
	return calc
}

// runScopePass applies every rule of the given scope and promotion type, in
// the (already priority-sorted) order supplied. A match log entry is always
// appended per rule; failures inside one rule are contained to that rule's
// log entry and never abort the pass.
func (c *orderCalculation) runScopePass(rules []PromotionRule, scope RuleScope, promotionType int64) {
	for i := range rules {
		rule := &rules[i]
		if rule.Scope != scope || rule.PromotionType != promotionType {
			continue
		}

		log := MatchLog{
			RuleID:          rule.ID,
			RuleName:        rule.Name,
			AppliedProducts: []int64{},
		}
		c.applyRule(rule, scope, &log)
		c.result.MatchLogs = append(c.result.MatchLogs, log)
	}
}

// applyRule dispatches on scope, converting panics from malformed rule data
// into the rule's match log reason.
func (c *orderCalculation) applyRule(rule *PromotionRule, scope RuleScope, log *MatchLog) {
	defer func() {
		if r := recover(); r != nil {
			log.Matched = false
			log.Reason = fmt.Sprintf("rule application failed: %v", r)
		}
	}()

	switch scope {
	case ScopeProduct:
		c.applyProductRule(rule, log)
	case ScopeOrder:
		c.applyOrderRule(rule, log)
	case ScopeGlobal:
		c.applyGlobalRule(rule, log)
	}
}

// applyProductRule applies a product-scope rule to every matching line item.
// Tiered reductions treat the whole matched set as one aggregate and
// allocate the discount proportionally; all other strategies apply per item
// with exclusivity honored.
func (c *orderCalculation) applyProductRule(rule *PromotionRule, log *MatchLog) {
	matched := c.matchItems(rule.ProductConditions)
	if len(matched) == 0 {
		log.Reason = reasonNoMatchingProducts
		return
	}

	log.Matched = true
	log.AppliedProducts = itemIDs(matched)

	if rule.DiscountStrategy.Type == DiscountTieredReduction {
		var baseAmount, baseQuantity float64
		for _, item := range matched {
			baseAmount += item.baseAmount()
			baseQuantity += float64(item.Quantity)
		}
		discount := CalculateTieredDiscount(rule.DiscountStrategy.TieredConfig, baseAmount, baseQuantity)
		if discount > 0 {
			c.distributeDiscount(matched, discount, rule)
		}
		return
	}

	for _, item := range matched {
		pricing := c.pricing[item.ID]

		if pricing.IsExclusive && !rule.Exclusive {
			// An exclusive rule already owns this product.
			continue
		}
		if rule.Exclusive {
			// Last exclusive rule wins: discard whatever stacked before.
			pricing.TotalDiscount = 0
			pricing.AppliedRules = []int64{}
			pricing.IsExclusive = true
		}

		amount := item.baseAmount()
		discount := calculateDiscount(rule.DiscountStrategy, amount, item.Quantity)
		if discount <= 0 {
			continue
		}

		pricing.TotalDiscount += discount
		pricing.FinalUnitPrice = math.Max(0, (amount-pricing.TotalDiscount)/float64(item.Quantity))
		pricing.AppliedRules = append(pricing.AppliedRules, rule.ID)

		c.result.DiscountApplications = append(c.result.DiscountApplications, DiscountApplication{
			RuleID:         rule.ID,
			RuleName:       rule.Name,
			ProductID:      item.ID,
			OriginalPrice:  amount,
			DiscountValue:  rule.DiscountStrategy.displayValue(),
			DiscountAmount: discount,
			FinalPrice:     pricing.FinalUnitPrice * float64(item.Quantity),
			Quantity:       item.Quantity,
			DiscountType:   rule.DiscountStrategy.Type,
		})
	}
}

// applyOrderRule gates on the rule's order conditions over the whole
// candidate set, then computes an aggregate discount over the matched items.
// Only tiered reductions carry an order-level computation; other strategies
// mark the rule matched without granting a discount.
func (c *orderCalculation) applyOrderRule(rule *PromotionRule, log *MatchLog) {
	if rule.OrderConditions != nil && !matchConditionSet(aggregateOrder(c.items), rule.OrderConditions) {
		log.Reason = reasonOrderConditionsMiss
		return
	}

	matched := c.matchItems(rule.ProductConditions)
	if len(matched) == 0 {
		log.Reason = reasonNoMatchingProducts
		return
	}

	log.Matched = true
	log.AppliedProducts = itemIDs(matched)

	if rule.DiscountStrategy.Type != DiscountTieredReduction {
		return
	}

	var totalAmount, totalQuantity float64
	for _, item := range matched {
		totalAmount += item.baseAmount()
		totalQuantity += float64(item.Quantity)
	}
	discount := CalculateTieredDiscount(rule.DiscountStrategy.TieredConfig, totalAmount, totalQuantity)
	if discount > 0 {
		c.distributeDiscount(matched, discount, rule)
	}
}

// applyGlobalRule computes a single discount over the running total of
// already-finalized prices and distributes it across all items. When the
// rule carries order conditions, the running total is injected as an
// implicit totalAmount >= gate unless the rule sets its own.
func (c *orderCalculation) applyGlobalRule(rule *PromotionRule, log *MatchLog) {
	var runningTotal float64
	for _, id := range c.order {
		pricing := c.pricing[id]
		runningTotal += pricing.FinalUnitPrice * float64(pricing.Quantity)
	}

	if rule.OrderConditions != nil {
		conds := rule.OrderConditions.clone()
		if _, hasOwn := conds[OrderFieldTotalAmount]; !hasOwn {
			gate := runningTotal
			conds[OrderFieldTotalAmount] = OperatorCondition{GreaterThanOrEqual: &gate}
		}
		if !matchConditionSet(aggregateOrder(c.items), conds) {
			log.Reason = reasonGlobalConditionsMiss
			return
		}
	}

	log.Matched = true
	log.AppliedProducts = itemIDs(c.itemPointers())

	discount := calculateDiscount(rule.DiscountStrategy, runningTotal, 1)
	if discount > 0 {
		c.distributeDiscount(c.itemPointers(), discount, rule)
	}
}

// distributeDiscount allocates totalDiscount across the given items
// proportionally to each item's share of their combined base amount, and
// records one application entry per item carrying its allocated share.
func (c *orderCalculation) distributeDiscount(items []*ProductWithQuantity, totalDiscount float64, rule *PromotionRule) {
	var totalAmount float64
	for _, item := range items {
		totalAmount += item.baseAmount()
	}
	if totalAmount <= 0 {
		return
	}

	for _, item := range items {
		pricing := c.pricing[item.ID]
		amount := item.baseAmount()
		share := totalDiscount * (amount / totalAmount)

		pricing.TotalDiscount += share
		pricing.FinalUnitPrice = math.Max(0, (amount-pricing.TotalDiscount)/float64(item.Quantity))
		pricing.AppliedRules = append(pricing.AppliedRules, rule.ID)

		c.result.DiscountApplications = append(c.result.DiscountApplications, DiscountApplication{
			RuleID:         rule.ID,
			RuleName:       rule.Name,
			ProductID:      item.ID,
			OriginalPrice:  amount,
			DiscountValue:  totalDiscount,
			DiscountAmount: share,
			FinalPrice:     pricing.FinalUnitPrice * float64(item.Quantity),
			Quantity:       item.Quantity,
			DiscountType:   rule.DiscountStrategy.Type,
		})
	}
}

// matchItems filters the candidate set by product conditions.
func (c *orderCalculation) matchItems(conds ConditionSet) []*ProductWithQuantity {
	matched := make([]*ProductWithQuantity, 0, len(c.items))
	for i := range c.items {
		if matchConditionSet(&c.items[i], conds) {
			matched = append(matched, &c.items[i])
		}
	}
	return matched
}

func (c *orderCalculation) itemPointers() []*ProductWithQuantity {
	all := make([]*ProductWithQuantity, len(c.items))
	for i := range c.items {
		all[i] = &c.items[i]
	}
	return all
}

func itemIDs(items []*ProductWithQuantity) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
