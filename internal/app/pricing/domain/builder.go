package domain

import "time"

// RuleBuilder assembles a PromotionRule through chained setters. Build
// enforces the fields a rule cannot function without; everything else is
// optional. The zero builder is not usable, call NewRuleBuilder.
type RuleBuilder struct {
	rule PromotionRule

	prioritySet  bool
	scopeSet     bool
	exclusiveSet bool
}

func NewRuleBuilder() *RuleBuilder {
	b := &RuleBuilder{}
	b.Reset()
	return b
}

// Reset returns the builder to its initial state so it can be reused.
func (b *RuleBuilder) Reset() *RuleBuilder {
	b.rule = PromotionRule{
		ProductConditions: ConditionSet{},
		DiscountStrategy:  DiscountStrategy{Type: DiscountFixed},
	}
	b.prioritySet = false
	b.scopeSet = false
	b.exclusiveSet = false
	return b
}

func (b *RuleBuilder) SetBasicInfo(id int64, name, description string) *RuleBuilder {
	b.rule.ID = id
	b.rule.Name = name
	b.rule.Description = description
	return b
}

func (b *RuleBuilder) SetPromotionType(promotionType int64) *RuleBuilder {
	b.rule.PromotionType = promotionType
	return b
}

func (b *RuleBuilder) SetPriority(priority int64) *RuleBuilder {
	b.rule.Priority = priority
	b.prioritySet = true
	return b
}

func (b *RuleBuilder) SetScope(scope RuleScope) *RuleBuilder {
	b.rule.Scope = scope
	b.scopeSet = true
	return b
}

func (b *RuleBuilder) SetExclusive(exclusive bool) *RuleBuilder {
	b.rule.Exclusive = exclusive
	b.exclusiveSet = true
	return b
}

func (b *RuleBuilder) SetTimeRange(start, end time.Time) *RuleBuilder {
	b.rule.StartTime = &start
	b.rule.EndTime = &end
	return b
}

// MatchProductIDs restricts the rule to the given product IDs.
func (b *RuleBuilder) MatchProductIDs(ids ...int64) *RuleBuilder {
	return b.MatchCustomField("id", OperatorCondition{In: int64List(ids)})
}

// ExcludeProductIDs excludes the given product IDs from the rule.
func (b *RuleBuilder) ExcludeProductIDs(ids ...int64) *RuleBuilder {
	return b.MatchCustomField("id", OperatorCondition{NotIn: int64List(ids)})
}

func (b *RuleBuilder) MatchSeries(series ...string) *RuleBuilder {
	return b.MatchCustomField("series", OperatorCondition{In: stringList(series)})
}

func (b *RuleBuilder) MatchColors(colors ...string) *RuleBuilder {
	return b.MatchCustomField("color", OperatorCondition{In: stringList(colors)})
}

func (b *RuleBuilder) MatchCategories(categories ...string) *RuleBuilder {
	return b.MatchCustomField("category", OperatorCondition{In: stringList(categories)})
}

// MatchPriceRange bounds the unit base price. Nil bounds are open.
func (b *RuleBuilder) MatchPriceRange(min, max *float64) *RuleBuilder {
	return b.MatchCustomField("basePrice", rangeCondition(min, max))
}

// MatchQuantity bounds the line item quantity. Nil bounds are open.
func (b *RuleBuilder) MatchQuantity(min, max *float64) *RuleBuilder {
	return b.MatchCustomField("quantity", rangeCondition(min, max))
}

// MatchCustomField merges the given operators into the product condition on
// field, keeping any operators set by earlier calls.
func (b *RuleBuilder) MatchCustomField(field string, cond OperatorCondition) *RuleBuilder {
	b.rule.ProductConditions[field] = b.rule.ProductConditions[field].merge(cond)
	return b
}

// SetOrderTotalAmount bounds the order's total amount. Nil bounds are open.
func (b *RuleBuilder) SetOrderTotalAmount(min, max *float64) *RuleBuilder {
	return b.setOrderCondition(OrderFieldTotalAmount, rangeCondition(min, max))
}

// SetOrderTotalQuantity bounds the order's total item quantity.
func (b *RuleBuilder) SetOrderTotalQuantity(min, max *float64) *RuleBuilder {
	return b.setOrderCondition(OrderFieldTotalQuantity, rangeCondition(min, max))
}

// SetOrderProductCount bounds the number of distinct line items.
func (b *RuleBuilder) SetOrderProductCount(min, max *float64) *RuleBuilder {
	return b.setOrderCondition(OrderFieldProductCount, rangeCondition(min, max))
}

func (b *RuleBuilder) setOrderCondition(field string, cond OperatorCondition) *RuleBuilder {
	if b.rule.OrderConditions == nil {
		b.rule.OrderConditions = ConditionSet{}
	}
	b.rule.OrderConditions[field] = b.rule.OrderConditions[field].merge(cond)
	return b
}

// SetPercentageDiscount sets a percentage strategy. maxDiscount of zero
// means no cap.
func (b *RuleBuilder) SetPercentageDiscount(percentage, maxDiscount float64) *RuleBuilder {
	b.rule.DiscountStrategy = DiscountStrategy{
		Type:        DiscountPercentage,
		Value:       percentage,
		MaxDiscount: maxDiscount,
	}
	return b
}

func (b *RuleBuilder) SetFixedDiscount(amount float64) *RuleBuilder {
	b.rule.DiscountStrategy = DiscountStrategy{Type: DiscountFixed, Value: amount}
	return b
}

func (b *RuleBuilder) SetSpecialPrice(price float64) *RuleBuilder {
	b.rule.DiscountStrategy = DiscountStrategy{Type: DiscountSpecialPrice, Value: price}
	return b
}

func (b *RuleBuilder) SetTieredReduction(config TieredReductionConfig) *RuleBuilder {
	b.rule.DiscountStrategy = DiscountStrategy{
		Type:         DiscountTieredReduction,
		TieredConfig: &config,
	}
	return b
}

func (b *RuleBuilder) SetBuyXGetY(config BuyXGetYConfig) *RuleBuilder {
	b.rule.DiscountStrategy = DiscountStrategy{
		Type:           DiscountBuyXGetY,
		BuyXGetYConfig: &config,
	}
	return b
}

func (b *RuleBuilder) SetBundleDiscount(config BundleConfig) *RuleBuilder {
	b.rule.DiscountStrategy = DiscountStrategy{
		Type:         DiscountBundle,
		BundleConfig: &config,
	}
	return b
}

func (b *RuleBuilder) AddTags(tags ...string) *RuleBuilder {
	b.rule.Tags = append(b.rule.Tags, tags...)
	return b
}

// SetMetadata merges the given entries into the rule metadata.
func (b *RuleBuilder) SetMetadata(metadata map[string]any) *RuleBuilder {
	if b.rule.Metadata == nil {
		b.rule.Metadata = make(map[string]any, len(metadata))
	}
	for k, v := range metadata {
		b.rule.Metadata[k] = v
	}
	return b
}

// Build validates the required fields and returns a detached copy of the
// rule. The builder stays usable afterwards.
func (b *RuleBuilder) Build() (PromotionRule, error) {
	if b.rule.Name == "" {
		return PromotionRule{}, ErrRuleNameRequired
	}
	if !b.scopeSet {
		return PromotionRule{}, ErrRuleScopeRequired
	}
	if !b.prioritySet {
		return PromotionRule{}, ErrRulePriorityRequired
	}
	if !b.exclusiveSet {
		return PromotionRule{}, ErrRuleExclusiveRequired
	}
	return b.snapshot(), nil
}

// Clone returns an independent builder holding a copy of the current state.
func (b *RuleBuilder) Clone() *RuleBuilder {
	return &RuleBuilder{
		rule:         b.snapshot(),
		prioritySet:  b.prioritySet,
		scopeSet:     b.scopeSet,
		exclusiveSet: b.exclusiveSet,
	}
}

func (b *RuleBuilder) snapshot() PromotionRule {
	rule := b.rule
	rule.ProductConditions = b.rule.ProductConditions.clone()
	rule.OrderConditions = b.rule.OrderConditions.clone()
	rule.Tags = append([]string(nil), b.rule.Tags...)
	if b.rule.Metadata != nil {
		meta := make(map[string]any, len(b.rule.Metadata))
		for k, v := range b.rule.Metadata {
			meta[k] = v
		}
		rule.Metadata = meta
	}
	return rule
}

func rangeCondition(min, max *float64) OperatorCondition {
	return OperatorCondition{GreaterThanOrEqual: min, LessThanOrEqual: max}
}

func int64List(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func stringList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
