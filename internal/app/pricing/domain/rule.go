package domain

import "time"

// RuleScope determines at which level a rule's discount is computed and
// distributed across the order.
type RuleScope string

const (
	// ScopeProduct applies the rule per matched line item.
	ScopeProduct RuleScope = "product"
	// ScopeOrder applies the rule over the aggregate of matched line items.
	ScopeOrder RuleScope = "order"
	// ScopeGlobal applies the rule over the entire order.
	ScopeGlobal RuleScope = "global"
)

// Well-known order aggregate fields usable in order-level conditions.
const (
	OrderFieldTotalAmount   = "totalAmount"
	OrderFieldTotalQuantity = "totalQuantity"
	OrderFieldProductCount  = "productCount"
)

// OperatorCondition holds the operator set applied to a single field.
// Every operator that is present must pass for the field to match (AND).
//
// Equal, NotEqual, In and NotIn are intentionally loose (any): operands
// arrive from stored rule JSON and may be a scalar or a list. The legacy
// edge cases are part of the contract: a non-array operand fails `in` but
// PASSES `notIn`.
type OperatorCondition struct {
	Equal              any      `json:"equal,omitempty"`
	NotEqual           any      `json:"notEqual,omitempty"`
	In                 any      `json:"in,omitempty"`
	NotIn              any      `json:"notIn,omitempty"`
	Contains           []string `json:"contains,omitempty"`
	Like               []string `json:"like,omitempty"`
	GreaterThan        *float64 `json:"greaterThan,omitempty"`
	GreaterThanOrEqual *float64 `json:"greaterThanOrEqual,omitempty"`
	LessThan           *float64 `json:"lessThan,omitempty"`
	LessThanOrEqual    *float64 `json:"lessThanOrEqual,omitempty"`
}

// isZero reports whether no operator is set at all.
func (c OperatorCondition) isZero() bool {
	return c.Equal == nil && c.NotEqual == nil && c.In == nil && c.NotIn == nil &&
		c.Contains == nil && c.Like == nil &&
		c.GreaterThan == nil && c.GreaterThanOrEqual == nil &&
		c.LessThan == nil && c.LessThanOrEqual == nil
}

// merge overlays the operators set on other onto c and returns the result.
func (c OperatorCondition) merge(other OperatorCondition) OperatorCondition {
	if other.Equal != nil {
		c.Equal = other.Equal
	}
	if other.NotEqual != nil {
		c.NotEqual = other.NotEqual
	}
	if other.In != nil {
		c.In = other.In
	}
	if other.NotIn != nil {
		c.NotIn = other.NotIn
	}
	if other.Contains != nil {
		c.Contains = other.Contains
	}
	if other.Like != nil {
		c.Like = other.Like
	}
	if other.GreaterThan != nil {
		c.GreaterThan = other.GreaterThan
	}
	if other.GreaterThanOrEqual != nil {
		c.GreaterThanOrEqual = other.GreaterThanOrEqual
	}
	if other.LessThan != nil {
		c.LessThan = other.LessThan
	}
	if other.LessThanOrEqual != nil {
		c.LessThanOrEqual = other.LessThanOrEqual
	}
	return c
}

// ConditionSet maps a field name to the operator condition it must satisfy.
// All fields must pass for the set to match (AND).
type ConditionSet map[string]OperatorCondition

// clone returns a shallow per-entry copy of the set.
func (s ConditionSet) clone() ConditionSet {
	if s == nil {
		return nil
	}
	out := make(ConditionSet, len(s))
	for field, cond := range s {
		out[field] = cond
	}
	return out
}

// PromotionRule is a declarative promotion record. Rules are owned by the
// caller (rule storage is external) and treated as immutable once loaded
// into an Engine for a calculation pass.
type PromotionRule struct {
	ID            int64  `json:"id"`
	PromotionType int64  `json:"promotionType,omitempty"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`

	// Priority orders execution inside a scope pass; higher runs first.
	Priority int64 `json:"priority"`
	// Scope selects which applicator pass picks the rule up.
	Scope RuleScope `json:"scope"`
	// Exclusive rules discard any discount already accumulated on a product.
	Exclusive bool `json:"exclusive"`

	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	ProductConditions ConditionSet `json:"productConditions"`
	OrderConditions   ConditionSet `json:"orderConditions,omitempty"`

	DiscountStrategy DiscountStrategy `json:"discountStrategy"`

	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
