package domain

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// fieldSource resolves a condition field name to a concrete value.
// Missing fields resolve to "" rather than nil so that comparison semantics
// stay uniform across absent and present-but-empty attributes.
type fieldSource interface {
	fieldValue(field string) any
}

// fieldValue resolves derived fields before generic attribute lookup.
func (p *ProductWithQuantity) fieldValue(field string) any {
	switch field {
	case "totalBasePrice":
		return p.BasePrice * float64(p.Quantity)
	case "totalProjectPrice":
		price := p.BasePrice
		if p.ProjectPrice != nil {
			price = *p.ProjectPrice
		}
		return price * float64(p.Quantity)
	case "series":
		if p.Serie != nil {
			return p.Serie.Name
		}
		return ""
	case "color":
		if p.Color != nil {
			if p.Color.Value != "" {
				return p.Color.Value
			}
			return p.Color.Name
		}
		return ""
	case "modelType":
		if p.ModelType != nil {
			return p.ModelType.Name
		}
		return ""
	case "category":
		if p.Category != nil {
			return p.Category.Name
		}
		return ""
	case "id":
		return float64(p.ID)
	case "name":
		return p.Name
	case "basePrice":
		return p.BasePrice
	case "projectPrice":
		if p.ProjectPrice != nil {
			return *p.ProjectPrice
		}
		return ""
	case "quantity":
		return float64(p.Quantity)
	}

	value, ok := p.Attributes[field]
	if !ok {
		return ""
	}
	// Reference-style attributes resolve to their name.
	if m, isMap := value.(map[string]any); isMap {
		if name, hasName := m["name"]; hasName {
			return falsyToEmpty(name)
		}
	}
	if ref, isRef := value.(AttributeRef); isRef {
		return falsyToEmpty(ref.Name)
	}
	return falsyToEmpty(value)
}

// falsyToEmpty normalizes loosely-typed attribute values: nil, false, zero
// and NaN all resolve to "" like an absent attribute does.
func falsyToEmpty(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if !t {
			return ""
		}
	default:
		if n, isNum := asNumber(v); isNum && (n == 0 || math.IsNaN(n)) {
			return ""
		}
	}
	return v
}

// orderView is the synthetic aggregate record order-level conditions are
// evaluated against.
type orderView struct {
	TotalAmount   float64
	TotalQuantity float64
	ProductCount  float64
}

func aggregateOrder(items []ProductWithQuantity) orderView {
	var v orderView
	for i := range items {
		v.TotalAmount += items[i].baseAmount()
		v.TotalQuantity += float64(items[i].Quantity)
	}
	v.ProductCount = float64(len(items))
	return v
}

func (o orderView) fieldValue(field string) any {
	switch field {
	case OrderFieldTotalAmount:
		return o.TotalAmount
	case OrderFieldTotalQuantity:
		return o.TotalQuantity
	case OrderFieldProductCount:
		return o.ProductCount
	}
	return ""
}

// matchConditionSet reports whether every field condition in the set passes.
func matchConditionSet(target fieldSource, conds ConditionSet) bool {
	for field, cond := range conds {
		if !matchField(target, field, cond) {
			return false
		}
	}
	return true
}

// matchField evaluates every operator present on the condition; any failing
// operator fails the field.
func matchField(target fieldSource, field string, cond OperatorCondition) bool {
	value := target.fieldValue(field)

	if cond.Equal != nil && !evalEqual(value, cond.Equal) {
		return false
	}
	if cond.NotEqual != nil && evalEqual(value, cond.NotEqual) {
		return false
	}
	if cond.In != nil {
		list, isList := asList(cond.In)
		if !isList || !listContains(list, value) {
			return false
		}
	}
	if cond.NotIn != nil {
		// A non-list operand deliberately passes; legacy rules rely on it.
		if list, isList := asList(cond.NotIn); isList && listContains(list, value) {
			return false
		}
	}
	if cond.Contains != nil && !evalContains(value, cond.Contains) {
		return false
	}
	if cond.Like != nil && !evalLike(value, cond.Like) {
		return false
	}
	if cond.GreaterThan != nil && !(toNumber(value) > *cond.GreaterThan) {
		return false
	}
	if cond.GreaterThanOrEqual != nil && !(toNumber(value) >= *cond.GreaterThanOrEqual) {
		return false
	}
	if cond.LessThan != nil && !(toNumber(value) < *cond.LessThan) {
		return false
	}
	if cond.LessThanOrEqual != nil && !(toNumber(value) <= *cond.LessThanOrEqual) {
		return false
	}
	return true
}

// evalEqual handles equal/notEqual: a list operand is a membership test,
// anything else a strict comparison.
func evalEqual(value, operand any) bool {
	if list, isList := asList(operand); isList {
		return listContains(list, value)
	}
	return looseEqual(value, operand)
}

// evalContains matches a string value against glob patterns where only `*`
// is a wildcard; patterns are anchored at both ends.
func evalContains(value any, patterns []string) bool {
	s, isString := value.(string)
	if !isString {
		return false
	}
	for _, pattern := range patterns {
		re, err := regexp.Compile("^" + strings.ReplaceAll(pattern, "*", ".*") + "$")
		if err != nil {
			continue
		}
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// evalLike is a case-insensitive substring test against any of the operands.
func evalLike(value any, substrings []string) bool {
	s, isString := value.(string)
	if !isString {
		return false
	}
	lower := strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

func listContains(list []any, value any) bool {
	for _, item := range list {
		if looseEqual(value, item) {
			return true
		}
	}
	return false
}

// looseEqual compares a resolved field value with a rule operand. Numbers
// compare numerically regardless of their Go type; a number never equals a
// numeric string.
func looseEqual(a, b any) bool {
	na, aNum := asNumber(a)
	nb, bNum := asNumber(b)
	if aNum || bNum {
		return aNum && bNum && na == nb
	}
	if sa, ok := a.(string); ok {
		sb, ok2 := b.(string)
		return ok2 && sa == sb
	}
	if ba, ok := a.(bool); ok {
		bb, ok2 := b.(bool)
		return ok2 && ba == bb
	}
	return reflect.DeepEqual(a, b)
}

// asNumber reports whether v is a numeric type and its float64 value.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// toNumber coerces a field value for ordered comparisons. Empty strings
// coerce to 0, unparseable ones to NaN so every comparison against them
// fails.
func toNumber(v any) float64 {
	if n, ok := asNumber(v); ok {
		return n
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return 0
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return math.NaN()
		}
		return n
	case bool:
		if t {
			return 1
		}
		return 0
	case nil:
		return 0
	}
	return math.NaN()
}

// asList normalizes slice operands of any element type to []any.
func asList(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
