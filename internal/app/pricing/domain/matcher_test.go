package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func testProduct() ProductWithQuantity {
	return ProductWithQuantity{
		ID:        42,
		Name:      "Desk Lamp",
		BasePrice: 100,
		Quantity:  2,
		Serie:     &AttributeRef{ID: 7, Name: "SERIES-A"},
		Color:     &ColorAttribute{Name: "Matte Black", Value: "black"},
		ModelType: &ModelTypeAttribute{ID: 3, Name: "standard", Value: "5"},
		Category:  &AttributeRef{ID: 9, Name: "lighting"},
		Attributes: map[string]any{
			"material": "steel",
			"supplier": map[string]any{"id": float64(12), "name": "Acme"},
		},
	}
}

func TestProductFieldValue(t *testing.T) {
	p := testProduct()

	t.Run("derived totals multiply by quantity", func(t *testing.T) {
		assert.Equal(t, float64(200), p.fieldValue("totalBasePrice"))
		assert.Equal(t, float64(200), p.fieldValue("totalProjectPrice"))
	})

	t.Run("project price overrides base in project total", func(t *testing.T) {
		withProject := testProduct()
		withProject.ProjectPrice = f64(80)
		assert.Equal(t, float64(160), withProject.fieldValue("totalProjectPrice"))
	})

	t.Run("series resolves to the serie name", func(t *testing.T) {
		assert.Equal(t, "SERIES-A", p.fieldValue("series"))
	})

	t.Run("color prefers value over name", func(t *testing.T) {
		assert.Equal(t, "black", p.fieldValue("color"))

		nameOnly := testProduct()
		nameOnly.Color = &ColorAttribute{Name: "Matte Black"}
		assert.Equal(t, "Matte Black", nameOnly.fieldValue("color"))
	})

	t.Run("missing typed attributes resolve to empty string", func(t *testing.T) {
		bare := ProductWithQuantity{ID: 1, BasePrice: 10, Quantity: 1}
		assert.Equal(t, "", bare.fieldValue("series"))
		assert.Equal(t, "", bare.fieldValue("color"))
		assert.Equal(t, "", bare.fieldValue("projectPrice"))
	})

	t.Run("custom attributes fall through to the attribute map", func(t *testing.T) {
		assert.Equal(t, "steel", p.fieldValue("material"))
		assert.Equal(t, "", p.fieldValue("doesNotExist"))
	})

	t.Run("reference-style attributes resolve to their name", func(t *testing.T) {
		assert.Equal(t, "Acme", p.fieldValue("supplier"))
	})

	t.Run("falsy custom attributes resolve to empty string", func(t *testing.T) {
		falsy := testProduct()
		falsy.Attributes = map[string]any{
			"stock":    float64(0),
			"imported": false,
			"grade":    nil,
		}
		assert.Equal(t, "", falsy.fieldValue("stock"))
		assert.Equal(t, "", falsy.fieldValue("imported"))
		assert.Equal(t, "", falsy.fieldValue("grade"))

		// A zero attribute is indistinguishable from an absent one, so an
		// equal-zero condition does not match it.
		assert.False(t, matchConditionSet(&falsy, ConditionSet{
			"stock": {Equal: float64(0)},
		}))
	})
}

func TestMatchConditionSet(t *testing.T) {
	p := testProduct()

	t.Run("empty set matches everything", func(t *testing.T) {
		assert.True(t, matchConditionSet(&p, ConditionSet{}))
		assert.True(t, matchConditionSet(&p, nil))
	})

	t.Run("equal with a scalar", func(t *testing.T) {
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"series": {Equal: "SERIES-A"},
		}))
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"series": {Equal: "SERIES-B"},
		}))
	})

	t.Run("equal with a list is a membership test", func(t *testing.T) {
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"series": {Equal: []any{"SERIES-A", "SERIES-B"}},
		}))
	})

	t.Run("numbers compare across go types", func(t *testing.T) {
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"id": {In: []int64{41, 42}},
		}))
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"id": {In: []any{float64(42)}},
		}))
	})

	t.Run("a number never equals a numeric string", func(t *testing.T) {
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"id": {Equal: "42"},
		}))
	})

	t.Run("notIn rejects members and passes non-members", func(t *testing.T) {
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"series": {NotIn: []string{"SERIES-A"}},
		}))
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"series": {NotIn: []string{"SERIES-B"}},
		}))
	})

	t.Run("notIn with a non-list operand passes", func(t *testing.T) {
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"series": {NotIn: "SERIES-A"},
		}))
	})

	t.Run("in with a non-list operand fails", func(t *testing.T) {
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"series": {In: "SERIES-A"},
		}))
	})

	t.Run("contains treats asterisk as a wildcard", func(t *testing.T) {
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"series": {Contains: []string{"SER*"}},
		}))
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"series": {Contains: []string{"OTHER*"}},
		}))
		// No wildcard means an exact match.
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"series": {Contains: []string{"SERIES"}},
		}))
	})

	t.Run("like is a case-insensitive substring test", func(t *testing.T) {
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"name": {Like: []string{"desk"}},
		}))
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"name": {Like: []string{"chair"}},
		}))
	})

	t.Run("range operators coerce to numbers", func(t *testing.T) {
		assert.True(t, matchConditionSet(&p, ConditionSet{
			"basePrice": {GreaterThanOrEqual: f64(100), LessThan: f64(101)},
		}))
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"basePrice": {GreaterThan: f64(100)},
		}))
	})

	t.Run("unparseable strings fail every range comparison", func(t *testing.T) {
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"series": {GreaterThan: f64(0)},
		}))
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"series": {LessThan: f64(0)},
		}))
	})

	t.Run("all fields must pass", func(t *testing.T) {
		assert.False(t, matchConditionSet(&p, ConditionSet{
			"series":    {Equal: "SERIES-A"},
			"basePrice": {GreaterThan: f64(500)},
		}))
	})
}

func TestAggregateOrder(t *testing.T) {
	items := []ProductWithQuantity{
		{ID: 1, BasePrice: 100, Quantity: 2},
		{ID: 2, BasePrice: 50, Quantity: 3},
	}
	view := aggregateOrder(items)

	assert.Equal(t, float64(350), view.TotalAmount)
	assert.Equal(t, float64(5), view.TotalQuantity)
	assert.Equal(t, float64(2), view.ProductCount)

	t.Run("order conditions evaluate against the aggregate", func(t *testing.T) {
		assert.True(t, matchConditionSet(view, ConditionSet{
			OrderFieldTotalAmount:   {GreaterThanOrEqual: f64(300)},
			OrderFieldTotalQuantity: {Equal: float64(5)},
			OrderFieldProductCount:  {LessThanOrEqual: f64(2)},
		}))
	})
}
