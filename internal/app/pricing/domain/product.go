package domain

// AttributeRef is a named reference attribute (serie, category, ...).
type AttributeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ColorAttribute carries both a display name and a raw value; condition
// matching prefers the value.
type ColorAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ModelTypeAttribute names a product's model type. Value doubles as the
// bonus-point factor for bonus-series items.
type ModelTypeAttribute struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// ProductWithQuantity is a line item: a product plus the ordered quantity.
// Only items with Quantity > 0 and a non-zero ID participate in pricing.
type ProductWithQuantity struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
	// ProjectPrice overrides BasePrice for totalProjectPrice conditions.
	ProjectPrice *float64 `json:"projectPrice,omitempty"`
	Quantity     int64    `json:"quantity"`

	Serie     *AttributeRef       `json:"serie,omitempty"`
	Color     *ColorAttribute     `json:"color,omitempty"`
	ModelType *ModelTypeAttribute `json:"modelType,omitempty"`
	Category  *AttributeRef       `json:"category,omitempty"`

	// Attributes is the escape hatch for custom fields referenced by rule
	// conditions beyond the typed ones above.
	Attributes map[string]any `json:"attributes,omitempty"`
}

// baseAmount is the undiscounted line total.
func (p *ProductWithQuantity) baseAmount() float64 {
	return p.BasePrice * float64(p.Quantity)
}
