package domain

// DiscountType discriminates DiscountStrategy.
type DiscountType string

const (
	DiscountPercentage      DiscountType = "percentage"
	DiscountFixed           DiscountType = "fixed"
	DiscountSpecialPrice    DiscountType = "specialPrice"
	DiscountTieredReduction DiscountType = "tieredReduction"
	DiscountBuyXGetY        DiscountType = "buyXGetY"
	DiscountBundle          DiscountType = "bundle"
)

// TierSubject selects what a reduction tier's threshold is compared against.
type TierSubject string

const (
	TierSubjectAmount   TierSubject = "amount"
	TierSubjectQuantity TierSubject = "quantity"
)

// TierDiscountType selects how a qualifying tier's discount is computed.
type TierDiscountType string

const (
	TierDiscountFixed      TierDiscountType = "fixed"
	TierDiscountPercentage TierDiscountType = "percentage"
	TierDiscountEvery      TierDiscountType = "every"
)

// ReductionTier is one step of a tiered full-reduction ladder.
type ReductionTier struct {
	// Threshold the subject value must reach for the tier to qualify.
	Threshold float64 `json:"threshold"`
	// Discount amount (or percentage for TierDiscountPercentage).
	Discount float64 `json:"discount"`
	// Every is the repeat step for TierDiscountEvery ("X off for every Y").
	Every float64 `json:"every,omitempty"`
	// SubjectType defaults to amount when empty.
	SubjectType TierSubject `json:"subjectType,omitempty"`
	// DiscountType defaults to fixed when empty.
	DiscountType TierDiscountType `json:"discountType,omitempty"`
}

// TieredReductionConfig configures a tieredReduction strategy.
type TieredReductionConfig struct {
	Tiers       []ReductionTier `json:"tiers"`
	MaxDiscount float64         `json:"maxDiscount,omitempty"`
}

// BuyXGetYConfig configures a buyXGetY strategy. The engine defines but does
// not yet compute this strategy; see CalculateTieredDiscount for the ones it
// does.
type BuyXGetYConfig struct {
	BuyQuantity int64 `json:"buyQuantity"`
	GetQuantity int64 `json:"getQuantity"`
	// GetProductIDs pins the free items; empty means "same product".
	GetProductIDs   []int64 `json:"getProductIds,omitempty"`
	MaxApplications int64   `json:"maxApplications,omitempty"`
}

// BundleItem is one required component of a bundle.
type BundleItem struct {
	ProductID   int64        `json:"productId,omitempty"`
	ProductName string       `json:"productName,omitempty"`
	Quantity    int64        `json:"quantity"`
	Conditions  ConditionSet `json:"conditions,omitempty"`
}

// BundleConfig configures a bundle strategy.
type BundleConfig struct {
	RequiredProducts []BundleItem `json:"requiredProducts"`
	DiscountType     string       `json:"discountType"`
	DiscountValue    float64      `json:"discountValue"`
}

// DiscountStrategy describes how a matched rule turns into money off.
// Type selects the calculation; the matching config pointer carries the
// type-specific parameters. MaxDiscount of zero means "no cap".
type DiscountStrategy struct {
	Type  DiscountType `json:"type"`
	Value float64      `json:"value"`

	TieredConfig   *TieredReductionConfig `json:"tieredConfig,omitempty"`
	BuyXGetYConfig *BuyXGetYConfig        `json:"buyXGetYConfig,omitempty"`
	BundleConfig   *BundleConfig          `json:"bundleConfig,omitempty"`

	MaxDiscount     float64 `json:"maxDiscount,omitempty"`
	MaxApplications int64   `json:"maxApplications,omitempty"`
	ApplyToQuantity int64   `json:"applyToQuantity,omitempty"`
}

// displayValue is the value recorded into a discount application entry.
// Bundle rules advertise the bundle config's value instead of Value.
func (s DiscountStrategy) displayValue() float64 {
	if s.Type == DiscountBundle && s.BundleConfig != nil {
		return s.BundleConfig.DiscountValue
	}
	return s.Value
}
