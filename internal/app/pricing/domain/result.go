package domain

// ProductPricing is the per-product breakdown inside a PricingResult.
type ProductPricing struct {
	ID                int64   `json:"id"`
	Quantity          int64   `json:"quantity"`
	OriginalUnitPrice float64 `json:"originalUnitPrice"`
	FinalUnitPrice    float64 `json:"finalUnitPrice"`
	TotalDiscount     float64 `json:"totalDiscount"`
	AppliedRules      []int64 `json:"appliedRules"`
	IsExclusive       bool    `json:"isExclusive"`
}

// DiscountApplication is one audit entry: a rule granting a discount to a
// product during a pricing pass.
type DiscountApplication struct {
	RuleID    int64  `json:"ruleId"`
	RuleName  string `json:"ruleName"`
	ProductID int64  `json:"productId"`
	// OriginalPrice is the undiscounted line total at application time.
	OriginalPrice float64 `json:"originalPrice"`
	// DiscountValue is the rule-level value (for distributed discounts, the
	// total before proportional allocation).
	DiscountValue  float64      `json:"discountValue"`
	DiscountAmount float64      `json:"discountAmount"`
	FinalPrice     float64      `json:"finalPrice"`
	Quantity       int64        `json:"quantity"`
	DiscountType   DiscountType `json:"discountType"`
}

// MatchLog records, for every evaluated rule, whether it matched and why not.
type MatchLog struct {
	RuleID          int64   `json:"ruleId"`
	RuleName        string  `json:"ruleName"`
	Matched         bool    `json:"matched"`
	Reason          string  `json:"reason,omitempty"`
	AppliedProducts []int64 `json:"appliedProducts"`
}

// FreeProduct is a gift line granted by a rule. Reserved: no strategy
// currently populates it.
type FreeProduct struct {
	ProductID  int64 `json:"productId"`
	Quantity   int64 `json:"quantity"`
	FromRuleID int64 `json:"fromRuleId"`
}

// PricingResult is the complete outcome of one CalculateOrderPrice call.
type PricingResult struct {
	CalculationID string `json:"calculationId"`

	OriginalTotalPrice  float64 `json:"originalTotalPrice"`
	TotalDiscountAmount float64 `json:"totalDiscountAmount"`
	FinalTotalPrice     float64 `json:"finalTotalPrice"`

	Products             []ProductPricing      `json:"products"`
	DiscountApplications []DiscountApplication `json:"discountApplications"`
	MatchLogs            []MatchLog            `json:"matchLogs"`
	FreeProducts         []FreeProduct         `json:"freeProducts"`

	// UsedBonusPoints tallies reward-point consumption for bonus-series
	// items, which are excluded from every price figure above.
	UsedBonusPoints float64 `json:"usedBonusPoints"`
}
