package m_rule

// Field name constants for the promotion_rules table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "promotion_rules"

	RuleID            = "rule_id"
	Name              = "name"
	Description       = "description"
	PromotionType     = "promotion_type"
	Priority          = "priority"
	Scope             = "scope"
	Exclusive         = "exclusive"
	StartTime         = "start_time"
	EndTime           = "end_time"
	ProductConditions = "product_conditions"
	OrderConditions   = "order_conditions"
	DiscountStrategy  = "discount_strategy"
	Tags              = "tags"
	Metadata          = "metadata"
	Status            = "status"
	CreatedAt         = "created_at"
	UpdatedAt         = "updated_at"
)

// Rule status values.
const (
	StatusActive   = "ACTIVE"
	StatusDisabled = "DISABLED"
)
