package m_rule

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the promotion_rules table.
// Condition sets and the discount strategy are stored as JSON documents.
type Data struct {
	RuleID            int64              `spanner:"rule_id"`
	Name              string             `spanner:"name"`
	Description       string             `spanner:"description"`
	PromotionType     int64              `spanner:"promotion_type"`
	Priority          int64              `spanner:"priority"`
	Scope             string             `spanner:"scope"`
	Exclusive         bool               `spanner:"exclusive"`
	StartTime         spanner.NullTime   `spanner:"start_time"`
	EndTime           spanner.NullTime   `spanner:"end_time"`
	ProductConditions string             `spanner:"product_conditions"`
	OrderConditions   spanner.NullString `spanner:"order_conditions"`
	DiscountStrategy  string             `spanner:"discount_strategy"`
	Tags              []string           `spanner:"tags"`
	Metadata          spanner.NullString `spanner:"metadata"`
	Status            string             `spanner:"status"`
	CreatedAt         time.Time          `spanner:"created_at"`
	UpdatedAt         time.Time          `spanner:"updated_at"`
}
