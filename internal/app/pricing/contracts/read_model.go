package contracts

import (
	"context"
	"time"
)

// RuleDTO is a data transfer object for rule listings. Conditions and the
// strategy stay as raw JSON documents; listings don't need them decoded.
type RuleDTO struct {
	RuleID            int64
	Name              string
	Description       string
	PromotionType     int64
	Priority          int64
	Scope             string
	Exclusive         bool
	StartTime         *time.Time
	EndTime           *time.Time
	ProductConditions string
	OrderConditions   string
	DiscountStrategy  string
	Tags              []string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RuleListFilter defines filtering options for listing rules.
type RuleListFilter struct {
	Scope         string
	Status        string
	PromotionType *int64
	Tag           string
	PageSize      int
}

// RuleListResult contains rule list results.
type RuleListResult struct {
	Rules      []*RuleDTO
	TotalCount int64
}

// RuleReadModel defines the interface for rule queries.
// Read models can bypass the domain layer for performance.
type RuleReadModel interface {
	// GetRuleByID retrieves a rule DTO by ID
	GetRuleByID(ctx context.Context, ruleID int64) (*RuleDTO, error)

	// ListRules retrieves a filtered list of rules
	ListRules(ctx context.Context, filter *RuleListFilter) (*RuleListResult, error)
}
