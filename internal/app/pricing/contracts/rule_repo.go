package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
)

// RuleRepository defines the interface for promotion rule persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type RuleRepository interface {
	// InsertMut creates a mutation for inserting or replacing a rule
	// Returns error if the rule's JSON documents cannot be encoded
	InsertMut(rule *domain.PromotionRule, status string) (*spanner.Mutation, error)

	// SetStatusMut creates a mutation flipping a rule's status
	SetStatusMut(ruleID int64, status string) *spanner.Mutation

	// DeleteMut creates a mutation for deleting a rule
	DeleteMut(ruleID int64) *spanner.Mutation

	// GetByID retrieves a rule by ID, reconstructing the domain object
	GetByID(ctx context.Context, ruleID int64) (*domain.PromotionRule, error)

	// ListActive retrieves every active rule, ready to load into an engine
	ListActive(ctx context.Context) ([]domain.PromotionRule, error)

	// Exists checks if a rule exists
	Exists(ctx context.Context, ruleID int64) (bool, error)
}
