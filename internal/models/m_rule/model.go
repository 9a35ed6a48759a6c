package m_rule

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the promotion_rules table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting or replacing a rule.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			RuleID,
			Name,
			Description,
			PromotionType,
			Priority,
			Scope,
			Exclusive,
			StartTime,
			EndTime,
			ProductConditions,
			OrderConditions,
			DiscountStrategy,
			Tags,
			Metadata,
			Status,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.RuleID,
			data.Name,
			data.Description,
			data.PromotionType,
			data.Priority,
			data.Scope,
			data.Exclusive,
			data.StartTime,
			data.EndTime,
			data.ProductConditions,
			data.OrderConditions,
			data.DiscountStrategy,
			data.Tags,
			data.Metadata,
			data.Status,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific rule fields.
// The updates map should contain field names as keys and new values.
func (m *Model) UpdateMut(ruleID int64, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	// Always update the UpdatedAt timestamp
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, RuleID)
	values = append(values, ruleID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a rule (hard delete).
func (m *Model) DeleteMut(ruleID int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{ruleID})
}
