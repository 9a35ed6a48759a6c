package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/goccy/go-json"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/models/m_rule"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/query"
)

// RuleRepo implements RuleRepository for Spanner.
type RuleRepo struct {
	client *spanner.Client
	model  *m_rule.Model
}

// NewRuleRepo creates a new RuleRepo.
func NewRuleRepo(client *spanner.Client) contracts.RuleRepository {
	return &RuleRepo{
		client: client,
		model:  m_rule.NewModel(),
	}
}

// InsertMut creates a mutation for inserting or replacing a rule.
func (r *RuleRepo) InsertMut(rule *domain.PromotionRule, status string) (*spanner.Mutation, error) {
	data, err := domainToData(rule, status)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// SetStatusMut creates a mutation flipping a rule's status.
func (r *RuleRepo) SetStatusMut(ruleID int64, status string) *spanner.Mutation {
	return r.model.UpdateMut(ruleID, map[string]interface{}{
		m_rule.Status: status,
	})
}

// DeleteMut creates a mutation for deleting a rule.
func (r *RuleRepo) DeleteMut(ruleID int64) *spanner.Mutation {
	return r.model.DeleteMut(ruleID)
}

// GetByID retrieves a rule by ID, reconstructing the domain object.
func (r *RuleRepo) GetByID(ctx context.Context, ruleID int64) (*domain.PromotionRule, error) {
	row, err := r.client.Single().ReadRow(ctx, m_rule.TableName, spanner.Key{ruleID}, ruleColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to read rule: %w", err)
	}

	var data m_rule.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse rule: %w", err)
	}

	rule, err := dataToDomain(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct rule %d: %w", ruleID, err)
	}
	return rule, nil
}

// ListActive retrieves every active rule, ready to load into an engine.
func (r *RuleRepo) ListActive(ctx context.Context) ([]domain.PromotionRule, error) {
	stmt := query.From(m_rule.TableName).
		Select(ruleColumns()...).
		Where(query.Eq(m_rule.Status, m_rule.StatusActive)).
		OrderBy(m_rule.Priority, query.Desc).
		ThenBy(m_rule.RuleID).
		Build()

	var rules []domain.PromotionRule
	err := forEachRuleRow(ctx, r.client, stmt, func(data *m_rule.Data) error {
		rule, err := dataToDomain(data)
		if err != nil {
			return fmt.Errorf("failed to reconstruct rule %d: %w", data.RuleID, err)
		}
		rules = append(rules, *rule)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// Exists checks if a rule exists.
func (r *RuleRepo) Exists(ctx context.Context, ruleID int64) (bool, error) {
	_, err := r.client.Single().ReadRow(ctx, m_rule.TableName, spanner.Key{ruleID}, []string{m_rule.RuleID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check rule existence: %w", err)
	}
	return true, nil
}

// domainToData converts a domain rule to its database representation.
func domainToData(rule *domain.PromotionRule, status string) (*m_rule.Data, error) {
	productConds := rule.ProductConditions
	if productConds == nil {
		productConds = domain.ConditionSet{}
	}
	productJSON, err := json.Marshal(productConds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product conditions: %w", err)
	}

	strategyJSON, err := json.Marshal(rule.DiscountStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to encode discount strategy: %w", err)
	}

	data := &m_rule.Data{
		RuleID:            rule.ID,
		Name:              rule.Name,
		Description:       rule.Description,
		PromotionType:     rule.PromotionType,
		Priority:          rule.Priority,
		Scope:             string(rule.Scope),
		Exclusive:         rule.Exclusive,
		ProductConditions: string(productJSON),
		DiscountStrategy:  string(strategyJSON),
		Tags:              rule.Tags,
		Status:            status,
	}

	if rule.StartTime != nil {
		data.StartTime = spanner.NullTime{Time: *rule.StartTime, Valid: true}
	}
	if rule.EndTime != nil {
		data.EndTime = spanner.NullTime{Time: *rule.EndTime, Valid: true}
	}

	if rule.OrderConditions != nil {
		orderJSON, err := json.Marshal(rule.OrderConditions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode order conditions: %w", err)
		}
		data.OrderConditions = spanner.NullString{StringVal: string(orderJSON), Valid: true}
	}

	if rule.Metadata != nil {
		metaJSON, err := json.Marshal(rule.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		data.Metadata = spanner.NullString{StringVal: string(metaJSON), Valid: true}
	}

	return data, nil
}

// dataToDomain converts a database row back into a domain rule.
func dataToDomain(data *m_rule.Data) (*domain.PromotionRule, error) {
	rule := &domain.PromotionRule{
		ID:            data.RuleID,
		Name:          data.Name,
		Description:   data.Description,
		PromotionType: data.PromotionType,
		Priority:      data.Priority,
		Scope:         domain.RuleScope(data.Scope),
		Exclusive:     data.Exclusive,
		Tags:          data.Tags,
	}

	if data.StartTime.Valid {
		t := data.StartTime.Time
		rule.StartTime = &t
	}
	if data.EndTime.Valid {
		t := data.EndTime.Time
		rule.EndTime = &t
	}

	if data.ProductConditions != "" {
		if err := json.Unmarshal([]byte(data.ProductConditions), &rule.ProductConditions); err != nil {
			return nil, fmt.Errorf("failed to decode product conditions: %w", err)
		}
	}
	if rule.ProductConditions == nil {
		rule.ProductConditions = domain.ConditionSet{}
	}

	if data.OrderConditions.Valid && data.OrderConditions.StringVal != "" {
		if err := json.Unmarshal([]byte(data.OrderConditions.StringVal), &rule.OrderConditions); err != nil {
			return nil, fmt.Errorf("failed to decode order conditions: %w", err)
		}
	}

	if err := json.Unmarshal([]byte(data.DiscountStrategy), &rule.DiscountStrategy); err != nil {
		return nil, fmt.Errorf("failed to decode discount strategy: %w", err)
	}

	if data.Metadata.Valid && data.Metadata.StringVal != "" {
		if err := json.Unmarshal([]byte(data.Metadata.StringVal), &rule.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}

	return rule, nil
}

func ruleColumns() []string {
	return []string{
		m_rule.RuleID,
		m_rule.Name,
		m_rule.Description,
		m_rule.PromotionType,
		m_rule.Priority,
		m_rule.Scope,
		m_rule.Exclusive,
		m_rule.StartTime,
		m_rule.EndTime,
		m_rule.ProductConditions,
		m_rule.OrderConditions,
		m_rule.DiscountStrategy,
		m_rule.Tags,
		m_rule.Metadata,
		m_rule.Status,
		m_rule.CreatedAt,
		m_rule.UpdatedAt,
	}
}
