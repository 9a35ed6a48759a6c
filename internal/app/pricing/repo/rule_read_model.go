package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/models/m_rule"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/query"
)

// RuleReadModelImpl implements RuleReadModel for Spanner.
type RuleReadModelImpl struct {
	client *spanner.Client
}

// NewRuleReadModel creates a new RuleReadModel implementation.
func NewRuleReadModel(client *spanner.Client) contracts.RuleReadModel {
	return &RuleReadModelImpl{
		client: client,
	}
}

// GetRuleByID retrieves a rule DTO by ID.
func (rm *RuleReadModelImpl) GetRuleByID(ctx context.Context, ruleID int64) (*contracts.RuleDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_rule.TableName, spanner.Key{ruleID}, ruleColumns())
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

	return dataToDTO(&data), nil
}

// ListRules retrieves a filtered list of rules.
func (rm *RuleReadModelImpl) ListRules(ctx context.Context, filter *contracts.RuleListFilter) (*contracts.RuleListResult, error) {
	builder := query.From(m_rule.TableName).
		Select(ruleColumns()...).
		OrderBy(m_rule.Priority, query.Desc).
		ThenBy(m_rule.RuleID)

	if filter.Scope != "" {
		builder = builder.Where(query.Eq(m_rule.Scope, filter.Scope))
	}

	if filter.Status != "" {
		builder = builder.Where(query.Eq(m_rule.Status, filter.Status))
	}

	if filter.PromotionType != nil {
		builder = builder.Where(query.Eq(m_rule.PromotionType, *filter.PromotionType))
	}

	if filter.Tag != "" {
		builder = builder.Where(query.InUnnest(m_rule.Tags, filter.Tag))
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50 // Default page size
	}
	if pageSize > 200 {
		pageSize = 200 // Max page size
	}
	builder = builder.Limit(int64(pageSize))

	rules := make([]*contracts.RuleDTO, 0, pageSize)
	err := forEachRuleRow(ctx, rm.client, builder.Build(), func(data *m_rule.Data) error {
		rules = append(rules, dataToDTO(data))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &contracts.RuleListResult{
		Rules:      rules,
		TotalCount: int64(len(rules)),
	}, nil
}

// dataToDTO converts database Data to a RuleDTO without decoding the JSON
// documents.
func dataToDTO(data *m_rule.Data) *contracts.RuleDTO {
	dto := &contracts.RuleDTO{
		RuleID:            data.RuleID,
		Name:              data.Name,
		Description:       data.Description,
		PromotionType:     data.PromotionType,
		Priority:          data.Priority,
		Scope:             data.Scope,
		Exclusive:         data.Exclusive,
		ProductConditions: data.ProductConditions,
		OrderConditions:   data.OrderConditions.StringVal,
		DiscountStrategy:  data.DiscountStrategy,
		Tags:              data.Tags,
		Status:            data.Status,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}

	if data.StartTime.Valid {
		t := data.StartTime.Time
		dto.StartTime = &t
	}
	if data.EndTime.Valid {
		t := data.EndTime.Time
		dto.EndTime = &t
	}

	return dto
}

// forEachRuleRow runs the statement and passes each decoded row to fn.
func forEachRuleRow(ctx context.Context, client *spanner.Client, stmt spanner.Statement, fn func(*m_rule.Data) error) error {
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to iterate rules: %w", err)
		}

		var data m_rule.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse rule: %w", err)
		}

		if err := fn(&data); err != nil {
			return err
		}
	}
}
