package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/queries/list_rules"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/usecases/reload_rules"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/usecases/save_rule"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/clock"
)

// RulesHandler handles HTTP requests for rule management.
type RulesHandler struct {
	save   *save_rule.Interactor
	reload *reload_rules.Interactor
	list   *list_rules.Query
	clock  clock.Clock
}

// NewRulesHandler creates a new HTTP rules handler.
func NewRulesHandler(
	save *save_rule.Interactor,
	reload *reload_rules.Interactor,
	list *list_rules.Query,
	clk clock.Clock,
) *RulesHandler {
	return &RulesHandler{
		save:   save,
		reload: reload,
		list:   list,
		clock:  clk,
	}
}

// SaveRuleRequest is the payload for POST /api/v1/rules.
type SaveRuleRequest struct {
	Rule     domain.PromotionRule `json:"rule"`
	Disabled bool                 `json:"disabled,omitempty"`
}

// SaveRuleResponse reports the stored rule and its validation findings.
type SaveRuleResponse struct {
	RuleID     int64                   `json:"ruleId"`
	Validation domain.ValidationResult `json:"validation"`
}

// HandleRules serves /api/v1/rules: GET lists rules, POST stores one.
func (h *RulesHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleSave(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RulesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &list_rules.Request{
		Scope:  query.Get("scope"),
		Status: query.Get("status"),
		Tag:    query.Get("tag"),
	}

	if typeStr := query.Get("promotion_type"); typeStr != "" {
		promotionType, err := strconv.ParseInt(typeStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid promotion_type: "+typeStr)
			return
		}
		req.PromotionType = &promotionType
	}

	if sizeStr := query.Get("page_size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			req.PageSize = size
		}
	}

	result, err := h.list.Execute(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rules: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *RulesHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.save.Execute(r.Context(), &save_rule.Request{
		Rule:     req.Rule,
		Disabled: req.Disabled,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRuleInvalid) {
			// The findings tell the caller what to fix.
			writeJSON(w, http.StatusUnprocessableEntity, SaveRuleResponse{
				RuleID:     resp.RuleID,
				Validation: resp.Validation,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save rule: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SaveRuleResponse{
		RuleID:     resp.RuleID,
		Validation: resp.Validation,
	})
}

// HandleValidate serves POST /api/v1/rules/validate: dry-run validation
// without persisting anything.
func (h *RulesHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var rule domain.PromotionRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, domain.ValidateRule(rule, h.clock.Now()))
}

// HandleReload serves POST /api/v1/rules/reload: swaps the engine's rule
// set for the currently stored active rules.
func (h *RulesHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp, err := h.reload.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reload rules: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
