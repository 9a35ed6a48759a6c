package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/usecases/calculate_price"
	"github.com/light-bringer/promo-pricing-service/internal/pkg/clock"
)

func newQuoteHandler(t *testing.T, rules []domain.PromotionRule) *PricingHandler {
	t.Helper()
	engine := domain.NewEngine()
	engine.LoadRules(rules)
	return NewPricingHandler(calculate_price.NewInteractor(engine))
}

func TestPricingHandler(t *testing.T) {
	tenPercent := domain.PromotionRule{
		ID: 1, Name: "ten percent", Priority: 100, Scope: domain.ScopeProduct,
		ProductConditions: domain.ConditionSet{},
		DiscountStrategy:  domain.DiscountStrategy{Type: domain.DiscountPercentage, Value: 10},
	}

	t.Run("quote returns the full pricing breakdown", func(t *testing.T) {
		handler := newQuoteHandler(t, []domain.PromotionRule{tenPercent})

		body := `{"items":[{"id":1,"name":"lamp","basePrice":100,"quantity":2}],"promotionType":0}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result domain.PricingResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, float64(200), result.OriginalTotalPrice)
		assert.Equal(t, float64(20), result.TotalDiscountAmount)
		assert.Equal(t, float64(180), result.FinalTotalPrice)
		require.Len(t, result.Products, 1)
		assert.Equal(t, float64(90), result.Products[0].FinalUnitPrice)
		assert.NotEmpty(t, result.CalculationID)
	})

	t.Run("missing items is a bad request", func(t *testing.T) {
		handler := newQuoteHandler(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(`{"promotionType":0}`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		handler := newQuoteHandler(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(`{`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("only POST is accepted", func(t *testing.T) {
		handler := newQuoteHandler(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/quote", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestRulesHandlerValidate(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	handler := NewRulesHandler(nil, nil, nil, clk)

	t.Run("valid rule", func(t *testing.T) {
		body := `{
			"id": 1, "name": "ten percent", "priority": 100, "scope": "product",
			"productConditions": {"series": {"equal": "A"}},
			"discountStrategy": {"type": "percentage", "value": 10}
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rules/validate", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleValidate(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var result domain.ValidationResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.Valid)
	})

	t.Run("invalid rule reports findings without failing the request", func(t *testing.T) {
		body := `{"id": 0, "name": "", "scope": "galaxy", "discountStrategy": {"type": "percentage", "value": 200}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/rules/validate", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleValidate(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var result domain.ValidationResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("only POST is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rules/validate", nil)
		rec := httptest.NewRecorder()

		handler.HandleValidate(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
