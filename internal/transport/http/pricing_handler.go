package http

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/promo-pricing-service/internal/app/pricing/usecases/calculate_price"
)

// PricingHandler handles HTTP requests for price calculations.
type PricingHandler struct {
	calculate *calculate_price.Interactor
}

// NewPricingHandler creates a new HTTP pricing handler.
func NewPricingHandler(calculate *calculate_price.Interactor) *PricingHandler {
	return &PricingHandler{
		calculate: calculate,
	}
}

// QuoteRequest is the payload for POST /api/v1/pricing/quote.
type QuoteRequest struct {
	Items         []domain.ProductWithQuantity `json:"items"`
	PromotionType int64                        `json:"promotionType"`
}

// ServeHTTP handles POST /api/v1/pricing/quote requests.
func (h *PricingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.calculate.Execute(r.Context(), &calculate_price.Request{
		Items:         req.Items,
		PromotionType: req.PromotionType,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNilLineItems) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to price order: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
