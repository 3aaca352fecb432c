package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/middleware"
	"rental/internal/service"
)

// ExtraHandler handles HTTP requests for the extras price list.
type ExtraHandler struct {
	pricingService *service.PricingService
}

// NewExtraHandler creates a new ExtraHandler.
func NewExtraHandler(pricingService *service.PricingService) *ExtraHandler {
	return &ExtraHandler{pricingService: pricingService}
}

// ExtraPriceResponse is one price list entry in a response.
type ExtraPriceResponse struct {
	Type      string  `json:"type"`
	UnitPrice float64 `json:"unit_price"`
}

// ListExtraPrices handles GET /v1/extras
func (h *ExtraHandler) ListExtraPrices(c *gin.Context) {
	prices, err := h.pricingService.ListExtraPrices(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ExtraPriceResponse, 0, len(prices))
	for _, price := range prices {
		response = append(response, ExtraPriceResponse{Type: price.Type, UnitPrice: price.UnitPrice})
	}
	respondJSON(c, http.StatusOK, response)
}

// SetExtraPriceRequest is the HTTP request body for a price list entry.
type SetExtraPriceRequest struct {
	Type      string  `json:"type"`
	UnitPrice float64 `json:"unit_price"`
}

// SetExtraPrice handles PUT /v1/extras
func (h *ExtraHandler) SetExtraPrice(c *gin.Context) {
	var req SetExtraPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	price, err := h.pricingService.SetExtraPrice(c.Request.Context(), middleware.ActorFrom(c), req.Type, req.UnitPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ExtraPriceResponse{Type: price.Type, UnitPrice: price.UnitPrice})
}
