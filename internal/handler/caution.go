package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/middleware"
	"rental/internal/service"
)

// CautionHandler handles HTTP requests for security deposits.
type CautionHandler struct {
	cautionService *service.CautionService
}

// NewCautionHandler creates a new CautionHandler.
func NewCautionHandler(cautionService *service.CautionService) *CautionHandler {
	return &CautionHandler{cautionService: cautionService}
}

// CautionResponse is the HTTP response for caution operations.
type CautionResponse struct {
	ID            string  `json:"id"`
	BookingID     string  `json:"booking_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	HeldAt        string  `json:"held_at,omitempty"`
	ReleasedAt    string  `json:"released_at,omitempty"`
	ChargedAt     string  `json:"charged_at,omitempty"`
	ChargedAmount float64 `json:"charged_amount,omitempty"`
}

func cautionToResponse(caution *domain.Caution) CautionResponse {
	return CautionResponse{
		ID:            caution.ID,
		BookingID:     caution.BookingID,
		Amount:        caution.Amount,
		Status:        string(caution.Status),
		PaymentMethod: string(caution.PaymentMethod),
		HeldAt:        formatTime(caution.HeldAt),
		ReleasedAt:    formatTime(caution.ReleasedAt),
		ChargedAt:     formatTime(caution.ChargedAt),
		ChargedAmount: caution.ChargedAmount,
	}
}

// GetCaution handles GET /v1/cautions/:id
func (h *CautionHandler) GetCaution(c *gin.Context) {
	caution, err := h.cautionService.GetCaution(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.ActorFrom(c)
	if caution.TenantID != actor.TenantID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "caution not found"})
		return
	}

	respondJSON(c, http.StatusOK, cautionToResponse(caution))
}

// GetByBooking handles GET /v1/bookings/:id/caution
func (h *CautionHandler) GetByBooking(c *gin.Context) {
	caution, err := h.cautionService.GetByBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.ActorFrom(c)
	if caution.TenantID != actor.TenantID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "caution not found"})
		return
	}

	respondJSON(c, http.StatusOK, cautionToResponse(caution))
}

// HoldCautionRequest is the HTTP request body for a counter deposit hold.
type HoldCautionRequest struct {
	PaymentMethod string `json:"payment_method,omitempty"`
}

// HoldCaution handles POST /v1/bookings/:id/caution/hold
//
// Used by counter staff when the deposit is taken in cash; marketplace
// cautions are held by the payment callback instead. An optional
// payment_method records how the deposit was taken.
func (h *CautionHandler) HoldCaution(c *gin.Context) {
	var req HoldCautionRequest
	_ = c.ShouldBindJSON(&req)

	caution, err := h.cautionService.Hold(c.Request.Context(), c.Param("id"), domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, cautionToResponse(caution))
}
