package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental/internal/middleware"
	"rental/internal/service"
)

// PublicHandler handles the customer-facing marketplace endpoints.
type PublicHandler struct {
	pricingService  *service.PricingService
	bookingService  *service.BookingService
	vehicleService  *service.VehicleService
	callbackService *service.CallbackService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(
	pricingService *service.PricingService,
	bookingService *service.BookingService,
	vehicleService *service.VehicleService,
	callbackService *service.CallbackService,
) *PublicHandler {
	return &PublicHandler{
		pricingService:  pricingService,
		bookingService:  bookingService,
		vehicleService:  vehicleService,
		callbackService: callbackService,
	}
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// QuotedExtraResponse is one priced extra line in a pricing response.
type QuotedExtraResponse struct {
	Type      string  `json:"type"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// PricingResponse is the HTTP response for a pricing quote.
type PricingResponse struct {
	DailyPrice     float64               `json:"daily_price"`
	TotalDays      int                   `json:"total_days"`
	Subtotal       float64               `json:"subtotal"`
	Extras         []QuotedExtraResponse `json:"extras,omitempty"`
	ExtrasTotal    float64               `json:"extras_total"`
	PlatformFee    float64               `json:"platform_fee"`
	TenantEarnings float64               `json:"tenant_earnings"`
	TotalAmount    float64               `json:"total_amount"`
	CautionAmount  float64               `json:"caution_amount"`
}

// Pricing handles GET /public/bookings/pricing
func (h *PublicHandler) Pricing(c *gin.Context) {
	startDate, err := parseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid startDate"})
		return
	}
	endDate, err := parseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid endDate"})
		return
	}

	var extras []service.ExtraRequest
	for _, extraType := range c.QueryArray("extras") {
		extras = append(extras, service.ExtraRequest{Type: extraType, Quantity: 1})
	}

	quote, err := h.pricingService.Quote(c.Request.Context(), service.QuoteRequest{
		VehicleID:   c.Query("vehicleId"),
		StartDate:   startDate,
		EndDate:     endDate,
		Extras:      extras,
		Marketplace: true,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, quoteToResponse(quote))
}

func quoteToResponse(quote *service.Quote) PricingResponse {
	resp := PricingResponse{
		DailyPrice:     quote.DailyPrice,
		TotalDays:      quote.TotalDays,
		Subtotal:       quote.Subtotal,
		ExtrasTotal:    quote.ExtrasTotal,
		PlatformFee:    quote.PlatformFee,
		TenantEarnings: quote.TenantEarnings,
		TotalAmount:    quote.TotalAmount,
		CautionAmount:  quote.CautionAmount,
	}
	for _, extra := range quote.Extras {
		resp.Extras = append(resp.Extras, QuotedExtraResponse{
			Type:      extra.Type,
			Quantity:  extra.Quantity,
			UnitPrice: extra.UnitPrice,
			Total:     extra.Total,
		})
	}
	return resp
}

// CreateBookingRequest is the HTTP request body for a marketplace booking.
type CreateBookingRequest struct {
	VehicleID       string         `json:"vehicle_id"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	PickupBranchID  string         `json:"pickup_branch_id,omitempty"`
	DropoffBranchID string         `json:"dropoff_branch_id,omitempty"`
	Extras          []ExtraRequest `json:"extras,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

// ExtraRequest is one requested extra in a booking request.
type ExtraRequest struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// CreateBookingResponse is the HTTP response for a created marketplace booking.
type CreateBookingResponse struct {
	Booking    BookingResponse `json:"booking"`
	PaymentURL string          `json:"payment_url,omitempty"`
}

// CreateBooking handles POST /public/bookings
func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date"})
		return
	}

	var extras []service.ExtraRequest
	for _, extra := range req.Extras {
		extras = append(extras, service.ExtraRequest{Type: extra.Type, Quantity: extra.Quantity})
	}

	result, err := h.bookingService.CreateMarketplaceBooking(c.Request.Context(), middleware.ActorFrom(c), service.CreateBookingRequest{
		VehicleID:       req.VehicleID,
		StartDate:       startDate,
		EndDate:         endDate,
		PickupBranchID:  req.PickupBranchID,
		DropoffBranchID: req.DropoffBranchID,
		Extras:          extras,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CreateBookingResponse{
		Booking:    bookingToResponse(result.Booking),
		PaymentURL: result.PaymentURL,
	})
}

// PaymentCallback handles GET /public/bookings/payment/callback
//
// The gateway expects a plain-text acknowledgment, so this never returns a
// JSON error body.
func (h *PublicHandler) PaymentCallback(c *gin.Context) {
	body := h.callbackService.Handle(c.Request.Context(), c.Query("data"), c.Query("ss1"))
	c.String(http.StatusOK, body)
}

// SearchVehicles handles GET /public/vehicles
func (h *PublicHandler) SearchVehicles(c *gin.Context) {
	tenantID := c.Query("tenantId")

	startDate, err := parseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid startDate"})
		return
	}
	endDate, err := parseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid endDate"})
		return
	}

	vehicles, err := h.vehicleService.SearchAvailable(c.Request.Context(), tenantID, startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		response = append(response, vehicleToResponse(vehicle))
	}
	respondJSON(c, http.StatusOK, response)
}
