package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/middleware"
	"rental/internal/service"
)

// BookingHandler handles HTTP requests for the staff booking lifecycle.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingExtraResponse is one extra line on a booking response.
type BookingExtraResponse struct {
	Type      string  `json:"type"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// BookingResponse is the HTTP response for booking operations.
type BookingResponse struct {
	ID              string                 `json:"id"`
	TenantID        string                 `json:"tenant_id"`
	VehicleID       string                 `json:"vehicle_id"`
	CustomerID      string                 `json:"customer_id"`
	StartDate       string                 `json:"start_date"`
	EndDate         string                 `json:"end_date"`
	PickupBranchID  string                 `json:"pickup_branch_id,omitempty"`
	DropoffBranchID string                 `json:"dropoff_branch_id,omitempty"`
	DailyPrice      float64                `json:"daily_price"`
	TotalPrice      float64                `json:"total_price"`
	PlatformFee     float64                `json:"platform_fee"`
	Status          string                 `json:"status"`
	Marketplace     bool                   `json:"marketplace"`
	Extras          []BookingExtraResponse `json:"extras,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	ConfirmedAt     string                 `json:"confirmed_at,omitempty"`
	CheckedOutAt    string                 `json:"checked_out_at,omitempty"`
	CheckedInAt     string                 `json:"checked_in_at,omitempty"`
	CancelledAt     string                 `json:"cancelled_at,omitempty"`
	CancelReason    string                 `json:"cancel_reason,omitempty"`
}

// formatTime renders a timestamp for responses, empty for unset times.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02T15:04:05Z07:00")
}

func bookingToResponse(booking *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              booking.ID,
		TenantID:        booking.TenantID,
		VehicleID:       booking.VehicleID,
		CustomerID:      booking.CustomerID,
		StartDate:       booking.StartDate.Format("2006-01-02T15:04:05Z07:00"),
		EndDate:         booking.EndDate.Format("2006-01-02T15:04:05Z07:00"),
		PickupBranchID:  booking.PickupBranchID,
		DropoffBranchID: booking.DropoffBranchID,
		DailyPrice:      booking.DailyPrice,
		TotalPrice:      booking.TotalPrice,
		PlatformFee:     booking.PlatformFee,
		Status:          string(booking.Status),
		Marketplace:     booking.Marketplace,
		Notes:           booking.Notes,
		ConfirmedAt:     formatTime(booking.ConfirmedAt),
		CheckedOutAt:    formatTime(booking.CheckedOutAt),
		CheckedInAt:     formatTime(booking.CheckedInAt),
		CancelledAt:     formatTime(booking.CancelledAt),
		CancelReason:    booking.CancelReason,
	}
	for _, extra := range booking.Extras {
		resp.Extras = append(resp.Extras, BookingExtraResponse{
			Type:      extra.Type,
			Quantity:  extra.Quantity,
			UnitPrice: extra.UnitPrice,
		})
	}
	return resp
}

// CreateDirectBookingRequest is the HTTP request body for a staff booking.
// Either customer_id or customer_email identifies the customer; the email is
// resolved against the customer records when no ID is given.
type CreateDirectBookingRequest struct {
	VehicleID       string         `json:"vehicle_id"`
	CustomerID      string         `json:"customer_id,omitempty"`
	CustomerEmail   string         `json:"customer_email,omitempty"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	PickupBranchID  string         `json:"pickup_branch_id,omitempty"`
	DropoffBranchID string         `json:"dropoff_branch_id,omitempty"`
	Extras          []ExtraRequest `json:"extras,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

// CreateBooking handles POST /v1/bookings
//
// Staff bookings are confirmed immediately and the caution is held in cash at
// the counter.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateDirectBookingRequest
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

	actor := middleware.ActorFrom(c)
	actor.ActorID = req.CustomerID

	result, err := h.bookingService.CreateDirectBooking(c.Request.Context(), actor, service.CreateBookingRequest{
		VehicleID:       req.VehicleID,
		CustomerEmail:   req.CustomerEmail,
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

	respondJSON(c, http.StatusCreated, bookingToResponse(result.Booking))
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.ActorFrom(c)
	if booking.TenantID != actor.TenantID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
		return
	}

	respondJSON(c, http.StatusOK, bookingToResponse(booking))
}

// ListBookings handles GET /v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		response = append(response, bookingToResponse(booking))
	}
	respondJSON(c, http.StatusOK, response)
}

// CancelBookingRequest is the HTTP request body for a cancellation.
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBooking handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookingToResponse(booking))
}

// CheckOut handles POST /v1/bookings/:id/checkout
func (h *BookingHandler) CheckOut(c *gin.Context) {
	booking, err := h.bookingService.CheckOut(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookingToResponse(booking))
}

// CheckInResponse is the HTTP response for a check-in, including the caution
// settlement outcome.
type CheckInResponse struct {
	Booking BookingResponse  `json:"booking"`
	Caution *CautionResponse `json:"caution,omitempty"`
}

// CheckIn handles POST /v1/bookings/:id/checkin
func (h *BookingHandler) CheckIn(c *gin.Context) {
	result, err := h.bookingService.CheckIn(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := CheckInResponse{Booking: bookingToResponse(result.Booking)}
	if result.Settle != nil {
		caution := cautionToResponse(result.Settle.Caution)
		response.Caution = &caution
	}
	respondJSON(c, http.StatusOK, response)
}

// MarkNoShow handles POST /v1/bookings/:id/no-show
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	booking, err := h.bookingService.MarkNoShow(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookingToResponse(booking))
}
