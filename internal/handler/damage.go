package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/middleware"
	"rental/internal/service"
)

// DamageHandler handles HTTP requests for vehicle damages.
type DamageHandler struct {
	damageService *service.DamageService
}

// NewDamageHandler creates a new DamageHandler.
func NewDamageHandler(damageService *service.DamageService) *DamageHandler {
	return &DamageHandler{damageService: damageService}
}

// DamageResponse is the HTTP response for damage operations.
type DamageResponse struct {
	ID            string  `json:"id"`
	BookingID     string  `json:"booking_id"`
	VehicleID     string  `json:"vehicle_id"`
	Severity      string  `json:"severity"`
	Description   string  `json:"description,omitempty"`
	EstimatedCost float64 `json:"estimated_cost"`
	ActualCost    float64 `json:"actual_cost"`
	Franchise     float64 `json:"franchise,omitempty"`
	Status        string  `json:"status"`
	Disputed      bool    `json:"disputed"`
	ReportedAt    string  `json:"reported_at"`
	AssessedAt    string  `json:"assessed_at,omitempty"`
}

func damageToResponse(damage *domain.Damage) DamageResponse {
	return DamageResponse{
		ID:            damage.ID,
		BookingID:     damage.BookingID,
		VehicleID:     damage.VehicleID,
		Severity:      string(damage.Severity),
		Description:   damage.Description,
		EstimatedCost: damage.EstimatedCost,
		ActualCost:    damage.ActualCost,
		Franchise:     damage.Franchise,
		Status:        string(damage.Status),
		Disputed:      damage.Disputed,
		ReportedAt:    formatTime(damage.ReportedAt),
		AssessedAt:    formatTime(damage.AssessedAt),
	}
}

// ReportDamageRequest is the HTTP request body for reporting a damage.
type ReportDamageRequest struct {
	BookingID     string  `json:"booking_id"`
	Severity      string  `json:"severity,omitempty"`
	Description   string  `json:"description,omitempty"`
	EstimatedCost float64 `json:"estimated_cost"`
	Franchise     float64 `json:"franchise,omitempty"`
}

// ReportDamage handles POST /v1/damages
func (h *DamageHandler) ReportDamage(c *gin.Context) {
	var req ReportDamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	damage, err := h.damageService.ReportDamage(c.Request.Context(), middleware.ActorFrom(c), service.ReportDamageRequest{
		BookingID:     req.BookingID,
		Severity:      domain.DamageSeverity(req.Severity),
		Description:   req.Description,
		EstimatedCost: req.EstimatedCost,
		Franchise:     req.Franchise,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, damageToResponse(damage))
}

// AssessDamageRequest is the HTTP request body for an assessment.
type AssessDamageRequest struct {
	ActualCost float64 `json:"actual_cost"`
}

// AssessDamage handles POST /v1/damages/:id/assess
func (h *DamageHandler) AssessDamage(c *gin.Context) {
	var req AssessDamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	damage, err := h.damageService.AssessDamage(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.ActualCost)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, damageToResponse(damage))
}

// DisputeDamage handles POST /v1/damages/:id/dispute
func (h *DamageHandler) DisputeDamage(c *gin.Context) {
	damage, err := h.damageService.DisputeDamage(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, damageToResponse(damage))
}

// ResolveDispute handles POST /v1/damages/:id/resolve
func (h *DamageHandler) ResolveDispute(c *gin.Context) {
	damage, err := h.damageService.ResolveDispute(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, damageToResponse(damage))
}

// ListDamages handles GET /v1/damages?bookingId=
func (h *DamageHandler) ListDamages(c *gin.Context) {
	damages, err := h.damageService.ListByBooking(c.Request.Context(), middleware.ActorFrom(c), c.Query("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DamageResponse, 0, len(damages))
	for _, damage := range damages {
		response = append(response, damageToResponse(damage))
	}
	respondJSON(c, http.StatusOK, response)
}
