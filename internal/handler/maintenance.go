package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/middleware"
	"rental/internal/service"
)

// MaintenanceHandler handles HTTP requests for maintenance jobs.
type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// MaintenanceResponse is the HTTP response for maintenance operations.
type MaintenanceResponse struct {
	ID           string  `json:"id"`
	VehicleID    string  `json:"vehicle_id"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	ScheduledFor string  `json:"scheduled_for"`
	StartedAt    string  `json:"started_at,omitempty"`
	CompletedAt  string  `json:"completed_at,omitempty"`
	Cost         float64 `json:"cost,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

func maintenanceToResponse(job *domain.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:           job.ID,
		VehicleID:    job.VehicleID,
		Type:         job.Type,
		Status:       string(job.Status),
		ScheduledFor: formatTime(job.ScheduledFor),
		StartedAt:    formatTime(job.StartedAt),
		CompletedAt:  formatTime(job.CompletedAt),
		Cost:         job.Cost,
		Notes:        job.Notes,
	}
}

// ScheduleMaintenanceRequest is the HTTP request body for scheduling a job.
type ScheduleMaintenanceRequest struct {
	VehicleID    string  `json:"vehicle_id"`
	Type         string  `json:"type"`
	ScheduledFor string  `json:"scheduled_for"`
	Cost         float64 `json:"cost,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// ScheduleMaintenance handles POST /v1/maintenance
func (h *MaintenanceHandler) ScheduleMaintenance(c *gin.Context) {
	var req ScheduleMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	scheduledFor, err := parseDate(req.ScheduledFor)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid scheduled_for"})
		return
	}

	job, err := h.maintenanceService.Schedule(c.Request.Context(), middleware.ActorFrom(c), service.ScheduleMaintenanceRequest{
		VehicleID:    req.VehicleID,
		Type:         req.Type,
		ScheduledFor: scheduledFor,
		Cost:         req.Cost,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, maintenanceToResponse(job))
}

// StartMaintenance handles POST /v1/maintenance/:id/start
func (h *MaintenanceHandler) StartMaintenance(c *gin.Context) {
	job, err := h.maintenanceService.Start(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, maintenanceToResponse(job))
}

// CompleteMaintenanceRequest is the HTTP request body for completing a job.
type CompleteMaintenanceRequest struct {
	Cost float64 `json:"cost,omitempty"`
}

// CompleteMaintenance handles POST /v1/maintenance/:id/complete
func (h *MaintenanceHandler) CompleteMaintenance(c *gin.Context) {
	var req CompleteMaintenanceRequest
	_ = c.ShouldBindJSON(&req)

	job, err := h.maintenanceService.Complete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Cost)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, maintenanceToResponse(job))
}

// CancelMaintenance handles POST /v1/maintenance/:id/cancel
func (h *MaintenanceHandler) CancelMaintenance(c *gin.Context) {
	job, err := h.maintenanceService.Cancel(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, maintenanceToResponse(job))
}

// ListMaintenance handles GET /v1/maintenance
func (h *MaintenanceHandler) ListMaintenance(c *gin.Context) {
	jobs, err := h.maintenanceService.ListByTenant(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MaintenanceResponse, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, maintenanceToResponse(job))
	}
	respondJSON(c, http.StatusOK, response)
}
