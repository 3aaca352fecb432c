package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/middleware"
	"rental/internal/service"
)

// VehicleHandler handles HTTP requests for fleet vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// VehicleResponse is the HTTP response for vehicle operations.
type VehicleResponse struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"tenant_id"`
	Plate         string  `json:"plate"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	DailyPrice    float64 `json:"daily_price"`
	CautionAmount float64 `json:"caution_amount"`
	Status        string  `json:"status"`
}

func vehicleToResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:            vehicle.ID,
		TenantID:      vehicle.TenantID,
		Plate:         vehicle.Plate,
		Make:          vehicle.Make,
		Model:         vehicle.Model,
		Year:          vehicle.Year,
		DailyPrice:    vehicle.DailyPrice,
		CautionAmount: vehicle.CautionAmount,
		Status:        string(vehicle.Status),
	}
}

// RegisterVehicleRequest is the HTTP request body for adding a vehicle.
type RegisterVehicleRequest struct {
	Plate         string  `json:"plate"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	DailyPrice    float64 `json:"daily_price"`
	CautionAmount float64 `json:"caution_amount"`
}

// RegisterVehicle handles POST /v1/vehicles
func (h *VehicleHandler) RegisterVehicle(c *gin.Context) {
	var req RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Register(c.Request.Context(), middleware.ActorFrom(c), service.RegisterVehicleRequest{
		Plate:         req.Plate,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		DailyPrice:    req.DailyPrice,
		CautionAmount: req.CautionAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, vehicleToResponse(vehicle))
}

// GetVehicle handles GET /v1/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.ActorFrom(c)
	if vehicle.TenantID != actor.TenantID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "vehicle not found"})
		return
	}

	respondJSON(c, http.StatusOK, vehicleToResponse(vehicle))
}

// ListVehicles handles GET /v1/vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	vehicles, err := h.vehicleService.ListByTenant(c.Request.Context(), actor.TenantID)
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
