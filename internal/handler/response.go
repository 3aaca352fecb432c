package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/repository"
	"rental/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidTenantID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidCautionID),
		errors.Is(err, service.ErrInvalidDamageID),
		errors.Is(err, service.ErrInvalidMaintenanceID),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrUnknownExtraType),
		errors.Is(err, service.ErrInvalidExtraQuantity),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidPaymentMethod):
		return http.StatusBadRequest

	// Conflict errors - illegal state transitions and overlaps
	case errors.Is(err, service.ErrBookingOverlap),
		errors.Is(err, service.ErrVehicleUnavailable),
		errors.Is(err, service.ErrVehicleNotAvailableForCheckout),
		errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrBookingNotConfirmed),
		errors.Is(err, service.ErrBookingNotCheckedOut),
		errors.Is(err, service.ErrBookingNotCancellable),
		errors.Is(err, service.ErrPickupDeadlineNotPassed),
		errors.Is(err, service.ErrCautionTerminal),
		errors.Is(err, service.ErrCautionNotPending),
		errors.Is(err, service.ErrCautionNotHeld),
		errors.Is(err, service.ErrDamageNotDisputed),
		errors.Is(err, service.ErrMaintenanceNotScheduled),
		errors.Is(err, service.ErrMaintenanceNotInProgress),
		errors.Is(err, repository.ErrStatusConflict):
		return http.StatusConflict

	// Vehicle lock contention - retryable
	case errors.Is(err, service.ErrVehicleBusy):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
