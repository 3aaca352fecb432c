package domain

import "time"

// VehicleStatus represents the current status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

// Vehicle represents a rentable vehicle in a tenant's fleet.
type Vehicle struct {
	ID            string
	TenantID      string
	Plate         string
	Make          string
	Model         string
	Year          int
	DailyPrice    float64
	CautionAmount float64 // deposit held for bookings of this vehicle
	Status        VehicleStatus
	CreatedAt     time.Time
}
