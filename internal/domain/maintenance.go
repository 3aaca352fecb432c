package domain

import "time"

// MaintenanceStatus represents the current status of a maintenance job.
type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "SCHEDULED"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceStatusCancelled  MaintenanceStatus = "CANCELLED"
)

// Maintenance represents a scheduled service job on a vehicle. Its lifecycle
// is independent of bookings.
type Maintenance struct {
	ID           string
	TenantID     string
	VehicleID    string
	Type         string
	Status       MaintenanceStatus
	ScheduledFor time.Time
	StartedAt    time.Time
	CompletedAt  time.Time
	Cost         float64
	Notes        string
	CreatedAt    time.Time
}
