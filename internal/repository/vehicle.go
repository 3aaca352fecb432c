package repository

import (
	"context"

	"rental/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create persists a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// ListByTenant retrieves all vehicles in a tenant's fleet.
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Vehicle, error)

	// Update updates an existing vehicle.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// UpdateStatusFrom sets the vehicle status only if it currently has the
	// expected status. Returns ErrStatusConflict when the check-and-set fails.
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error
}
