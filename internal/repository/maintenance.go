package repository

import (
	"context"

	"rental/internal/domain"
)

// MaintenanceRepository defines the persistence operations for maintenance jobs.
type MaintenanceRepository interface {
	// Create persists a new maintenance job.
	Create(ctx context.Context, m *domain.Maintenance) error

	// GetByID retrieves a maintenance job by ID.
	GetByID(ctx context.Context, id string) (*domain.Maintenance, error)

	// ListByTenant retrieves all maintenance jobs for a tenant.
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Maintenance, error)

	// Update updates an existing maintenance job.
	Update(ctx context.Context, m *domain.Maintenance) error
}
