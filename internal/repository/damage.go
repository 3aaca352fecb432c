package repository

import (
	"context"

	"rental/internal/domain"
)

// DamageRepository defines the persistence operations for damages.
type DamageRepository interface {
	// Create persists a new damage record.
	Create(ctx context.Context, damage *domain.Damage) error

	// GetByID retrieves a damage by ID.
	GetByID(ctx context.Context, id string) (*domain.Damage, error)

	// ListByBooking retrieves all damages linked to a booking.
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.Damage, error)

	// Update updates an existing damage record.
	Update(ctx context.Context, damage *domain.Damage) error
}
