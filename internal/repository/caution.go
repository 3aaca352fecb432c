package repository

import (
	"context"

	"rental/internal/domain"
)

// CautionRepository defines the persistence operations for cautions.
type CautionRepository interface {
	// Create persists a new caution.
	Create(ctx context.Context, caution *domain.Caution) error

	// GetByID retrieves a caution by ID.
	GetByID(ctx context.Context, id string) (*domain.Caution, error)

	// GetByBookingID retrieves the caution held against a booking.
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Caution, error)

	// Update updates an existing caution.
	Update(ctx context.Context, caution *domain.Caution) error
}
