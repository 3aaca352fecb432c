package repository

import (
	"context"
	"time"

	"rental/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// ListByTenant retrieves bookings belonging to a tenant.
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.Booking, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error

	// FindOverlapping returns active (CONFIRMED or CHECKED_OUT) bookings for
	// the vehicle whose date range overlaps [start, end).
	FindOverlapping(ctx context.Context, vehicleID string, start, end time.Time) ([]*domain.Booking, error)

	// ListConfirmedStartingBefore returns CONFIRMED bookings whose start date
	// is before the cutoff. Used by the no-show sweep.
	ListConfirmedStartingBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)

	// ListPendingCreatedBefore returns PENDING bookings created before the
	// cutoff. Used by the payment-timeout sweep.
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)
}
