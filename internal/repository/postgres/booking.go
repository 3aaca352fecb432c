package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"rental/internal/domain"
	"rental/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, tenant_id, vehicle_id, customer_id, start_date, end_date, pickup_branch_id, dropoff_branch_id, daily_price, total_price, platform_fee, status, marketplace, extras, notes, created_at, confirmed_at, checked_out_at, checked_in_at, cancelled_at, cancel_reason`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	extras, err := json.Marshal(booking.Extras)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		booking.ID,
		booking.TenantID,
		booking.VehicleID,
		booking.CustomerID,
		booking.StartDate,
		booking.EndDate,
		nullString(booking.PickupBranchID),
		nullString(booking.DropoffBranchID),
		booking.DailyPrice,
		booking.TotalPrice,
		booking.PlatformFee,
		booking.Status,
		booking.Marketplace,
		extras,
		nullString(booking.Notes),
		booking.CreatedAt,
		nullTime(booking.ConfirmedAt),
		nullTime(booking.CheckedOutAt),
		nullTime(booking.CheckedInAt),
		nullTime(booking.CancelledAt),
		nullString(booking.CancelReason),
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return booking, nil
}

// ListByTenant retrieves bookings belonging to a tenant.
func (r *BookingRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT 200`

	rows, err := r.q.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, total_price = $2, platform_fee = $3, notes = $4,
		    confirmed_at = $5, checked_out_at = $6, checked_in_at = $7,
		    cancelled_at = $8, cancel_reason = $9
		WHERE id = $10
	`

	result, err := r.q.ExecContext(ctx, query,
		booking.Status,
		booking.TotalPrice,
		booking.PlatformFee,
		nullString(booking.Notes),
		nullTime(booking.ConfirmedAt),
		nullTime(booking.CheckedOutAt),
		nullTime(booking.CheckedInAt),
		nullTime(booking.CancelledAt),
		nullString(booking.CancelReason),
		booking.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// FindOverlapping returns active bookings for the vehicle whose date range
// overlaps [start, end).
func (r *BookingRepository) FindOverlapping(ctx context.Context, vehicleID string, start, end time.Time) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE vehicle_id = $1
		  AND status IN ('CONFIRMED', 'CHECKED_OUT')
		  AND start_date < $3
		  AND end_date > $2
	`

	rows, err := r.q.QueryContext(ctx, query, vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListConfirmedStartingBefore returns CONFIRMED bookings whose start date is
// before the cutoff.
func (r *BookingRepository) ListConfirmedStartingBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'CONFIRMED' AND start_date < $1`

	rows, err := r.q.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListPendingCreatedBefore returns PENDING bookings created before the cutoff.
func (r *BookingRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'PENDING' AND created_at < $1`

	rows, err := r.q.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var pickupBranchID, dropoffBranchID, notes, cancelReason sql.NullString
	var confirmedAt, checkedOutAt, checkedInAt, cancelledAt sql.NullTime
	var extras []byte

	err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.VehicleID,
		&booking.CustomerID,
		&booking.StartDate,
		&booking.EndDate,
		&pickupBranchID,
		&dropoffBranchID,
		&booking.DailyPrice,
		&booking.TotalPrice,
		&booking.PlatformFee,
		&booking.Status,
		&booking.Marketplace,
		&extras,
		&notes,
		&booking.CreatedAt,
		&confirmedAt,
		&checkedOutAt,
		&checkedInAt,
		&cancelledAt,
		&cancelReason,
	)
	if err != nil {
		return nil, err
	}

	if len(extras) > 0 {
		if err := json.Unmarshal(extras, &booking.Extras); err != nil {
			return nil, err
		}
	}
	if pickupBranchID.Valid {
		booking.PickupBranchID = pickupBranchID.String
	}
	if dropoffBranchID.Valid {
		booking.DropoffBranchID = dropoffBranchID.String
	}
	if notes.Valid {
		booking.Notes = notes.String
	}
	if cancelReason.Valid {
		booking.CancelReason = cancelReason.String
	}
	if confirmedAt.Valid {
		booking.ConfirmedAt = confirmedAt.Time
	}
	if checkedOutAt.Valid {
		booking.CheckedOutAt = checkedOutAt.Time
	}
	if checkedInAt.Valid {
		booking.CheckedInAt = checkedInAt.Time
	}
	if cancelledAt.Valid {
		booking.CancelledAt = cancelledAt.Time
	}

	return &booking, nil
}

func collectBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
