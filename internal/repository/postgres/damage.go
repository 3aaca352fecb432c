package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rental/internal/domain"
	"rental/internal/repository"
)

// DamageRepository is a PostgreSQL implementation of repository.DamageRepository.
type DamageRepository struct {
	q Querier
}

// NewDamageRepository creates a new PostgreSQL damage repository.
func NewDamageRepository(db *sql.DB) *DamageRepository {
	return &DamageRepository{q: db}
}

const damageColumns = `id, tenant_id, booking_id, vehicle_id, severity, description, estimated_cost, actual_cost, franchise, status, disputed, reported_at, assessed_at`

// Create persists a new damage record.
func (r *DamageRepository) Create(ctx context.Context, damage *domain.Damage) error {
	query := `
		INSERT INTO damages (` + damageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.q.ExecContext(ctx, query,
		damage.ID,
		damage.TenantID,
		damage.BookingID,
		damage.VehicleID,
		damage.Severity,
		nullString(damage.Description),
		damage.EstimatedCost,
		damage.ActualCost,
		damage.Franchise,
		damage.Status,
		damage.Disputed,
		damage.ReportedAt,
		nullTime(damage.AssessedAt),
	)

	return err
}

// GetByID retrieves a damage by ID.
func (r *DamageRepository) GetByID(ctx context.Context, id string) (*domain.Damage, error) {
	query := `SELECT ` + damageColumns + ` FROM damages WHERE id = $1`

	damage, err := scanDamage(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return damage, nil
}

// ListByBooking retrieves all damages linked to a booking.
func (r *DamageRepository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Damage, error) {
	query := `SELECT ` + damageColumns + ` FROM damages WHERE booking_id = $1 ORDER BY reported_at`

	rows, err := r.q.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var damages []*domain.Damage
	for rows.Next() {
		damage, err := scanDamage(rows)
		if err != nil {
			return nil, err
		}
		damages = append(damages, damage)
	}
	return damages, rows.Err()
}

// Update updates an existing damage record.
func (r *DamageRepository) Update(ctx context.Context, damage *domain.Damage) error {
	query := `
		UPDATE damages
		SET severity = $1, description = $2, estimated_cost = $3, actual_cost = $4,
		    franchise = $5, status = $6, disputed = $7, assessed_at = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		damage.Severity,
		nullString(damage.Description),
		damage.EstimatedCost,
		damage.ActualCost,
		damage.Franchise,
		damage.Status,
		damage.Disputed,
		nullTime(damage.AssessedAt),
		damage.ID,
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

func scanDamage(row rowScanner) (*domain.Damage, error) {
	var damage domain.Damage
	var description sql.NullString
	var assessedAt sql.NullTime

	err := row.Scan(
		&damage.ID,
		&damage.TenantID,
		&damage.BookingID,
		&damage.VehicleID,
		&damage.Severity,
		&description,
		&damage.EstimatedCost,
		&damage.ActualCost,
		&damage.Franchise,
		&damage.Status,
		&damage.Disputed,
		&damage.ReportedAt,
		&assessedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		damage.Description = description.String
	}
	if assessedAt.Valid {
		damage.AssessedAt = assessedAt.Time
	}

	return &damage, nil
}
