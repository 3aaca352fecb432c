package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rental/internal/domain"
	"rental/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, tenant_id, plate, make, model, year, daily_price, caution_amount, status, created_at`

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.TenantID,
		vehicle.Plate,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.DailyPrice,
		vehicle.CautionAmount,
		vehicle.Status,
		vehicle.CreatedAt,
	)

	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	var vehicle domain.Vehicle
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.TenantID,
		&vehicle.Plate,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.DailyPrice,
		&vehicle.CautionAmount,
		&vehicle.Status,
		&vehicle.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &vehicle, nil
}

// ListByTenant retrieves all vehicles in a tenant's fleet.
func (r *VehicleRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE tenant_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.TenantID,
			&vehicle.Plate,
			&vehicle.Make,
			&vehicle.Model,
			&vehicle.Year,
			&vehicle.DailyPrice,
			&vehicle.CautionAmount,
			&vehicle.Status,
			&vehicle.CreatedAt,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, rows.Err()
}

// Update updates an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET plate = $1, make = $2, model = $3, year = $4, daily_price = $5, caution_amount = $6, status = $7
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		vehicle.Plate,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.DailyPrice,
		vehicle.CautionAmount,
		vehicle.Status,
		vehicle.ID,
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

// UpdateStatusFrom sets the vehicle status only if it currently has the
// expected status. The single UPDATE makes the check-and-set atomic.
func (r *VehicleRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrStatusConflict
	}

	return nil
}
