package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rental/internal/domain"
	"rental/internal/repository"
)

// MaintenanceRepository is a PostgreSQL implementation of repository.MaintenanceRepository.
type MaintenanceRepository struct {
	q Querier
}

// NewMaintenanceRepository creates a new PostgreSQL maintenance repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{q: db}
}

const maintenanceColumns = `id, tenant_id, vehicle_id, type, status, scheduled_for, started_at, completed_at, cost, notes, created_at`

// Create persists a new maintenance job.
func (r *MaintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	query := `
		INSERT INTO maintenance (` + maintenanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		m.ID,
		m.TenantID,
		m.VehicleID,
		m.Type,
		m.Status,
		m.ScheduledFor,
		nullTime(m.StartedAt),
		nullTime(m.CompletedAt),
		m.Cost,
		nullString(m.Notes),
		m.CreatedAt,
	)

	return err
}

// GetByID retrieves a maintenance job by ID.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE id = $1`

	m, err := scanMaintenance(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return m, nil
}

// ListByTenant retrieves all maintenance jobs for a tenant.
func (r *MaintenanceRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Maintenance, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE tenant_id = $1 ORDER BY scheduled_for DESC`

	rows, err := r.q.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*domain.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, m)
	}
	return jobs, rows.Err()
}

// Update updates an existing maintenance job.
func (r *MaintenanceRepository) Update(ctx context.Context, m *domain.Maintenance) error {
	query := `
		UPDATE maintenance
		SET type = $1, status = $2, scheduled_for = $3, started_at = $4, completed_at = $5, cost = $6, notes = $7
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		m.Type,
		m.Status,
		m.ScheduledFor,
		nullTime(m.StartedAt),
		nullTime(m.CompletedAt),
		m.Cost,
		nullString(m.Notes),
		m.ID,
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

func scanMaintenance(row rowScanner) (*domain.Maintenance, error) {
	var m domain.Maintenance
	var startedAt, completedAt sql.NullTime
	var notes sql.NullString

	err := row.Scan(
		&m.ID,
		&m.TenantID,
		&m.VehicleID,
		&m.Type,
		&m.Status,
		&m.ScheduledFor,
		&startedAt,
		&completedAt,
		&m.Cost,
		&notes,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startedAt.Valid {
		m.StartedAt = startedAt.Time
	}
	if completedAt.Valid {
		m.CompletedAt = completedAt.Time
	}
	if notes.Valid {
		m.Notes = notes.String
	}

	return &m, nil
}
