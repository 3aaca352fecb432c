package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rental/internal/domain"
	"rental/internal/repository"
)

// CautionRepository is a PostgreSQL implementation of repository.CautionRepository.
type CautionRepository struct {
	q Querier
}

// NewCautionRepository creates a new PostgreSQL caution repository.
func NewCautionRepository(db *sql.DB) *CautionRepository {
	return &CautionRepository{q: db}
}

// NewCautionRepositoryWithTx creates a caution repository using a transaction.
func NewCautionRepositoryWithTx(tx *sql.Tx) *CautionRepository {
	return &CautionRepository{q: tx}
}

const cautionColumns = `id, tenant_id, booking_id, amount, status, payment_method, held_at, released_at, charged_at, charged_amount, created_at`

// Create persists a new caution.
func (r *CautionRepository) Create(ctx context.Context, caution *domain.Caution) error {
	query := `
		INSERT INTO cautions (` + cautionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	var chargedAmount sql.NullFloat64
	if caution.ChargedAmount > 0 {
		chargedAmount = sql.NullFloat64{Float64: caution.ChargedAmount, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		caution.ID,
		caution.TenantID,
		caution.BookingID,
		caution.Amount,
		caution.Status,
		caution.PaymentMethod,
		nullTime(caution.HeldAt),
		nullTime(caution.ReleasedAt),
		nullTime(caution.ChargedAt),
		chargedAmount,
		caution.CreatedAt,
	)

	return err
}

// GetByID retrieves a caution by ID.
func (r *CautionRepository) GetByID(ctx context.Context, id string) (*domain.Caution, error) {
	query := `SELECT ` + cautionColumns + ` FROM cautions WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByBookingID retrieves the caution held against a booking.
func (r *CautionRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Caution, error) {
	query := `SELECT ` + cautionColumns + ` FROM cautions WHERE booking_id = $1`
	return r.get(ctx, query, bookingID)
}

func (r *CautionRepository) get(ctx context.Context, query, arg string) (*domain.Caution, error) {
	var caution domain.Caution
	var heldAt, releasedAt, chargedAt sql.NullTime
	var chargedAmount sql.NullFloat64

	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&caution.ID,
		&caution.TenantID,
		&caution.BookingID,
		&caution.Amount,
		&caution.Status,
		&caution.PaymentMethod,
		&heldAt,
		&releasedAt,
		&chargedAt,
		&chargedAmount,
		&caution.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if heldAt.Valid {
		caution.HeldAt = heldAt.Time
	}
	if releasedAt.Valid {
		caution.ReleasedAt = releasedAt.Time
	}
	if chargedAt.Valid {
		caution.ChargedAt = chargedAt.Time
	}
	if chargedAmount.Valid {
		caution.ChargedAmount = chargedAmount.Float64
	}

	return &caution, nil
}

// Update updates an existing caution.
func (r *CautionRepository) Update(ctx context.Context, caution *domain.Caution) error {
	query := `
		UPDATE cautions
		SET status = $1, held_at = $2, released_at = $3, charged_at = $4, charged_amount = $5
		WHERE id = $6
	`

	var chargedAmount sql.NullFloat64
	if caution.ChargedAmount > 0 {
		chargedAmount = sql.NullFloat64{Float64: caution.ChargedAmount, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		caution.Status,
		nullTime(caution.HeldAt),
		nullTime(caution.ReleasedAt),
		nullTime(caution.ChargedAt),
		chargedAmount,
		caution.ID,
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
