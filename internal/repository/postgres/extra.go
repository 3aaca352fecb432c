package postgres

import (
	"context"
	"database/sql"

	"rental/internal/domain"
)

// ExtraPriceRepository is a PostgreSQL implementation of repository.ExtraPriceRepository.
type ExtraPriceRepository struct {
	q Querier
}

// NewExtraPriceRepository creates a new PostgreSQL extras price list repository.
func NewExtraPriceRepository(db *sql.DB) *ExtraPriceRepository {
	return &ExtraPriceRepository{q: db}
}

// ListByTenant retrieves the price list for a tenant.
func (r *ExtraPriceRepository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.ExtraPrice, error) {
	query := `SELECT tenant_id, type, unit_price FROM extra_prices WHERE tenant_id = $1 ORDER BY type`

	rows, err := r.q.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*domain.ExtraPrice
	for rows.Next() {
		var price domain.ExtraPrice
		if err := rows.Scan(&price.TenantID, &price.Type, &price.UnitPrice); err != nil {
			return nil, err
		}
		prices = append(prices, &price)
	}
	return prices, rows.Err()
}

// Upsert creates or replaces a price list entry.
func (r *ExtraPriceRepository) Upsert(ctx context.Context, price *domain.ExtraPrice) error {
	query := `
		INSERT INTO extra_prices (tenant_id, type, unit_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, type) DO UPDATE SET unit_price = EXCLUDED.unit_price
	`

	_, err := r.q.ExecContext(ctx, query, price.TenantID, price.Type, price.UnitPrice)
	return err
}
