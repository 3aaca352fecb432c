package repository

import (
	"context"

	"rental/internal/domain"
)

// ExtraPriceRepository defines the persistence operations for the
// tenant-configured extras price list.
type ExtraPriceRepository interface {
	// ListByTenant retrieves the price list for a tenant.
	ListByTenant(ctx context.Context, tenantID string) ([]*domain.ExtraPrice, error)

	// Upsert creates or replaces a price list entry.
	Upsert(ctx context.Context, price *domain.ExtraPrice) error
}
