package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error)
	ReleaseVehicleLock(ctx context.Context, vehicleID string) error
}

// CacheStoreInterface defines the interface for entity caching.
type CacheStoreInterface interface {
	GetVehicle(ctx context.Context, vehicleID string) (*CachedVehicle, error)
	SetVehicle(ctx context.Context, vehicle *CachedVehicle) error
	InvalidateVehicle(ctx context.Context, vehicleID string) error
	GetExtraPrices(ctx context.Context, tenantID string) (map[string]float64, error)
	SetExtraPrices(ctx context.Context, tenantID string, prices map[string]float64) error
	InvalidateExtraPrices(ctx context.Context, tenantID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)
