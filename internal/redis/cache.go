package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	VehicleCacheTTL    = 30 * time.Second // Vehicle status can change frequently
	ExtraPriceCacheTTL = 5 * time.Minute  // Tenant price lists change rarely
)

// Key prefixes
const (
	vehicleCachePrefix    = "cache:vehicle:"
	extraPriceCachePrefix = "cache:extras:"
)

// CachedVehicle represents a cached vehicle entity.
type CachedVehicle struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"tenant_id"`
	Plate         string  `json:"plate"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	DailyPrice    float64 `json:"daily_price"`
	CautionAmount float64 `json:"caution_amount"`
	Status        string  `json:"status"`
}

// GetVehicle retrieves a vehicle from cache.
func (s *CacheStore) GetVehicle(ctx context.Context, vehicleID string) (*CachedVehicle, error) {
	key := vehicleCachePrefix + vehicleID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var vehicle CachedVehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// SetVehicle stores a vehicle in cache.
func (s *CacheStore) SetVehicle(ctx context.Context, vehicle *CachedVehicle) error {
	key := vehicleCachePrefix + vehicle.ID
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, VehicleCacheTTL).Err()
}

// InvalidateVehicle removes a vehicle from cache.
func (s *CacheStore) InvalidateVehicle(ctx context.Context, vehicleID string) error {
	key := vehicleCachePrefix + vehicleID
	return s.client.Del(ctx, key).Err()
}

// GetExtraPrices retrieves a tenant's extras price list from cache.
// Returns a nil map on cache miss.
func (s *CacheStore) GetExtraPrices(ctx context.Context, tenantID string) (map[string]float64, error) {
	key := extraPriceCachePrefix + tenantID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var prices map[string]float64
	if err := json.Unmarshal(data, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// SetExtraPrices stores a tenant's extras price list in cache.
func (s *CacheStore) SetExtraPrices(ctx context.Context, tenantID string, prices map[string]float64) error {
	key := extraPriceCachePrefix + tenantID
	data, err := json.Marshal(prices)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ExtraPriceCacheTTL).Err()
}

// InvalidateExtraPrices removes a tenant's extras price list from cache.
func (s *CacheStore) InvalidateExtraPrices(ctx context.Context, tenantID string) error {
	key := extraPriceCachePrefix + tenantID
	return s.client.Del(ctx, key).Err()
}
