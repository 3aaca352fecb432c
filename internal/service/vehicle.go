package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental/internal/domain"
	"rental/internal/redis"
	"rental/internal/repository"
)

// VehicleService handles fleet operations and availability search.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	bookingRepo repository.BookingRepository
	cacheStore  redis.CacheStoreInterface
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	bookingRepo repository.BookingRepository,
	cacheStore redis.CacheStoreInterface,
) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		cacheStore:  cacheStore,
	}
}

// RegisterVehicleRequest contains the parameters for registering a vehicle.
type RegisterVehicleRequest struct {
	Plate         string
	Make          string
	Model         string
	Year          int
	DailyPrice    float64
	CautionAmount float64
}

// Register adds a vehicle to the actor's fleet.
func (s *VehicleService) Register(ctx context.Context, actor domain.Actor, req RegisterVehicleRequest) (*domain.Vehicle, error) {
	if actor.TenantID == "" {
		return nil, ErrInvalidTenantID
	}
	if req.DailyPrice <= 0 {
		return nil, ErrInvalidAmount
	}

	vehicle := &domain.Vehicle{
		ID:            uuid.New().String(),
		TenantID:      actor.TenantID,
		Plate:         req.Plate,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		DailyPrice:    req.DailyPrice,
		CautionAmount: req.CautionAmount,
		Status:        domain.VehicleStatusAvailable,
		CreatedAt:     time.Now(),
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID, going through the cache first. The
// short cache TTL bounds how stale a status read can be.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetVehicle(ctx, vehicleID); err == nil && cached != nil {
			return &domain.Vehicle{
				ID:            cached.ID,
				TenantID:      cached.TenantID,
				Plate:         cached.Plate,
				Make:          cached.Make,
				Model:         cached.Model,
				Year:          cached.Year,
				DailyPrice:    cached.DailyPrice,
				CautionAmount: cached.CautionAmount,
				Status:        domain.VehicleStatus(cached.Status),
			}, nil
		}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetVehicle(ctx, &redis.CachedVehicle{
			ID:            vehicle.ID,
			TenantID:      vehicle.TenantID,
			Plate:         vehicle.Plate,
			Make:          vehicle.Make,
			Model:         vehicle.Model,
			Year:          vehicle.Year,
			DailyPrice:    vehicle.DailyPrice,
			CautionAmount: vehicle.CautionAmount,
			Status:        string(vehicle.Status),
		})
	}

	return vehicle, nil
}

// ListByTenant retrieves all vehicles in a tenant's fleet.
func (s *VehicleService) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Vehicle, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenantID
	}
	return s.vehicleRepo.ListByTenant(ctx, tenantID)
}

// SearchAvailable returns the tenant vehicles free for the requested range:
// not in maintenance and with no active booking overlapping it.
func (s *VehicleService) SearchAvailable(ctx context.Context, tenantID string, start, end time.Time) ([]*domain.Vehicle, error) {
	if tenantID == "" {
		return nil, ErrInvalidTenantID
	}
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	vehicles, err := s.vehicleRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var available []*domain.Vehicle
	for _, vehicle := range vehicles {
		if vehicle.Status == domain.VehicleStatusMaintenance {
			continue
		}
		overlapping, err := s.bookingRepo.FindOverlapping(ctx, vehicle.ID, start, end)
		if err != nil {
			return nil, err
		}
		if len(overlapping) == 0 {
			available = append(available, vehicle)
		}
	}

	return available, nil
}
