package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental/internal/domain"
	"rental/internal/repository"
)

// MaintenanceService handles the maintenance job lifecycle. Maintenance runs
// independently of bookings but flips the vehicle status while in progress.
type MaintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(maintenanceRepo repository.MaintenanceRepository, vehicleRepo repository.VehicleRepository) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
	}
}

// ScheduleMaintenanceRequest contains the parameters for scheduling a job.
type ScheduleMaintenanceRequest struct {
	VehicleID    string
	Type         string
	ScheduledFor time.Time
	Cost         float64
	Notes        string
}

// Schedule creates a maintenance job in SCHEDULED state.
func (s *MaintenanceService) Schedule(ctx context.Context, actor domain.Actor, req ScheduleMaintenanceRequest) (*domain.Maintenance, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if actor.TenantID != "" && vehicle.TenantID != actor.TenantID {
		return nil, repository.ErrNotFound
	}

	m := &domain.Maintenance{
		ID:           uuid.New().String(),
		TenantID:     vehicle.TenantID,
		VehicleID:    vehicle.ID,
		Type:         req.Type,
		Status:       domain.MaintenanceStatusScheduled,
		ScheduledFor: req.ScheduledFor,
		Cost:         req.Cost,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
	}

	if err := s.maintenanceRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Start moves a job SCHEDULED -> IN_PROGRESS and takes the vehicle out of
// the rentable fleet.
func (s *MaintenanceService) Start(ctx context.Context, actor domain.Actor, maintenanceID string) (*domain.Maintenance, error) {
	m, err := s.getForTenant(ctx, actor, maintenanceID)
	if err != nil {
		return nil, err
	}

	if m.Status != domain.MaintenanceStatusScheduled {
		return nil, ErrMaintenanceNotScheduled
	}

	if err := s.vehicleRepo.UpdateStatusFrom(ctx, m.VehicleID, domain.VehicleStatusAvailable, domain.VehicleStatusMaintenance); err != nil {
		if err == repository.ErrStatusConflict {
			return nil, ErrVehicleUnavailable
		}
		return nil, err
	}

	m.Status = domain.MaintenanceStatusInProgress
	m.StartedAt = time.Now()

	if err := s.maintenanceRepo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Complete moves a job IN_PROGRESS -> COMPLETED and returns the vehicle to
// the rentable fleet.
func (s *MaintenanceService) Complete(ctx context.Context, actor domain.Actor, maintenanceID string, cost float64) (*domain.Maintenance, error) {
	m, err := s.getForTenant(ctx, actor, maintenanceID)
	if err != nil {
		return nil, err
	}

	if m.Status != domain.MaintenanceStatusInProgress {
		return nil, ErrMaintenanceNotInProgress
	}

	if err := s.vehicleRepo.UpdateStatusFrom(ctx, m.VehicleID, domain.VehicleStatusMaintenance, domain.VehicleStatusAvailable); err != nil {
		return nil, err
	}

	m.Status = domain.MaintenanceStatusCompleted
	m.CompletedAt = time.Now()
	if cost > 0 {
		m.Cost = cost
	}

	if err := s.maintenanceRepo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Cancel cancels a SCHEDULED job.
func (s *MaintenanceService) Cancel(ctx context.Context, actor domain.Actor, maintenanceID string) (*domain.Maintenance, error) {
	m, err := s.getForTenant(ctx, actor, maintenanceID)
	if err != nil {
		return nil, err
	}

	if m.Status != domain.MaintenanceStatusScheduled {
		return nil, ErrMaintenanceNotScheduled
	}

	m.Status = domain.MaintenanceStatusCancelled
	if err := s.maintenanceRepo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// ListByTenant retrieves all maintenance jobs of the actor's tenant.
func (s *MaintenanceService) ListByTenant(ctx context.Context, actor domain.Actor) ([]*domain.Maintenance, error) {
	if actor.TenantID == "" {
		return nil, ErrInvalidTenantID
	}
	return s.maintenanceRepo.ListByTenant(ctx, actor.TenantID)
}

func (s *MaintenanceService) getForTenant(ctx context.Context, actor domain.Actor, maintenanceID string) (*domain.Maintenance, error) {
	if maintenanceID == "" {
		return nil, ErrInvalidMaintenanceID
	}

	m, err := s.maintenanceRepo.GetByID(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}

	if actor.TenantID != "" && m.TenantID != actor.TenantID {
		return nil, repository.ErrNotFound
	}

	return m, nil
}
