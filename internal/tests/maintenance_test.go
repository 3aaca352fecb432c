package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental/internal/domain"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// 7. MAINTENANCE LIFECYCLE
// ──────────────────────────────────────────────

func newMaintenanceFixture() (*service.MaintenanceService, *MockMaintenanceRepository, *MockVehicleRepository) {
	maintenanceRepo := NewMockMaintenanceRepository()
	vehicleRepo := NewMockVehicleRepository()

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:       "vehicle-1",
		TenantID: "tenant-1",
		Status:   domain.VehicleStatusAvailable,
	})

	return service.NewMaintenanceService(maintenanceRepo, vehicleRepo), maintenanceRepo, vehicleRepo
}

func TestMaintenance_FullLifecycle(t *testing.T) {
	t.Parallel()

	svc, _, vehicleRepo := newMaintenanceFixture()
	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}
	ctx := context.Background()

	job, err := svc.Schedule(ctx, actor, service.ScheduleMaintenanceRequest{
		VehicleID:    "vehicle-1",
		Type:         "oil change",
		ScheduledFor: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if job.Status != domain.MaintenanceStatusScheduled {
		t.Errorf("status = %s, want SCHEDULED", job.Status)
	}

	started, err := svc.Start(ctx, actor, job.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if started.Status != domain.MaintenanceStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", started.Status)
	}
	vehicle, _ := vehicleRepo.GetByID(ctx, "vehicle-1")
	if vehicle.Status != domain.VehicleStatusMaintenance {
		t.Errorf("vehicle status = %s, want MAINTENANCE", vehicle.Status)
	}

	completed, err := svc.Complete(ctx, actor, job.ID, 89.90)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completed.Status != domain.MaintenanceStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", completed.Status)
	}
	if completed.Cost != 89.90 {
		t.Errorf("Cost = %v, want 89.90", completed.Cost)
	}
	vehicle, _ = vehicleRepo.GetByID(ctx, "vehicle-1")
	if vehicle.Status != domain.VehicleStatusAvailable {
		t.Errorf("vehicle status = %s, want AVAILABLE", vehicle.Status)
	}
}

func TestMaintenanceStart_RentedVehicleRejected(t *testing.T) {
	t.Parallel()

	svc, maintenanceRepo, vehicleRepo := newMaintenanceFixture()
	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:       "vehicle-2",
		TenantID: "tenant-1",
		Status:   domain.VehicleStatusRented,
	})
	maintenanceRepo.AddJob(&domain.Maintenance{
		ID:        "job-1",
		TenantID:  "tenant-1",
		VehicleID: "vehicle-2",
		Status:    domain.MaintenanceStatusScheduled,
	})

	if _, err := svc.Start(context.Background(), actor, "job-1"); !errors.Is(err, service.ErrVehicleUnavailable) {
		t.Errorf("Start() error = %v, want ErrVehicleUnavailable", err)
	}
}

func TestMaintenanceComplete_NotInProgressRejected(t *testing.T) {
	t.Parallel()

	svc, maintenanceRepo, _ := newMaintenanceFixture()
	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}

	maintenanceRepo.AddJob(&domain.Maintenance{
		ID:        "job-1",
		TenantID:  "tenant-1",
		VehicleID: "vehicle-1",
		Status:    domain.MaintenanceStatusScheduled,
	})

	if _, err := svc.Complete(context.Background(), actor, "job-1", 0); !errors.Is(err, service.ErrMaintenanceNotInProgress) {
		t.Errorf("Complete() error = %v, want ErrMaintenanceNotInProgress", err)
	}
}

func TestMaintenanceCancel_OnlyScheduled(t *testing.T) {
	t.Parallel()

	svc, maintenanceRepo, _ := newMaintenanceFixture()
	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}

	maintenanceRepo.AddJob(&domain.Maintenance{
		ID:        "job-1",
		TenantID:  "tenant-1",
		VehicleID: "vehicle-1",
		Status:    domain.MaintenanceStatusInProgress,
	})

	if _, err := svc.Cancel(context.Background(), actor, "job-1"); !errors.Is(err, service.ErrMaintenanceNotScheduled) {
		t.Errorf("Cancel() error = %v, want ErrMaintenanceNotScheduled", err)
	}
}
