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
// 8. VEHICLE SEARCH
// ──────────────────────────────────────────────

func TestSearchAvailable_FiltersBookedAndMaintenance(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	bookingRepo := NewMockBookingRepository()

	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "free", TenantID: "tenant-1", Status: domain.VehicleStatusAvailable})
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "booked", TenantID: "tenant-1", Status: domain.VehicleStatusAvailable})
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "in-shop", TenantID: "tenant-1", Status: domain.VehicleStatusMaintenance})
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "other-tenant", TenantID: "tenant-2", Status: domain.VehicleStatusAvailable})

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		VehicleID: "booked",
		Status:    domain.BookingStatusConfirmed,
		StartDate: start.AddDate(0, 0, 1),
		EndDate:   start.AddDate(0, 0, 2),
	})

	svc := service.NewVehicleService(vehicleRepo, bookingRepo, nil)

	available, err := svc.SearchAvailable(context.Background(), "tenant-1", start, end)
	if err != nil {
		t.Fatalf("SearchAvailable() error = %v", err)
	}

	if len(available) != 1 || available[0].ID != "free" {
		ids := make([]string, 0, len(available))
		for _, v := range available {
			ids = append(ids, v.ID)
		}
		t.Errorf("available = %v, want [free]", ids)
	}
}

func TestSearchAvailable_BackToBackBookingsDoNotOverlap(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	bookingRepo := NewMockBookingRepository()

	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "vehicle-1", TenantID: "tenant-1", Status: domain.VehicleStatusAvailable})

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	// Existing booking ends exactly when the searched range starts.
	bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		VehicleID: "vehicle-1",
		Status:    domain.BookingStatusConfirmed,
		StartDate: start.AddDate(0, 0, -3),
		EndDate:   start,
	})

	svc := service.NewVehicleService(vehicleRepo, bookingRepo, nil)

	available, err := svc.SearchAvailable(context.Background(), "tenant-1", start, start.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("SearchAvailable() error = %v", err)
	}
	if len(available) != 1 {
		t.Errorf("available = %d vehicles, want 1", len(available))
	}
}

func TestRegisterVehicle_RequiresPositiveDailyPrice(t *testing.T) {
	t.Parallel()

	svc := service.NewVehicleService(NewMockVehicleRepository(), NewMockBookingRepository(), nil)
	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}

	_, err := svc.Register(context.Background(), actor, service.RegisterVehicleRequest{Plate: "AB-123", DailyPrice: 0})
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Errorf("Register() error = %v, want ErrInvalidAmount", err)
	}
}
