package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental/internal/domain"
	"rental/internal/repository"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// 3. BOOKING LIFECYCLE
// ──────────────────────────────────────────────

// newBookingService wires a BookingService for the non-transactional paths.
// The *sql.DB stays nil: transactional flows are covered separately with a
// database mock.
func newBookingService(bookingRepo *MockBookingRepository, cautionRepo *MockCautionRepository, vehicleRepo *MockVehicleRepository, pickupGrace time.Duration) *service.BookingService {
	damageRepo := NewMockDamageRepository()
	cautionService := service.NewCautionService(cautionRepo, damageRepo, nil)
	return service.NewBookingService(nil, bookingRepo, cautionRepo, vehicleRepo, nil, nil, cautionService, nil, nil, nil, pickupGrace)
}

func seedBooking(bookingRepo *MockBookingRepository, status domain.BookingStatus, start time.Time) *domain.Booking {
	booking := &domain.Booking{
		ID:        "booking-1",
		TenantID:  "tenant-1",
		VehicleID: "vehicle-1",
		Status:    status,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 3),
		CreatedAt: start.AddDate(0, 0, -1),
	}
	bookingRepo.AddBooking(booking)
	return booking
}

func TestCancelBooking_FromPendingAndConfirmed(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusConfirmed} {
		bookingRepo := NewMockBookingRepository()
		seedBooking(bookingRepo, status, time.Now().Add(24*time.Hour))
		svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), time.Hour)

		actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}
		booking, err := svc.CancelBooking(context.Background(), actor, "booking-1", "customer request")
		if err != nil {
			t.Fatalf("CancelBooking() from %s: error = %v", status, err)
		}
		if booking.Status != domain.BookingStatusCancelled {
			t.Errorf("status = %s, want CANCELLED", booking.Status)
		}
		if booking.CancelReason != "customer request" {
			t.Errorf("CancelReason = %q", booking.CancelReason)
		}
		if booking.CancelledAt.IsZero() {
			t.Error("CancelledAt not set")
		}
	}
}

func TestCancelBooking_CheckedOutRejected(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	seedBooking(bookingRepo, domain.BookingStatusCheckedOut, time.Now())
	svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), time.Hour)

	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}
	_, err := svc.CancelBooking(context.Background(), actor, "booking-1", "")
	if !errors.Is(err, service.ErrBookingNotCancellable) {
		t.Errorf("CancelBooking() error = %v, want ErrBookingNotCancellable", err)
	}
}

func TestCancelBooking_TerminalStatusRejected(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.BookingStatus{
		domain.BookingStatusCheckedIn,
		domain.BookingStatusCancelled,
		domain.BookingStatusNoShow,
	} {
		bookingRepo := NewMockBookingRepository()
		seedBooking(bookingRepo, status, time.Now())
		svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), time.Hour)

		actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}
		if _, err := svc.CancelBooking(context.Background(), actor, "booking-1", ""); !errors.Is(err, service.ErrBookingNotCancellable) {
			t.Errorf("CancelBooking() from %s: error = %v, want ErrBookingNotCancellable", status, err)
		}
	}
}

func TestCancelBooking_CrossTenantHidden(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	seedBooking(bookingRepo, domain.BookingStatusConfirmed, time.Now().Add(24*time.Hour))
	svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), time.Hour)

	// A staff member of another tenant sees not-found, not forbidden.
	actor := domain.Actor{TenantID: "tenant-2", Role: domain.RoleStaff}
	_, err := svc.CancelBooking(context.Background(), actor, "booking-1", "")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("CancelBooking() error = %v, want ErrNotFound", err)
	}
}

func TestMarkNoShow_BeforeDeadlineRejected(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	seedBooking(bookingRepo, domain.BookingStatusConfirmed, time.Now().Add(-30*time.Minute))
	svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), 3*time.Hour)

	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}
	_, err := svc.MarkNoShow(context.Background(), actor, "booking-1")
	if !errors.Is(err, service.ErrPickupDeadlineNotPassed) {
		t.Errorf("MarkNoShow() error = %v, want ErrPickupDeadlineNotPassed", err)
	}
}

func TestMarkNoShow_AfterDeadline(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	seedBooking(bookingRepo, domain.BookingStatusConfirmed, time.Now().Add(-4*time.Hour))
	svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), 3*time.Hour)

	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}
	booking, err := svc.MarkNoShow(context.Background(), actor, "booking-1")
	if err != nil {
		t.Fatalf("MarkNoShow() error = %v", err)
	}
	if booking.Status != domain.BookingStatusNoShow {
		t.Errorf("status = %s, want NO_SHOW", booking.Status)
	}
}

func TestMarkNoShow_PendingBookingRejected(t *testing.T) {
	t.Parallel()

	bookingRepo := NewMockBookingRepository()
	seedBooking(bookingRepo, domain.BookingStatusPending, time.Now().Add(-4*time.Hour))
	svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), 3*time.Hour)

	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}
	_, err := svc.MarkNoShow(context.Background(), actor, "booking-1")
	if !errors.Is(err, service.ErrBookingNotConfirmed) {
		t.Errorf("MarkNoShow() error = %v, want ErrBookingNotConfirmed", err)
	}
}

func TestSweepNoShows_FlipsOnlyOverdueConfirmed(t *testing.T) {
	t.Parallel()

	now := time.Now()
	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(&domain.Booking{
		ID:        "overdue",
		TenantID:  "tenant-1",
		Status:    domain.BookingStatusConfirmed,
		StartDate: now.Add(-5 * time.Hour),
	})
	bookingRepo.AddBooking(&domain.Booking{
		ID:        "upcoming",
		TenantID:  "tenant-1",
		Status:    domain.BookingStatusConfirmed,
		StartDate: now.Add(2 * time.Hour),
	})
	svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), 3*time.Hour)

	swept, err := svc.SweepNoShows(context.Background(), now)
	if err != nil {
		t.Fatalf("SweepNoShows() error = %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}

	overdue, _ := bookingRepo.GetByID(context.Background(), "overdue")
	if overdue.Status != domain.BookingStatusNoShow {
		t.Errorf("overdue status = %s, want NO_SHOW", overdue.Status)
	}
	upcoming, _ := bookingRepo.GetByID(context.Background(), "upcoming")
	if upcoming.Status != domain.BookingStatusConfirmed {
		t.Errorf("upcoming status = %s, want CONFIRMED", upcoming.Status)
	}
}

func TestSweepExpiredPending_CancelsStaleUnpaid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	bookingRepo := NewMockBookingRepository()
	bookingRepo.AddBooking(&domain.Booking{
		ID:        "stale",
		TenantID:  "tenant-1",
		Status:    domain.BookingStatusPending,
		CreatedAt: now.Add(-time.Hour),
	})
	bookingRepo.AddBooking(&domain.Booking{
		ID:        "fresh",
		TenantID:  "tenant-1",
		Status:    domain.BookingStatusPending,
		CreatedAt: now.Add(-5 * time.Minute),
	})
	svc := newBookingService(bookingRepo, NewMockCautionRepository(), NewMockVehicleRepository(), 3*time.Hour)

	swept, err := svc.SweepExpiredPending(context.Background(), now, 30*time.Minute)
	if err != nil {
		t.Fatalf("SweepExpiredPending() error = %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}

	stale, _ := bookingRepo.GetByID(context.Background(), "stale")
	if stale.Status != domain.BookingStatusCancelled {
		t.Errorf("stale status = %s, want CANCELLED", stale.Status)
	}
	if stale.CancelReason != "payment timeout" {
		t.Errorf("CancelReason = %q", stale.CancelReason)
	}
	fresh, _ := bookingRepo.GetByID(context.Background(), "fresh")
	if fresh.Status != domain.BookingStatusPending {
		t.Errorf("fresh status = %s, want PENDING", fresh.Status)
	}
}

func TestBookingStatus_TransitionTable(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from, to domain.BookingStatus
	}{
		{domain.BookingStatusPending, domain.BookingStatusConfirmed},
		{domain.BookingStatusPending, domain.BookingStatusCancelled},
		{domain.BookingStatusConfirmed, domain.BookingStatusCheckedOut},
		{domain.BookingStatusConfirmed, domain.BookingStatusCancelled},
		{domain.BookingStatusConfirmed, domain.BookingStatusNoShow},
		{domain.BookingStatusCheckedOut, domain.BookingStatusCheckedIn},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to domain.BookingStatus
	}{
		{domain.BookingStatusPending, domain.BookingStatusCheckedOut},
		{domain.BookingStatusCheckedOut, domain.BookingStatusCancelled},
		{domain.BookingStatusCheckedIn, domain.BookingStatusCheckedOut},
		{domain.BookingStatusCancelled, domain.BookingStatusConfirmed},
		{domain.BookingStatusNoShow, domain.BookingStatusConfirmed},
	}
	for _, tc := range denied {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}
