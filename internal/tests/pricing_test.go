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
// 1. PRICING CALCULATOR
// ──────────────────────────────────────────────

func TestTotalDays_RoundsPartialDaysUp(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exact four days", start.AddDate(0, 0, 4), 4},
		{"four days and an hour rounds to five", start.AddDate(0, 0, 4).Add(time.Hour), 5},
		{"two hours counts as one day", start.Add(2 * time.Hour), 1},
		{"one day exactly", start.AddDate(0, 0, 1), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := service.TotalDays(start, tc.end); got != tc.want {
				t.Errorf("TotalDays() = %d, want %d", got, tc.want)
			}
		})
	}
}

func newPricingFixture() (*service.PricingService, *MockVehicleRepository, *MockBookingRepository, *MockExtraPriceRepository) {
	vehicleRepo := NewMockVehicleRepository()
	bookingRepo := NewMockBookingRepository()
	extraRepo := NewMockExtraPriceRepository()

	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:            "vehicle-1",
		TenantID:      "tenant-1",
		DailyPrice:    50,
		CautionAmount: 300,
		Status:        domain.VehicleStatusAvailable,
	})

	svc := service.NewPricingService(vehicleRepo, bookingRepo, extraRepo, nil, 10)
	return svc, vehicleRepo, bookingRepo, extraRepo
}

func TestQuote_MarketplaceBreakdown(t *testing.T) {
	t.Parallel()

	svc, _, _, extraRepo := newPricingFixture()
	extraRepo.SetPrice("tenant-1", "CHILD_SEAT", 5)

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	quote, err := svc.Quote(context.Background(), service.QuoteRequest{
		VehicleID:   "vehicle-1",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 4),
		Extras:      []service.ExtraRequest{{Type: "CHILD_SEAT", Quantity: 2}},
		Marketplace: true,
	})
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}

	if quote.TotalDays != 4 {
		t.Errorf("TotalDays = %d, want 4", quote.TotalDays)
	}
	if quote.Subtotal != 200 {
		t.Errorf("Subtotal = %v, want 200", quote.Subtotal)
	}
	if quote.ExtrasTotal != 10 {
		t.Errorf("ExtrasTotal = %v, want 10", quote.ExtrasTotal)
	}
	// 10% of (200 + 10)
	if quote.PlatformFee != 21 {
		t.Errorf("PlatformFee = %v, want 21", quote.PlatformFee)
	}
	if quote.TotalAmount != 231 {
		t.Errorf("TotalAmount = %v, want 231", quote.TotalAmount)
	}
	if quote.TenantEarnings != 210 {
		t.Errorf("TenantEarnings = %v, want 210", quote.TenantEarnings)
	}
	if quote.CautionAmount != 300 {
		t.Errorf("CautionAmount = %v, want 300", quote.CautionAmount)
	}
}

func TestQuote_DirectBookingHasNoPlatformFee(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPricingFixture()

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	quote, err := svc.Quote(context.Background(), service.QuoteRequest{
		VehicleID:   "vehicle-1",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 4),
		Marketplace: false,
	})
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}

	if quote.PlatformFee != 0 {
		t.Errorf("PlatformFee = %v, want 0", quote.PlatformFee)
	}
	if quote.TotalAmount != 200 {
		t.Errorf("TotalAmount = %v, want 200", quote.TotalAmount)
	}
	if quote.TenantEarnings != quote.TotalAmount {
		t.Errorf("TenantEarnings = %v, want %v", quote.TenantEarnings, quote.TotalAmount)
	}
}

func TestQuote_UnknownExtraTypeRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPricingFixture()

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Quote(context.Background(), service.QuoteRequest{
		VehicleID: "vehicle-1",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Extras:    []service.ExtraRequest{{Type: "JETPACK", Quantity: 1}},
	})
	if !errors.Is(err, service.ErrUnknownExtraType) {
		t.Errorf("Quote() error = %v, want ErrUnknownExtraType", err)
	}
}

func TestQuote_EndNotAfterStartRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPricingFixture()

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Quote(context.Background(), service.QuoteRequest{
		VehicleID: "vehicle-1",
		StartDate: start,
		EndDate:   start,
	})
	if !errors.Is(err, service.ErrInvalidDateRange) {
		t.Errorf("Quote() error = %v, want ErrInvalidDateRange", err)
	}
}

func TestQuote_VehicleInMaintenanceUnavailable(t *testing.T) {
	t.Parallel()

	svc, vehicleRepo, _, _ := newPricingFixture()
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:         "vehicle-2",
		TenantID:   "tenant-1",
		DailyPrice: 40,
		Status:     domain.VehicleStatusMaintenance,
	})

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Quote(context.Background(), service.QuoteRequest{
		VehicleID: "vehicle-2",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
	})
	if !errors.Is(err, service.ErrVehicleUnavailable) {
		t.Errorf("Quote() error = %v, want ErrVehicleUnavailable", err)
	}
}

func TestQuote_OverlappingBookingUnavailable(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo, _ := newPricingFixture()

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		VehicleID: "vehicle-1",
		Status:    domain.BookingStatusConfirmed,
		StartDate: start.AddDate(0, 0, 1),
		EndDate:   start.AddDate(0, 0, 3),
	})

	_, err := svc.Quote(context.Background(), service.QuoteRequest{
		VehicleID: "vehicle-1",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4),
	})
	if !errors.Is(err, service.ErrVehicleUnavailable) {
		t.Errorf("Quote() error = %v, want ErrVehicleUnavailable", err)
	}
}

func TestQuote_CancelledBookingDoesNotBlock(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo, _ := newPricingFixture()

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		VehicleID: "vehicle-1",
		Status:    domain.BookingStatusCancelled,
		StartDate: start.AddDate(0, 0, 1),
		EndDate:   start.AddDate(0, 0, 3),
	})

	_, err := svc.Quote(context.Background(), service.QuoteRequest{
		VehicleID: "vehicle-1",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 4),
	})
	if err != nil {
		t.Errorf("Quote() error = %v, want nil", err)
	}
}

func TestSetExtraPrice_InvalidatesCachedList(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	bookingRepo := NewMockBookingRepository()
	extraRepo := NewMockExtraPriceRepository()
	cacheStore := NewMockCacheStore()

	svc := service.NewPricingService(vehicleRepo, bookingRepo, extraRepo, cacheStore, 10)
	actor := domain.Actor{TenantID: "tenant-1", Role: domain.RoleStaff}

	if _, err := svc.SetExtraPrice(context.Background(), actor, "GPS", 7.5); err != nil {
		t.Fatalf("SetExtraPrice() error = %v", err)
	}

	if cacheStore.InvalidateExtraPricesCallCount != 1 {
		t.Errorf("InvalidateExtraPrices calls = %d, want 1", cacheStore.InvalidateExtraPricesCallCount)
	}

	prices, err := svc.ListExtraPrices(context.Background(), actor)
	if err != nil {
		t.Fatalf("ListExtraPrices() error = %v", err)
	}
	if len(prices) != 1 || prices[0].UnitPrice != 7.5 {
		t.Errorf("ListExtraPrices() = %+v, want one GPS entry at 7.5", prices)
	}
}
