package service

import (
	"context"
	"math"
	"time"

	"rental/internal/domain"
	"rental/internal/redis"
	"rental/internal/repository"
)

// PricingService computes booking quotes from the vehicle's daily rate, the
// tenant's extras price list and the platform fee.
type PricingService struct {
	vehicleRepo        repository.VehicleRepository
	bookingRepo        repository.BookingRepository
	extraRepo          repository.ExtraPriceRepository
	cacheStore         redis.CacheStoreInterface
	platformFeePercent float64 // e.g. 10 for 10%
}

// NewPricingService creates a new PricingService.
func NewPricingService(
	vehicleRepo repository.VehicleRepository,
	bookingRepo repository.BookingRepository,
	extraRepo repository.ExtraPriceRepository,
	cacheStore redis.CacheStoreInterface,
	platformFeePercent float64,
) *PricingService {
	return &PricingService{
		vehicleRepo:        vehicleRepo,
		bookingRepo:        bookingRepo,
		extraRepo:          extraRepo,
		cacheStore:         cacheStore,
		platformFeePercent: platformFeePercent,
	}
}

// ExtraRequest is a requested extra on a quote.
type ExtraRequest struct {
	Type     string
	Quantity int
}

// QuoteRequest contains the parameters for a pricing quote.
type QuoteRequest struct {
	TenantID    string
	VehicleID   string
	StartDate   time.Time
	EndDate     time.Time
	Extras      []ExtraRequest
	Marketplace bool // marketplace bookings carry the platform fee
}

// QuotedExtra is a priced extra line on a quote.
type QuotedExtra struct {
	Type      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// Quote is the full price breakdown for a booking.
type Quote struct {
	DailyPrice     float64
	TotalDays      int
	Subtotal       float64
	Extras         []QuotedExtra
	ExtrasTotal    float64
	PlatformFee    float64
	TenantEarnings float64
	TotalAmount    float64
	CautionAmount  float64
}

// TotalDays returns the billable number of days for a rental period:
// the whole-day difference rounded up, with a minimum of one day.
func TotalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// Quote computes the price breakdown for the requested rental.
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.Status == domain.VehicleStatusMaintenance {
		return nil, ErrVehicleUnavailable
	}

	overlapping, err := s.bookingRepo.FindOverlapping(ctx, req.VehicleID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, ErrVehicleUnavailable
	}

	totalDays := TotalDays(req.StartDate, req.EndDate)
	subtotal := vehicle.DailyPrice * float64(totalDays)

	quotedExtras, extrasTotal, err := s.priceExtras(ctx, vehicle.TenantID, req.Extras)
	if err != nil {
		return nil, err
	}

	var platformFee float64
	if req.Marketplace {
		platformFee = (subtotal + extrasTotal) * s.platformFeePercent / 100
	}

	totalAmount := subtotal + extrasTotal + platformFee

	return &Quote{
		DailyPrice:     vehicle.DailyPrice,
		TotalDays:      totalDays,
		Subtotal:       subtotal,
		Extras:         quotedExtras,
		ExtrasTotal:    extrasTotal,
		PlatformFee:    platformFee,
		TenantEarnings: totalAmount - platformFee,
		TotalAmount:    totalAmount,
		CautionAmount:  vehicle.CautionAmount,
	}, nil
}

// priceExtras resolves requested extras against the tenant price list.
func (s *PricingService) priceExtras(ctx context.Context, tenantID string, extras []ExtraRequest) ([]QuotedExtra, float64, error) {
	if len(extras) == 0 {
		return nil, 0, nil
	}

	prices, err := s.extraPrices(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}

	var quoted []QuotedExtra
	var total float64
	for _, extra := range extras {
		if extra.Quantity <= 0 {
			return nil, 0, ErrInvalidExtraQuantity
		}
		unitPrice, ok := prices[extra.Type]
		if !ok {
			return nil, 0, ErrUnknownExtraType
		}
		lineTotal := unitPrice * float64(extra.Quantity)
		quoted = append(quoted, QuotedExtra{
			Type:      extra.Type,
			Quantity:  extra.Quantity,
			UnitPrice: unitPrice,
			Total:     lineTotal,
		})
		total += lineTotal
	}

	return quoted, total, nil
}

// ListExtraPrices returns the tenant's extras price list.
func (s *PricingService) ListExtraPrices(ctx context.Context, actor domain.Actor) ([]*domain.ExtraPrice, error) {
	if actor.TenantID == "" {
		return nil, ErrInvalidTenantID
	}
	return s.extraRepo.ListByTenant(ctx, actor.TenantID)
}

// SetExtraPrice creates or replaces a price list entry and drops the cached
// list so the next quote sees the new price.
func (s *PricingService) SetExtraPrice(ctx context.Context, actor domain.Actor, extraType string, unitPrice float64) (*domain.ExtraPrice, error) {
	if actor.TenantID == "" {
		return nil, ErrInvalidTenantID
	}
	if extraType == "" {
		return nil, ErrUnknownExtraType
	}
	if unitPrice < 0 {
		return nil, ErrInvalidAmount
	}

	price := &domain.ExtraPrice{
		TenantID:  actor.TenantID,
		Type:      extraType,
		UnitPrice: unitPrice,
	}
	if err := s.extraRepo.Upsert(ctx, price); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateExtraPrices(ctx, actor.TenantID)
	}

	return price, nil
}

// extraPrices loads the tenant price list, going through the cache first.
func (s *PricingService) extraPrices(ctx context.Context, tenantID string) (map[string]float64, error) {
	if s.cacheStore != nil {
		if prices, err := s.cacheStore.GetExtraPrices(ctx, tenantID); err == nil && prices != nil {
			return prices, nil
		}
	}

	list, err := s.extraRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(list))
	for _, entry := range list {
		prices[entry.Type] = entry.UnitPrice
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetExtraPrices(ctx, tenantID, prices)
	}

	return prices, nil
}
