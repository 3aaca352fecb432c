package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"rental/internal/domain"
	"rental/internal/redis"
	"rental/internal/repository"
	"rental/internal/repository/postgres"
)

const vehicleLockTTL = 10 * time.Second

// BookingService handles the booking lifecycle.
type BookingService struct {
	db                  *sql.DB
	bookingRepo         repository.BookingRepository
	cautionRepo         repository.CautionRepository
	vehicleRepo         repository.VehicleRepository
	customerRepo        repository.CustomerRepository
	pricingService      *PricingService
	cautionService      *CautionService
	gateway             *PaymentGateway
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
	pickupGrace         time.Duration
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	db *sql.DB,
	bookingRepo repository.BookingRepository,
	cautionRepo repository.CautionRepository,
	vehicleRepo repository.VehicleRepository,
	customerRepo repository.CustomerRepository,
	pricingService *PricingService,
	cautionService *CautionService,
	gateway *PaymentGateway,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
	pickupGrace time.Duration,
) *BookingService {
	return &BookingService{
		db:                  db,
		bookingRepo:         bookingRepo,
		cautionRepo:         cautionRepo,
		vehicleRepo:         vehicleRepo,
		customerRepo:        customerRepo,
		pricingService:      pricingService,
		cautionService:      cautionService,
		gateway:             gateway,
		lockStore:           lockStore,
		notificationService: notificationService,
		pickupGrace:         pickupGrace,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
// CustomerEmail lets counter staff book for a returning customer without
// looking up the ID first; it is ignored when the caller already carries a
// customer ID.
type CreateBookingRequest struct {
	VehicleID       string
	CustomerEmail   string
	StartDate       time.Time
	EndDate         time.Time
	PickupBranchID  string
	DropoffBranchID string
	Extras          []ExtraRequest
	Notes           string
}

// CreateBookingResponse contains the created booking and, for marketplace
// bookings, the gateway redirect URL.
type CreateBookingResponse struct {
	Booking    *domain.Booking
	Caution    *domain.Caution
	PaymentURL string
}

// CreateMarketplaceBooking creates a PENDING booking from the public
// marketplace flow, with a PENDING caution and a payment URL for the gateway
// redirect. The booking is confirmed later by the payment callback.
func (s *BookingService) CreateMarketplaceBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*CreateBookingResponse, error) {
	if actor.ActorID == "" {
		return nil, ErrInvalidCustomerID
	}

	return s.create(ctx, createParams{
		actor:         actor,
		req:           req,
		marketplace:   true,
		initialStatus: domain.BookingStatusPending,
		paymentMethod: domain.PaymentMethodPaysera,
	})
}

// CreateDirectBooking creates a CONFIRMED booking on behalf of tenant staff.
// Direct bookings carry no platform fee and hold the caution in cash.
func (s *BookingService) CreateDirectBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*CreateBookingResponse, error) {
	if actor.TenantID == "" {
		return nil, ErrInvalidTenantID
	}

	return s.create(ctx, createParams{
		actor:         actor,
		req:           req,
		marketplace:   false,
		initialStatus: domain.BookingStatusConfirmed,
		paymentMethod: domain.PaymentMethodCash,
	})
}

type createParams struct {
	actor         domain.Actor
	req           CreateBookingRequest
	marketplace   bool
	initialStatus domain.BookingStatus
	paymentMethod domain.PaymentMethod
}

func (s *BookingService) create(ctx context.Context, p createParams) (*CreateBookingResponse, error) {
	customerID := p.actor.ActorID
	if s.customerRepo != nil {
		switch {
		case customerID != "":
			if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
				if err == repository.ErrNotFound {
					return nil, ErrInvalidCustomerID
				}
				return nil, err
			}
		case p.req.CustomerEmail != "":
			customer, err := s.customerRepo.GetByEmail(ctx, p.req.CustomerEmail)
			if err != nil {
				if err == repository.ErrNotFound {
					return nil, ErrInvalidCustomerID
				}
				return nil, err
			}
			customerID = customer.ID
		}
	}

	quote, err := s.pricingService.Quote(ctx, QuoteRequest{
		TenantID:    p.actor.TenantID,
		VehicleID:   p.req.VehicleID,
		StartDate:   p.req.StartDate,
		EndDate:     p.req.EndDate,
		Extras:      p.req.Extras,
		Marketplace: p.marketplace,
	})
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, p.req.VehicleID)
	if err != nil {
		return nil, err
	}

	// Serialize concurrent booking attempts on the same vehicle.
	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireVehicleLock(ctx, vehicle.ID, vehicleLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrVehicleBusy
		}
		defer s.lockStore.ReleaseVehicleLock(ctx, vehicle.ID)
	}

	var extras []domain.BookingExtra
	for _, quoted := range quote.Extras {
		extras = append(extras, domain.BookingExtra{
			Type:      quoted.Type,
			Quantity:  quoted.Quantity,
			UnitPrice: quoted.UnitPrice,
		})
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:              uuid.New().String(),
		TenantID:        vehicle.TenantID,
		VehicleID:       vehicle.ID,
		CustomerID:      customerID,
		StartDate:       p.req.StartDate,
		EndDate:         p.req.EndDate,
		PickupBranchID:  p.req.PickupBranchID,
		DropoffBranchID: p.req.DropoffBranchID,
		DailyPrice:      quote.DailyPrice,
		TotalPrice:      quote.TotalAmount,
		PlatformFee:     quote.PlatformFee,
		Status:          p.initialStatus,
		Marketplace:     p.marketplace,
		Extras:          extras,
		Notes:           p.req.Notes,
		CreatedAt:       now,
	}
	if p.initialStatus == domain.BookingStatusConfirmed {
		booking.ConfirmedAt = now
	}

	caution := &domain.Caution{
		ID:            uuid.New().String(),
		TenantID:      vehicle.TenantID,
		BookingID:     booking.ID,
		Amount:        vehicle.CautionAmount,
		Status:        domain.CautionStatusPending,
		PaymentMethod: p.paymentMethod,
		CreatedAt:     now,
	}

	// Booking, overlap re-check and caution go in one transaction so two
	// concurrent requests cannot both confirm the same range.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)
	txCautionRepo := postgres.NewCautionRepositoryWithTx(tx)

	overlapping, err := txBookingRepo.FindOverlapping(ctx, vehicle.ID, p.req.StartDate, p.req.EndDate)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		err = ErrBookingOverlap
		return nil, err
	}

	if err = txBookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	if err = txCautionRepo.Create(ctx, caution); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	resp := &CreateBookingResponse{Booking: booking, Caution: caution}
	if p.marketplace && s.gateway != nil {
		resp.PaymentURL = s.gateway.BuildPaymentURL(booking)
	}

	if s.notificationService != nil && booking.Status == domain.BookingStatusConfirmed {
		_ = s.notificationService.NotifyBookingConfirmed(ctx, booking)
	}

	return resp, nil
}

// ConfirmBooking transitions a booking PENDING -> CONFIRMED after successful
// payment. Confirming an already CONFIRMED booking is a no-op so duplicate
// gateway callbacks stay harmless.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.BookingStatusConfirmed {
		return booking, nil
	}
	if !booking.Status.CanTransition(domain.BookingStatusConfirmed) {
		return nil, ErrBookingNotPending
	}

	// Callbacks for two pending bookings on the same vehicle can race: both
	// overlap reads come back empty before either commit. The same per-vehicle
	// lock the create path takes serializes them.
	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireVehicleLock(ctx, booking.VehicleID, vehicleLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrVehicleBusy
		}
		defer s.lockStore.ReleaseVehicleLock(ctx, booking.VehicleID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)

	// The range may have been taken while the booking sat unpaid.
	overlapping, err := txBookingRepo.FindOverlapping(ctx, booking.VehicleID, booking.StartDate, booking.EndDate)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		err = ErrBookingOverlap
		return nil, err
	}

	booking.Status = domain.BookingStatusConfirmed
	booking.ConfirmedAt = time.Now()

	if err = txBookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingConfirmed(ctx, booking)
	}

	return booking, nil
}

// CheckOut hands the vehicle over: booking CONFIRMED -> CHECKED_OUT and
// vehicle AVAILABLE -> RENTED in one transaction.
func (s *BookingService) CheckOut(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	booking, err := s.getForTenant(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransition(domain.BookingStatusCheckedOut) {
		return nil, ErrBookingNotConfirmed
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireVehicleLock(ctx, booking.VehicleID, vehicleLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrVehicleBusy
		}
		defer s.lockStore.ReleaseVehicleLock(ctx, booking.VehicleID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)

	// Check-and-set keeps two concurrent checkouts from double-assigning the car.
	if err = txVehicleRepo.UpdateStatusFrom(ctx, booking.VehicleID, domain.VehicleStatusAvailable, domain.VehicleStatusRented); err != nil {
		if err == repository.ErrStatusConflict {
			err = ErrVehicleNotAvailableForCheckout
		}
		return nil, err
	}

	booking.Status = domain.BookingStatusCheckedOut
	booking.CheckedOutAt = time.Now()

	if err = txBookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return booking, nil
}

// CheckInResponse contains the result of returning a vehicle.
type CheckInResponse struct {
	Booking *domain.Booking
	Settle  *SettleResult
}

// CheckIn takes the vehicle back: booking CHECKED_OUT -> CHECKED_IN and
// vehicle back to AVAILABLE in one transaction, then the caution is settled
// against the booking's damages.
func (s *BookingService) CheckIn(ctx context.Context, actor domain.Actor, bookingID string) (*CheckInResponse, error) {
	booking, err := s.getForTenant(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransition(domain.BookingStatusCheckedIn) {
		return nil, ErrBookingNotCheckedOut
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)

	if err = txVehicleRepo.UpdateStatusFrom(ctx, booking.VehicleID, domain.VehicleStatusRented, domain.VehicleStatusAvailable); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatusCheckedIn
	booking.CheckedInAt = time.Now()

	if err = txBookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	// Settle the deposit after the transaction commits; a settlement failure
	// leaves the caution HELD and is retried manually.
	var settle *SettleResult
	if s.cautionService != nil {
		settle, _ = s.cautionService.Settle(ctx, booking.ID)
	}

	return &CheckInResponse{Booking: booking, Settle: settle}, nil
}

// CancelBooking cancels a PENDING or CONFIRMED booking.
func (s *BookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID, reason string) (*domain.Booking, error) {
	booking, err := s.getForTenant(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransition(domain.BookingStatusCancelled) {
		return nil, ErrBookingNotCancellable
	}

	booking.Status = domain.BookingStatusCancelled
	booking.CancelledAt = time.Now()
	booking.CancelReason = reason

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingCancelled(ctx, booking, reason)
	}

	return booking, nil
}

// MarkNoShow transitions a CONFIRMED booking to NO_SHOW once its pickup
// deadline (start date plus the configured grace) has passed.
func (s *BookingService) MarkNoShow(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	booking, err := s.getForTenant(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}

	return s.markNoShow(ctx, booking, time.Now())
}

func (s *BookingService) markNoShow(ctx context.Context, booking *domain.Booking, now time.Time) (*domain.Booking, error) {
	if !booking.Status.CanTransition(domain.BookingStatusNoShow) {
		return nil, ErrBookingNotConfirmed
	}

	if now.Before(booking.StartDate.Add(s.pickupGrace)) {
		return nil, ErrPickupDeadlineNotPassed
	}

	booking.Status = domain.BookingStatusNoShow
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// SweepNoShows marks every CONFIRMED booking whose pickup deadline passed as
// NO_SHOW. Returns the number of bookings flipped.
func (s *BookingService) SweepNoShows(ctx context.Context, now time.Time) (int, error) {
	stale, err := s.bookingRepo.ListConfirmedStartingBefore(ctx, now.Add(-s.pickupGrace))
	if err != nil {
		return 0, err
	}

	var swept int
	for _, booking := range stale {
		if _, err := s.markNoShow(ctx, booking, now); err == nil {
			swept++
		}
	}
	return swept, nil
}

// SweepExpiredPending cancels PENDING bookings whose payment never arrived
// within the timeout. Returns the number of bookings cancelled.
func (s *BookingService) SweepExpiredPending(ctx context.Context, now time.Time, timeout time.Duration) (int, error) {
	stale, err := s.bookingRepo.ListPendingCreatedBefore(ctx, now.Add(-timeout))
	if err != nil {
		return 0, err
	}

	var swept int
	for _, booking := range stale {
		booking.Status = domain.BookingStatusCancelled
		booking.CancelledAt = now
		booking.CancelReason = "payment timeout"
		if err := s.bookingRepo.Update(ctx, booking); err == nil {
			swept++
		}
	}
	return swept, nil
}

// GetBooking retrieves a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// ListBookings retrieves the bookings of the actor's tenant.
func (s *BookingService) ListBookings(ctx context.Context, actor domain.Actor) ([]*domain.Booking, error) {
	if actor.TenantID == "" {
		return nil, ErrInvalidTenantID
	}
	return s.bookingRepo.ListByTenant(ctx, actor.TenantID)
}

// getForTenant loads a booking and hides it from actors of other tenants.
func (s *BookingService) getForTenant(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.TenantID != "" && booking.TenantID != actor.TenantID {
		return nil, repository.ErrNotFound
	}

	return booking, nil
}
