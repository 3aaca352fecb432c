package service

import (
	"context"
	"time"

	"rental/internal/domain"
	"rental/internal/repository"
)

// CautionService handles the security deposit lifecycle.
type CautionService struct {
	cautionRepo         repository.CautionRepository
	damageRepo          repository.DamageRepository
	notificationService *NotificationService
}

// NewCautionService creates a new CautionService.
func NewCautionService(
	cautionRepo repository.CautionRepository,
	damageRepo repository.DamageRepository,
	notificationService *NotificationService,
) *CautionService {
	return &CautionService{
		cautionRepo:         cautionRepo,
		damageRepo:          damageRepo,
		notificationService: notificationService,
	}
}

// GetCaution retrieves a caution by ID.
func (s *CautionService) GetCaution(ctx context.Context, cautionID string) (*domain.Caution, error) {
	if cautionID == "" {
		return nil, ErrInvalidCautionID
	}
	return s.cautionRepo.GetByID(ctx, cautionID)
}

// GetByBooking retrieves the caution held against a booking.
func (s *CautionService) GetByBooking(ctx context.Context, bookingID string) (*domain.Caution, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	return s.cautionRepo.GetByBookingID(ctx, bookingID)
}

// Hold transitions a caution PENDING -> HELD once the deposit is secured,
// by the gateway authorization or in cash at the counter. A non-empty method
// records how the deposit was actually taken; empty keeps the one recorded at
// booking time. Calling Hold on an already HELD caution is a no-op so
// duplicate gateway callbacks stay harmless.
func (s *CautionService) Hold(ctx context.Context, bookingID string, method domain.PaymentMethod) (*domain.Caution, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if method != "" && !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	caution, err := s.cautionRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if caution.Status == domain.CautionStatusHeld {
		return caution, nil
	}
	if caution.Status.IsTerminal() {
		return nil, ErrCautionTerminal
	}
	if !caution.Status.CanTransition(domain.CautionStatusHeld) {
		return nil, ErrCautionNotPending
	}

	if method != "" {
		caution.PaymentMethod = method
	}
	caution.Status = domain.CautionStatusHeld
	caution.HeldAt = time.Now()

	if err := s.cautionRepo.Update(ctx, caution); err != nil {
		return nil, err
	}

	return caution, nil
}

// SettleResult describes the outcome of settling a caution at check-in.
type SettleResult struct {
	Caution        *domain.Caution
	DamagesTotal   float64
	ReleasedAmount float64 // remainder scheduled for release
}

// Settle evaluates damages at check-in and moves the caution out of HELD:
// no chargeable damages release the full deposit, damages below the deposit
// charge the damage total and schedule the remainder for release, damages at
// or above the deposit charge it fully. chargedAmount never exceeds amount.
func (s *CautionService) Settle(ctx context.Context, bookingID string) (*SettleResult, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	caution, err := s.cautionRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if caution.Status.IsTerminal() {
		return nil, ErrCautionTerminal
	}
	if caution.Status != domain.CautionStatusHeld {
		return nil, ErrCautionNotHeld
	}

	damagesTotal, err := s.chargeableTotal(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &SettleResult{DamagesTotal: damagesTotal}

	switch {
	case damagesTotal <= 0:
		caution.Status = domain.CautionStatusReleased
		caution.ReleasedAt = now
		result.ReleasedAmount = caution.Amount

	case damagesTotal < caution.Amount:
		caution.Status = domain.CautionStatusPartiallyCharged
		caution.ChargedAt = now
		caution.ChargedAmount = damagesTotal
		result.ReleasedAmount = caution.Amount - damagesTotal

	default:
		caution.Status = domain.CautionStatusFullyCharged
		caution.ChargedAt = now
		caution.ChargedAmount = caution.Amount
	}

	if err := s.cautionRepo.Update(ctx, caution); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyCautionSettled(ctx, caution, result.ReleasedAmount)
	}

	result.Caution = caution
	return result, nil
}

// chargeableTotal sums the actual cost of non-disputed, assessed-or-later
// damages linked to the booking. Disputed damages stay out of the total until
// the dispute is resolved.
func (s *CautionService) chargeableTotal(ctx context.Context, bookingID string) (float64, error) {
	damages, err := s.damageRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, damage := range damages {
		if damage.Chargeable() {
			total += damage.ActualCost
		}
	}
	return total, nil
}
