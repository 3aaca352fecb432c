package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental/internal/domain"
	"rental/internal/repository"
)

// DamageService handles damage reporting and assessment.
type DamageService struct {
	damageRepo  repository.DamageRepository
	bookingRepo repository.BookingRepository
}

// NewDamageService creates a new DamageService.
func NewDamageService(damageRepo repository.DamageRepository, bookingRepo repository.BookingRepository) *DamageService {
	return &DamageService{
		damageRepo:  damageRepo,
		bookingRepo: bookingRepo,
	}
}

// ReportDamageRequest contains the parameters for reporting a damage.
type ReportDamageRequest struct {
	BookingID     string
	Severity      domain.DamageSeverity
	Description   string
	EstimatedCost float64
	Franchise     float64
}

// ReportDamage records a new damage against a booking's vehicle.
func (s *DamageService) ReportDamage(ctx context.Context, actor domain.Actor, req ReportDamageRequest) (*domain.Damage, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if req.EstimatedCost < 0 {
		return nil, ErrInvalidAmount
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if actor.TenantID != "" && booking.TenantID != actor.TenantID {
		return nil, repository.ErrNotFound
	}

	severity := req.Severity
	if severity == "" {
		severity = domain.DamageSeverityMinor
	}

	damage := &domain.Damage{
		ID:            uuid.New().String(),
		TenantID:      booking.TenantID,
		BookingID:     booking.ID,
		VehicleID:     booking.VehicleID,
		Severity:      severity,
		Description:   req.Description,
		EstimatedCost: req.EstimatedCost,
		Franchise:     req.Franchise,
		Status:        domain.DamageStatusReported,
		ReportedAt:    time.Now(),
	}

	if err := s.damageRepo.Create(ctx, damage); err != nil {
		return nil, err
	}

	return damage, nil
}

// AssessDamage sets the actual repair cost and moves the damage to ASSESSED.
// Only assessed damages count toward the caution charge.
func (s *DamageService) AssessDamage(ctx context.Context, actor domain.Actor, damageID string, actualCost float64) (*domain.Damage, error) {
	if actualCost < 0 {
		return nil, ErrInvalidAmount
	}

	damage, err := s.getForTenant(ctx, actor, damageID)
	if err != nil {
		return nil, err
	}

	damage.ActualCost = actualCost
	damage.Status = domain.DamageStatusAssessed
	damage.AssessedAt = time.Now()

	if err := s.damageRepo.Update(ctx, damage); err != nil {
		return nil, err
	}

	return damage, nil
}

// DisputeDamage flags a damage as disputed, excluding it from caution
// charges until resolved.
func (s *DamageService) DisputeDamage(ctx context.Context, actor domain.Actor, damageID string) (*domain.Damage, error) {
	damage, err := s.getForTenant(ctx, actor, damageID)
	if err != nil {
		return nil, err
	}

	damage.Disputed = true
	if err := s.damageRepo.Update(ctx, damage); err != nil {
		return nil, err
	}

	return damage, nil
}

// ResolveDispute clears the disputed flag, letting the damage count toward
// the caution charge again.
func (s *DamageService) ResolveDispute(ctx context.Context, actor domain.Actor, damageID string) (*domain.Damage, error) {
	damage, err := s.getForTenant(ctx, actor, damageID)
	if err != nil {
		return nil, err
	}

	if !damage.Disputed {
		return nil, ErrDamageNotDisputed
	}

	damage.Disputed = false
	damage.Status = domain.DamageStatusResolved

	if err := s.damageRepo.Update(ctx, damage); err != nil {
		return nil, err
	}

	return damage, nil
}

// ListByBooking retrieves all damages linked to a booking.
func (s *DamageService) ListByBooking(ctx context.Context, actor domain.Actor, bookingID string) ([]*domain.Damage, error) {
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

	return s.damageRepo.ListByBooking(ctx, bookingID)
}

func (s *DamageService) getForTenant(ctx context.Context, actor domain.Actor, damageID string) (*domain.Damage, error) {
	if damageID == "" {
		return nil, ErrInvalidDamageID
	}

	damage, err := s.damageRepo.GetByID(ctx, damageID)
	if err != nil {
		return nil, err
	}

	if actor.TenantID != "" && damage.TenantID != actor.TenantID {
		return nil, repository.ErrNotFound
	}

	return damage, nil
}
