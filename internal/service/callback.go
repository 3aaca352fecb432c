package service

import (
	"context"
	"errors"
	"fmt"

	"rental/internal/domain"
	"rental/internal/repository"
)

// CallbackService decodes payment gateway callbacks and drives the booking
// and caution lifecycles from them.
type CallbackService struct {
	gateway        *PaymentGateway
	bookingService *BookingService
	cautionService *CautionService
}

// NewCallbackService creates a new CallbackService.
func NewCallbackService(gateway *PaymentGateway, bookingService *BookingService, cautionService *CautionService) *CallbackService {
	return &CallbackService{
		gateway:        gateway,
		bookingService: bookingService,
		cautionService: cautionService,
	}
}

// Handle processes a raw gateway callback and returns the plain-text
// acknowledgment body. The gateway only reads text, so every failure becomes
// a textual error response, never an error return. Redelivered callbacks for
// an already-confirmed order are acknowledged without side effects.
func (s *CallbackService) Handle(ctx context.Context, rawData, signature string) string {
	data, err := s.gateway.DecodeCallback(rawData, signature)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingOrderID):
			return "ERROR: missing orderid"
		case errors.Is(err, ErrBadSignature):
			return "ERROR: invalid signature"
		default:
			return "ERROR: malformed payload"
		}
	}

	booking, err := s.bookingService.GetBooking(ctx, data.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Sprintf("ERROR: unknown order %s", data.OrderID)
		}
		return "ERROR: internal"
	}

	if !s.gateway.Success(data) {
		// Failed payment cancels the booking; the caution stays PENDING.
		actor := domain.Actor{TenantID: booking.TenantID}
		if _, err := s.bookingService.CancelBooking(ctx, actor, booking.ID, "payment failed"); err != nil && !errors.Is(err, ErrBookingNotCancellable) {
			return "ERROR: internal"
		}
		return "OK"
	}

	if _, err := s.bookingService.ConfirmBooking(ctx, booking.ID); err != nil {
		if errors.Is(err, ErrBookingOverlap) {
			return "ERROR: booking no longer available"
		}
		if !errors.Is(err, ErrBookingNotPending) {
			return "ERROR: internal"
		}
		// Terminal booking: acknowledge so the gateway stops retrying.
		return "OK"
	}

	if _, err := s.cautionService.Hold(ctx, booking.ID, domain.PaymentMethodPaysera); err != nil && !errors.Is(err, ErrCautionTerminal) {
		return "ERROR: internal"
	}

	return "OK"
}
