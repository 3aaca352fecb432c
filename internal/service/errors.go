package service

import "errors"

var (
	// ErrInvalidTenantID is returned when tenant ID is empty.
	ErrInvalidTenantID = errors.New("invalid tenant id")

	// ErrInvalidVehicleID is returned when vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidCustomerID is returned when customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidCautionID is returned when caution ID is empty.
	ErrInvalidCautionID = errors.New("invalid caution id")

	// ErrInvalidDamageID is returned when damage ID is empty.
	ErrInvalidDamageID = errors.New("invalid damage id")

	// ErrInvalidMaintenanceID is returned when maintenance ID is empty.
	ErrInvalidMaintenanceID = errors.New("invalid maintenance id")

	// ErrInvalidDateRange is returned when endDate is not after startDate.
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// ErrUnknownExtraType is returned when a requested extra is not in the
	// tenant's price list.
	ErrUnknownExtraType = errors.New("unknown extra type")

	// ErrInvalidExtraQuantity is returned when an extra quantity is not positive.
	ErrInvalidExtraQuantity = errors.New("extra quantity must be positive")

	// ErrVehicleUnavailable is returned when a vehicle cannot serve the
	// requested date range.
	ErrVehicleUnavailable = errors.New("vehicle not available for the requested dates")

	// ErrVehicleNotAvailableForCheckout is returned when the vehicle is not
	// AVAILABLE at checkout time.
	ErrVehicleNotAvailableForCheckout = errors.New("vehicle not available for checkout")

	// ErrBookingOverlap is returned when an active booking already covers the
	// requested date range on the same vehicle.
	ErrBookingOverlap = errors.New("overlapping booking exists for vehicle")

	// ErrBookingNotPending is returned when confirming a booking that is not
	// PENDING.
	ErrBookingNotPending = errors.New("booking not pending")

	// ErrBookingNotConfirmed is returned when checking out a booking that is
	// not CONFIRMED.
	ErrBookingNotConfirmed = errors.New("booking not confirmed")

	// ErrBookingNotCheckedOut is returned when checking in a booking that is
	// not CHECKED_OUT.
	ErrBookingNotCheckedOut = errors.New("booking not checked out")

	// ErrBookingNotCancellable is returned when the booking is in a state
	// that cannot be cancelled.
	ErrBookingNotCancellable = errors.New("booking cannot be cancelled in current state")

	// ErrPickupDeadlineNotPassed is returned when marking a no-show before
	// the pickup deadline.
	ErrPickupDeadlineNotPassed = errors.New("pickup deadline has not passed")

	// ErrCautionTerminal is returned when a transition is attempted from a
	// terminal caution state.
	ErrCautionTerminal = errors.New("caution already settled")

	// ErrCautionNotPending is returned when holding a caution that is not
	// PENDING.
	ErrCautionNotPending = errors.New("caution not pending")

	// ErrCautionNotHeld is returned when settling a caution that is not HELD.
	ErrCautionNotHeld = errors.New("caution not held")

	// ErrInvalidAmount is returned when a monetary amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrDamageNotDisputed is returned when resolving a damage that is not
	// disputed.
	ErrDamageNotDisputed = errors.New("damage not disputed")

	// ErrMaintenanceNotScheduled is returned when starting a job that is not
	// SCHEDULED.
	ErrMaintenanceNotScheduled = errors.New("maintenance not scheduled")

	// ErrMaintenanceNotInProgress is returned when completing a job that is
	// not IN_PROGRESS.
	ErrMaintenanceNotInProgress = errors.New("maintenance not in progress")

	// ErrVehicleBusy is returned when another request holds the vehicle lock.
	ErrVehicleBusy = errors.New("vehicle is being processed by another request")
)
