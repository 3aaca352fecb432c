package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusCheckedOut BookingStatus = "CHECKED_OUT"
	BookingStatusCheckedIn  BookingStatus = "CHECKED_IN"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusNoShow     BookingStatus = "NO_SHOW"
)

// bookingTransitions is the set of legal booking status moves.
// CHECKED_IN, CANCELLED and NO_SHOW are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusCheckedOut, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusCheckedOut: {BookingStatusCheckedIn},
}

// CanTransition reports whether a booking may move from one status to another.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// BookingExtra is a priced extra attached to a booking (child seat, GPS, ...).
type BookingExtra struct {
	Type      string
	Quantity  int
	UnitPrice float64
}

// Booking represents a vehicle rental booking.
type Booking struct {
	ID              string
	TenantID        string
	VehicleID       string
	CustomerID      string
	StartDate       time.Time
	EndDate         time.Time
	PickupBranchID  string
	DropoffBranchID string
	DailyPrice      float64
	TotalPrice      float64
	PlatformFee     float64
	Status          BookingStatus
	Marketplace     bool // true when originated through the public marketplace flow
	Extras          []BookingExtra
	Notes           string
	CreatedAt       time.Time
	ConfirmedAt     time.Time
	CheckedOutAt    time.Time
	CheckedInAt     time.Time
	CancelledAt     time.Time
	CancelReason    string
}
