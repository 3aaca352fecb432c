package domain

import "time"

// CautionStatus represents the current status of a security deposit.
type CautionStatus string

const (
	CautionStatusPending          CautionStatus = "PENDING"
	CautionStatusHeld             CautionStatus = "HELD"
	CautionStatusReleased         CautionStatus = "RELEASED"
	CautionStatusFullyCharged     CautionStatus = "FULLY_CHARGED"
	CautionStatusPartiallyCharged CautionStatus = "PARTIALLY_CHARGED"
)

// PaymentMethod represents how a caution is held.
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "CASH"
	PaymentMethodPaysera PaymentMethod = "PAYSERA"
)

// Valid reports whether the payment method is one of the known values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodPaysera
}

// cautionTransitions is the set of legal caution status moves.
// RELEASED, FULLY_CHARGED and PARTIALLY_CHARGED are terminal: a settled
// deposit never reverts.
var cautionTransitions = map[CautionStatus][]CautionStatus{
	CautionStatusPending: {CautionStatusHeld},
	CautionStatusHeld:    {CautionStatusReleased, CautionStatusFullyCharged, CautionStatusPartiallyCharged},
}

// CanTransition reports whether a caution may move from one status to another.
func (s CautionStatus) CanTransition(to CautionStatus) bool {
	for _, next := range cautionTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s CautionStatus) IsTerminal() bool {
	return len(cautionTransitions[s]) == 0
}

// Caution represents a refundable security deposit held against a booking.
// ChargedAmount is zero until a charge transition sets it; ReleasedAt and
// ChargedAt are mutually exclusive.
type Caution struct {
	ID            string
	TenantID      string
	BookingID     string
	Amount        float64
	Status        CautionStatus
	PaymentMethod PaymentMethod
	HeldAt        time.Time
	ReleasedAt    time.Time
	ChargedAt     time.Time
	ChargedAmount float64
	CreatedAt     time.Time
}
