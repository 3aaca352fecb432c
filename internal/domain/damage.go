package domain

import "time"

// DamageSeverity classifies how serious a reported damage is.
type DamageSeverity string

const (
	DamageSeverityMinor    DamageSeverity = "MINOR"
	DamageSeverityModerate DamageSeverity = "MODERATE"
	DamageSeveritySevere   DamageSeverity = "SEVERE"
)

// DamageStatus represents the assessment progress of a damage.
type DamageStatus string

const (
	DamageStatusReported DamageStatus = "REPORTED"
	DamageStatusAssessed DamageStatus = "ASSESSED"
	DamageStatusRepaired DamageStatus = "REPAIRED"
	DamageStatusResolved DamageStatus = "RESOLVED"
)

// Chargeable reports whether the damage counts toward a caution charge.
// Only assessed-or-later, non-disputed damages carry a reliable actual cost.
func (d *Damage) Chargeable() bool {
	if d.Disputed {
		return false
	}
	switch d.Status {
	case DamageStatusAssessed, DamageStatusRepaired, DamageStatusResolved:
		return true
	}
	return false
}

// Damage represents damage found on a vehicle, linked to the booking during
// which it occurred. Many damages may reduce a single caution's available
// amount.
type Damage struct {
	ID            string
	TenantID      string
	BookingID     string
	VehicleID     string
	Severity      DamageSeverity
	Description   string
	EstimatedCost float64
	ActualCost    float64
	Franchise     float64 // deductible applied to the claim
	Status        DamageStatus
	Disputed      bool
	ReportedAt    time.Time
	AssessedAt    time.Time
}
