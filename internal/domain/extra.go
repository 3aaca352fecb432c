package domain

// ExtraPrice is a tenant-configured price list entry for a booking extra.
type ExtraPrice struct {
	TenantID  string
	Type      string // e.g. CHILD_SEAT, GPS, ADDITIONAL_DRIVER
	UnitPrice float64
}
