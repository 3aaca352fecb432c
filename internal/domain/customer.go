package domain

import "time"

// Customer represents a renting customer in the system.
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
