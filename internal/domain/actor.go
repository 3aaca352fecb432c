package domain

// ActorRole identifies who is performing an operation.
type ActorRole string

const (
	RoleCustomer ActorRole = "CUSTOMER"
	RoleStaff    ActorRole = "STAFF"
	RoleAdmin    ActorRole = "ADMIN"
)

// Actor carries the authenticated identity for a lifecycle call. It is passed
// explicitly to services instead of being read from ambient request state.
type Actor struct {
	TenantID string
	ActorID  string
	Role     ActorRole
}
