package models

// Roles a user account can carry. The access gate compares these tags
// against the route policy.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents a user account in the system. PasswordHash is always
// a bcrypt hash once the record has been persisted; ID 0 means the
// record has not been stored yet.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	Enabled      bool
}

// Registration carries a new-account form submission. It is validated
// and converted into a User; it is never persisted directly.
type Registration struct {
	Username        string
	Password        string
	ConfirmPassword string
}
