package domain

// RoleAdmin is the role identifier that unlocks the management screens.
// The gate is a single string comparison, mirroring the backend's contract.
const RoleAdmin = "admin"

// AuthUser is the identity decoded from the bearer token's claims. It exists
// only while a session is active and never outlives a logout or a 401.
type AuthUser struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	RoleID string `json:"roleId"`
}

// IsAdmin reports whether this session may manage users and roles.
func (u AuthUser) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}
