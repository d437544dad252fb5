package domain

// UserStatus is the activation state of a managed account.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// User is a managed account as reported by the backend. The backend assigns
// the identifier; the console never synthesizes one.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar,omitempty"`
	RoleID    string     `json:"roleId"`
	Status    UserStatus `json:"status"`
	CreatedAt string     `json:"createdAt,omitempty"`
}

// UserPatch carries the fields of a partial user create or update. A nil
// field is absent from the request body, and absent from a server echo.
type UserPatch struct {
	Name   *string     `json:"name,omitempty"`
	Email  *string     `json:"email,omitempty"`
	Avatar *string     `json:"avatar,omitempty"`
	RoleID *string     `json:"roleId,omitempty"`
	Status *UserStatus `json:"status,omitempty"`
}

// Apply merges only the fields present in the patch into the user. Fields
// the server did not echo back keep their prior values.
func (u *User) Apply(p UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.RoleID != nil {
		u.RoleID = *p.RoleID
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
}
