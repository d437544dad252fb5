package domain

// Permission is one of the closed set of capabilities a role can grant.
// Permissions have no lifecycle of their own; they exist only inside roles.
type Permission string

const (
	PermissionRead        Permission = "read"
	PermissionWrite       Permission = "write"
	PermissionDelete      Permission = "delete"
	PermissionManageUsers Permission = "manage_users"
	PermissionManageRoles Permission = "manage_roles"
)

// AllPermissions is the closed permission set in canonical order.
var AllPermissions = []Permission{
	PermissionRead,
	PermissionWrite,
	PermissionDelete,
	PermissionManageUsers,
	PermissionManageRoles,
}

// Valid reports whether p belongs to the closed permission set.
func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// Role groups an ordered set of permissions under a name.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
}

// RolePatch carries the fields of a partial role create or update.
type RolePatch struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Permissions *[]Permission `json:"permissions,omitempty"`
}

// Apply merges only the fields present in the patch into the role. An echoed
// permission list replaces the local one wholesale.
func (r *Role) Apply(p RolePatch) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Permissions != nil {
		r.Permissions = append([]Permission(nil), (*p.Permissions)...)
	}
}
