package ports

import (
	"context"

	"github.com/panelworks/admin-console/internal/core/domain"
)

// SignupInput is the payload for account creation. IsAdmin selects the
// admin signup endpoint over the regular one.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	IsAdmin  bool
}

// AuthAPI is the backend's authentication surface. Login and Signup persist
// the returned bearer token before decoding its claims; Logout only discards
// the stored token, with no server round-trip.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.AuthUser, error)
	Signup(ctx context.Context, input SignupInput) (*domain.AuthUser, error)
	Logout() error
}

// UserAPI is the backend's user CRUD surface. Update returns the server's
// echo, which may cover only a subset of the sent fields.
type UserAPI interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, input domain.UserPatch) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (domain.UserPatch, error)
	Delete(ctx context.Context, id string) error
}

// RoleAPI is the backend's role CRUD surface.
type RoleAPI interface {
	GetAll(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, input domain.RolePatch) (*domain.Role, error)
	Update(ctx context.Context, id string, patch domain.RolePatch) (domain.RolePatch, error)
	Delete(ctx context.Context, id string) error
	UpdatePermissions(ctx context.Context, roleID string, permissions []domain.Permission) (*domain.Role, error)
}

// PermissionAPI exposes the backend's permission catalogue.
type PermissionAPI interface {
	GetAll(ctx context.Context) ([]domain.Permission, error)
}
