package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/panelworks/admin-console/internal/core/domain"
)

// RolesService implements ports.RoleAPI against the remote backend.
type RolesService struct {
	c *Client
}

// GetAll returns the backend's full role listing.
func (s *RolesService) GetAll(ctx context.Context) ([]domain.Role, error) {
	var out []domain.Role
	if err := s.c.do(ctx, http.MethodGet, "/roles", nil, &out, "roles", "get_all"); err != nil {
		return nil, err
	}
	return out, nil
}

// Create sends the new role and returns the echoed record.
func (s *RolesService) Create(ctx context.Context, input domain.RolePatch) (*domain.Role, error) {
	var out domain.Role
	if err := s.c.do(ctx, http.MethodPost, "/roles", input, &out, "roles", "create"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial update and returns the possibly-partial echo.
func (s *RolesService) Update(ctx context.Context, id string, patch domain.RolePatch) (domain.RolePatch, error) {
	var out domain.RolePatch
	if err := s.c.do(ctx, http.MethodPatch, "/roles/"+url.PathEscape(id), patch, &out, "roles", "update"); err != nil {
		return domain.RolePatch{}, err
	}
	return out, nil
}

// Delete removes the role from the backend.
func (s *RolesService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/roles/"+url.PathEscape(id), nil, nil, "roles", "delete")
}

type updatePermissionsRequest struct {
	Permissions []domain.Permission `json:"permissions"`
}

// UpdatePermissions replaces a role's permission set through the dedicated
// endpoint and returns the updated role.
func (s *RolesService) UpdatePermissions(ctx context.Context, roleID string, permissions []domain.Permission) (*domain.Role, error) {
	var out domain.Role
	req := updatePermissionsRequest{Permissions: permissions}
	if err := s.c.do(ctx, http.MethodPost, "/roles/"+url.PathEscape(roleID)+"/permissions", req, &out, "roles", "update_permissions"); err != nil {
		return nil, err
	}
	return &out, nil
}
