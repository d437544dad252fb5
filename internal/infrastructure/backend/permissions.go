package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/panelworks/admin-console/internal/core/domain"
)

// PermissionsService exposes the backend's permission endpoints. Only the
// catalogue listing has a consumer in the console; the mutating calls exist
// because the backend offers them, but the permission set is a closed enum
// and nothing in the console edits it.
type PermissionsService struct {
	c *Client
}

type permissionRecord struct {
	ID   string            `json:"id,omitempty"`
	Name domain.Permission `json:"name"`
}

// GetAll returns the permission catalogue.
func (s *PermissionsService) GetAll(ctx context.Context) ([]domain.Permission, error) {
	var out []permissionRecord
	if err := s.c.do(ctx, http.MethodGet, "/permissions", nil, &out, "permissions", "get_all"); err != nil {
		return nil, err
	}
	perms := make([]domain.Permission, 0, len(out))
	for _, rec := range out {
		perms = append(perms, rec.Name)
	}
	return perms, nil
}

// Create registers a permission on the backend.
func (s *PermissionsService) Create(ctx context.Context, p domain.Permission) error {
	return s.c.do(ctx, http.MethodPost, "/permissions", permissionRecord{Name: p}, nil, "permissions", "create")
}

// Update renames a permission on the backend.
func (s *PermissionsService) Update(ctx context.Context, id string, p domain.Permission) error {
	return s.c.do(ctx, http.MethodPatch, "/permissions/"+url.PathEscape(id), permissionRecord{Name: p}, nil, "permissions", "update")
}

// Delete removes a permission from the backend.
func (s *PermissionsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/permissions/"+url.PathEscape(id), nil, nil, "permissions", "delete")
}
