package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/panelworks/admin-console/internal/core/domain"
)

// UsersService implements ports.UserAPI against the remote backend.
type UsersService struct {
	c *Client
}

// GetAll returns the backend's full user listing. No pagination.
func (s *UsersService) GetAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := s.c.do(ctx, http.MethodGet, "/users", nil, &out, "users", "get_all"); err != nil {
		return nil, err
	}
	return out, nil
}

// Create sends the new user and returns the record the backend echoes,
// including its server-assigned identifier.
func (s *UsersService) Create(ctx context.Context, input domain.UserPatch) (*domain.User, error) {
	var out domain.User
	if err := s.c.do(ctx, http.MethodPost, "/users", input, &out, "users", "create"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial update. The echo may cover only a subset of the
// sent fields; absent fields come back nil.
func (s *UsersService) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.UserPatch, error) {
	var out domain.UserPatch
	if err := s.c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), patch, &out, "users", "update"); err != nil {
		return domain.UserPatch{}, err
	}
	return out, nil
}

// Delete removes the user from the backend.
func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, "users", "delete")
}
