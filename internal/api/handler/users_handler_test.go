package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/query"
	"github.com/panelworks/admin-console/internal/core/store"
)

type stubUserAPI struct {
	getAllFn func(ctx context.Context) ([]domain.User, error)
	createFn func(ctx context.Context, input domain.UserPatch) (*domain.User, error)
	updateFn func(ctx context.Context, id string, patch domain.UserPatch) (domain.UserPatch, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubUserAPI) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.getAllFn(ctx)
}

func (s *stubUserAPI) Create(ctx context.Context, input domain.UserPatch) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserAPI) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.UserPatch, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubUserAPI) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubRoleAPI struct{}

func (s *stubRoleAPI) GetAll(ctx context.Context) ([]domain.Role, error) { return nil, nil }

func (s *stubRoleAPI) Create(ctx context.Context, input domain.RolePatch) (*domain.Role, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRoleAPI) Update(ctx context.Context, id string, patch domain.RolePatch) (domain.RolePatch, error) {
	return domain.RolePatch{}, errors.New("not implemented")
}

func (s *stubRoleAPI) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (s *stubRoleAPI) UpdatePermissions(ctx context.Context, roleID string, permissions []domain.Permission) (*domain.Role, error) {
	return nil, errors.New("not implemented")
}

func newUsersHandler(users *stubUserAPI) (*UsersHandler, *store.AdminStore) {
	admin := store.NewAdminStore(users, &stubRoleAPI{}, zerolog.Nop())
	return NewUsersHandler(admin, query.New(time.Minute)), admin
}

func newUsersContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUsersHandler_List(t *testing.T) {
	fetches := 0
	handler, _ := newUsersHandler(&stubUserAPI{
		getAllFn: func(ctx context.Context) ([]domain.User, error) {
			fetches++
			return []domain.User{{ID: "u1", Name: "A"}, {ID: "u2", Name: "B"}}, nil
		},
	})

	c, rec := newUsersContext(http.MethodGet, "/api/users", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var users []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 || users[0].ID != "u1" {
		t.Fatalf("unexpected listing: %+v", users)
	}

	// A second listing inside the freshness window serves the mirror without
	// another backend call.
	c, _ = newUsersContext(http.MethodGet, "/api/users", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("second list error: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("expected one backend fetch, got %d", fetches)
	}
}

func TestUsersHandler_Create(t *testing.T) {
	handler, admin := newUsersHandler(&stubUserAPI{
		createFn: func(ctx context.Context, input domain.UserPatch) (*domain.User, error) {
			if input.Name == nil || *input.Name != "Carol" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.Status == nil || *input.Status != domain.StatusActive {
				t.Fatalf("expected default active status, got %+v", input.Status)
			}
			return &domain.User{ID: "u9", Name: *input.Name, Email: *input.Email, RoleID: *input.RoleID, Status: domain.StatusActive}, nil
		},
	})

	c, rec := newUsersContext(http.MethodPost, "/api/users", `{"name":"Carol","email":"c@b.com","roleId":"viewer"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	snap := admin.Snapshot()
	if len(snap.Users) != 1 || snap.Users[0].ID != "u9" {
		t.Fatalf("store should hold the created record: %+v", snap.Users)
	}
}

func TestUsersHandler_Create_InvalidStatus(t *testing.T) {
	handler, _ := newUsersHandler(&stubUserAPI{
		createFn: func(ctx context.Context, input domain.UserPatch) (*domain.User, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	})

	c, _ := newUsersContext(http.MethodPost, "/api/users", `{"name":"Carol","email":"c@b.com","roleId":"viewer","status":"paused"}`)
	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUsersHandler_Update(t *testing.T) {
	handler, admin := newUsersHandler(&stubUserAPI{
		getAllFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: "u1", Name: "A", Email: "a@b.com", Status: domain.StatusActive}}, nil
		},
		updateFn: func(ctx context.Context, id string, patch domain.UserPatch) (domain.UserPatch, error) {
			if id != "u1" {
				t.Fatalf("unexpected id %s", id)
			}
			// The backend echoes a subset of the sent fields.
			return domain.UserPatch{Name: patch.Name}, nil
		},
	})
	if err := admin.FetchUsers(context.Background()); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	c, rec := newUsersContext(http.MethodPatch, "/api/users/u1", `{"name":"Anna"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := handler.Update(c); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	snap := admin.Snapshot()
	if snap.Users[0].Name != "Anna" || snap.Users[0].Email != "a@b.com" {
		t.Fatalf("expected merged echo, got %+v", snap.Users[0])
	}
}

func TestUsersHandler_Delete_BackendFailureKeepsRecord(t *testing.T) {
	handler, admin := newUsersHandler(&stubUserAPI{
		getAllFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: "u1"}}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			return &domain.ServerError{Status: http.StatusInternalServerError, Message: "boom"}
		},
	})
	if err := admin.FetchUsers(context.Background()); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	c, _ := newUsersContext(http.MethodDelete, "/api/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")
	if err := handler.Delete(c); err == nil {
		t.Fatal("expected error")
	}

	if snap := admin.Snapshot(); len(snap.Users) != 1 {
		t.Fatalf("record must survive a failed delete: %+v", snap.Users)
	}
}
