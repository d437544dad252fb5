package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panelworks/admin-console/internal/api/metrics"
	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/query"
	"github.com/panelworks/admin-console/internal/core/store"
)

// queryUsers is the freshness key for the users listing.
const queryUsers = "users"

// UsersHandler drives the admin store's user collection.
type UsersHandler struct {
	admin   *store.AdminStore
	queries *query.Cache
}

func NewUsersHandler(admin *store.AdminStore, queries *query.Cache) *UsersHandler {
	return &UsersHandler{admin: admin, queries: queries}
}

type createUserRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Avatar string `json:"avatar"`
	RoleID string `json:"roleId" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type updateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Avatar *string `json:"avatar"`
	RoleID *string `json:"roleId" validate:"omitempty,min=1"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// List refreshes the users collection (through the read cache) and returns
// the store's mirror of it.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/users [get]
func (h *UsersHandler) List(c echo.Context) error {
	if err := h.queries.Do(c.Request().Context(), queryUsers, h.admin.FetchUsers); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "fetch_users").Inc()
		return err
	}
	return c.JSON(http.StatusOK, h.admin.Snapshot().Users)
}

// Create adds a user. The add flow always goes through the create path; the
// backend assigns the identifier.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /api/users [post]
func (h *UsersHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.StatusActive
	if req.Status != "" {
		status = domain.UserStatus(req.Status)
	}
	input := domain.UserPatch{
		Name:   &req.Name,
		Email:  &req.Email,
		RoleID: &req.RoleID,
		Status: &status,
	}
	if req.Avatar != "" {
		input.Avatar = &req.Avatar
	}

	created, err := h.admin.CreateUser(c.Request().Context(), input)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "create_user").Inc()
		return err
	}

	h.queries.Invalidate(queryUsers)
	return c.JSON(http.StatusCreated, created)
}

// Update sends a partial update and reconciles the echo into the store.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Changed fields"
// @Success      204   "reconciled"
// @Failure      400   {object}  map[string]string
// @Router       /api/users/{id} [patch]
func (h *UsersHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := domain.UserPatch{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
		RoleID: req.RoleID,
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		patch.Status = &status
	}

	if err := h.admin.UpdateUser(c.Request().Context(), c.Param("id"), patch); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "update_user").Inc()
		return err
	}

	h.queries.Invalidate(queryUsers)
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a user. The local record disappears only after the backend
// confirms.
//
// @Summary      Delete user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204  "deleted"
// @Router       /api/users/{id} [delete]
func (h *UsersHandler) Delete(c echo.Context) error {
	if err := h.admin.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "delete_user").Inc()
		return err
	}

	h.queries.Invalidate(queryUsers)
	return c.NoContent(http.StatusNoContent)
}
