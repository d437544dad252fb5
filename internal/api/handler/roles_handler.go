package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panelworks/admin-console/internal/api/metrics"
	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/ports"
	"github.com/panelworks/admin-console/internal/core/query"
	"github.com/panelworks/admin-console/internal/core/store"
)

// queryRoles is the freshness key for the roles listing.
const queryRoles = "roles"

// RolesHandler drives the admin store's role collection and serves the
// permission catalogue the role form offers.
type RolesHandler struct {
	admin   *store.AdminStore
	perms   ports.PermissionAPI
	queries *query.Cache
}

func NewRolesHandler(admin *store.AdminStore, perms ports.PermissionAPI, queries *query.Cache) *RolesHandler {
	return &RolesHandler{admin: admin, perms: perms, queries: queries}
}

type createRoleRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Permissions []domain.Permission `json:"permissions" validate:"dive,oneof=read write delete manage_users manage_roles"`
}

type updateRoleRequest struct {
	Name        *string              `json:"name" validate:"omitempty,min=1"`
	Description *string              `json:"description"`
	Permissions *[]domain.Permission `json:"permissions" validate:"omitempty,dive,oneof=read write delete manage_users manage_roles"`
}

type updatePermissionsRequest struct {
	Permissions []domain.Permission `json:"permissions" validate:"dive,oneof=read write delete manage_users manage_roles"`
}

// List refreshes the roles collection and returns the store's mirror of it.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Success      200  {array}   domain.Role
// @Failure      401  {object}  map[string]string
// @Router       /api/roles [get]
func (h *RolesHandler) List(c echo.Context) error {
	if err := h.queries.Do(c.Request().Context(), queryRoles, h.admin.FetchRoles); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "fetch_roles").Inc()
		return err
	}
	return c.JSON(http.StatusOK, h.admin.Snapshot().Roles)
}

// Create adds a role through the create path; the backend assigns the id.
//
// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        body  body      createRoleRequest  true  "New role"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  map[string]string
// @Router       /api/roles [post]
func (h *RolesHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := domain.RolePatch{
		Name:        &req.Name,
		Description: &req.Description,
		Permissions: &req.Permissions,
	}

	created, err := h.admin.CreateRole(c.Request().Context(), input)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "create_role").Inc()
		return err
	}

	h.queries.Invalidate(queryRoles)
	return c.JSON(http.StatusCreated, created)
}

// Update sends a partial update and reconciles the echo into the store.
//
// @Summary      Update role
// @Tags         roles
// @Accept       json
// @Param        id    path      string             true  "Role id"
// @Param        body  body      updateRoleRequest  true  "Changed fields"
// @Success      204   "reconciled"
// @Failure      400   {object}  map[string]string
// @Router       /api/roles/{id} [patch]
func (h *RolesHandler) Update(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := domain.RolePatch{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	}

	if err := h.admin.UpdateRole(c.Request().Context(), c.Param("id"), patch); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "update_role").Inc()
		return err
	}

	h.queries.Invalidate(queryRoles)
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a role after the backend confirms.
//
// @Summary      Delete role
// @Tags         roles
// @Param        id  path  string  true  "Role id"
// @Success      204  "deleted"
// @Router       /api/roles/{id} [delete]
func (h *RolesHandler) Delete(c echo.Context) error {
	if err := h.admin.DeleteRole(c.Request().Context(), c.Param("id")); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "delete_role").Inc()
		return err
	}

	h.queries.Invalidate(queryRoles)
	return c.NoContent(http.StatusNoContent)
}

// UpdatePermissions replaces a role's permission set through the dedicated
// backend endpoint.
//
// @Summary      Replace role permissions
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Role id"
// @Param        body  body      updatePermissionsRequest  true  "Permission set"
// @Success      200   {object}  domain.Role
// @Failure      400   {object}  map[string]string
// @Router       /api/roles/{id}/permissions [post]
func (h *RolesHandler) UpdatePermissions(c echo.Context) error {
	var req updatePermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.admin.UpdateRolePermissions(c.Request().Context(), c.Param("id"), req.Permissions)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "update_role_permissions").Inc()
		return err
	}

	h.queries.Invalidate(queryRoles)
	return c.JSON(http.StatusOK, updated)
}

// ListPermissions serves the permission catalogue for the role form. When
// the backend offers no catalogue endpoint the closed set is the answer
// anyway, so backend failures fall back to it. A 401 is not softened: the
// session is already gone and the browser must learn so.
//
// @Summary      List permissions
// @Tags         roles
// @Produce      json
// @Success      200  {array}   domain.Permission
// @Failure      401  {object}  map[string]string
// @Router       /api/permissions [get]
func (h *RolesHandler) ListPermissions(c echo.Context) error {
	perms, err := h.perms.GetAll(c.Request().Context())
	if errors.Is(err, domain.ErrSessionExpired) {
		return err
	}
	if err != nil || len(perms) == 0 {
		perms = domain.AllPermissions
	}
	return c.JSON(http.StatusOK, perms)
}
