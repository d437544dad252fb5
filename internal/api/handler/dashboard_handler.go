package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panelworks/admin-console/internal/api/metrics"
	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/query"
	"github.com/panelworks/admin-console/internal/core/store"
)

// DashboardHandler derives the overview counters from the admin store.
type DashboardHandler struct {
	admin   *store.AdminStore
	queries *query.Cache
}

func NewDashboardHandler(admin *store.AdminStore, queries *query.Cache) *DashboardHandler {
	return &DashboardHandler{admin: admin, queries: queries}
}

type dashboardStats struct {
	TotalUsers    int `json:"totalUsers"`
	TotalRoles    int `json:"totalRoles"`
	InactiveUsers int `json:"inactiveUsers"`
}

// Stats refreshes both collections and returns the overview counters.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardStats
// @Failure      401  {object}  map[string]string
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.queries.Do(ctx, queryUsers, h.admin.FetchUsers); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "fetch_users").Inc()
		return err
	}
	if err := h.queries.Do(ctx, queryRoles, h.admin.FetchRoles); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("admin", "fetch_roles").Inc()
		return err
	}

	snap := h.admin.Snapshot()
	stats := dashboardStats{
		TotalUsers: len(snap.Users),
		TotalRoles: len(snap.Roles),
	}
	for _, u := range snap.Users {
		if u.Status == domain.StatusInactive {
			stats.InactiveUsers++
		}
	}

	return c.JSON(http.StatusOK, stats)
}
