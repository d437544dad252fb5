package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/panelworks/admin-console/docs"
	"github.com/panelworks/admin-console/internal/api/handler"
	"github.com/panelworks/admin-console/internal/api/middleware"
	"github.com/panelworks/admin-console/internal/core/ports"
	"github.com/panelworks/admin-console/internal/core/query"
	"github.com/panelworks/admin-console/internal/core/store"
)

// Deps carries everything the router composes. Redis may be nil when the
// file token store is in use.
type Deps struct {
	Auth    *store.AuthStore
	Admin   *store.AdminStore
	Perms   ports.PermissionAPI
	Backend handler.BackendPinger
	Queries *query.Cache
	Redis   *redis.Client
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	usersHandler := handler.NewUsersHandler(deps.Admin, deps.Queries)
	rolesHandler := handler.NewRolesHandler(deps.Admin, deps.Perms, deps.Queries)
	dashboardHandler := handler.NewDashboardHandler(deps.Admin, deps.Queries)

	requireSession := middleware.RequireSession(deps.Auth)
	requireAdmin := middleware.RequireAdmin(deps.Auth)

	// --- Auth routes (open) ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/signup", authHandler.Signup)
	apiGroup.POST("/auth/logout", authHandler.Logout)
	apiGroup.GET("/session", authHandler.Session)

	// --- Management routes (admin only) ---
	admin := apiGroup.Group("", requireSession, requireAdmin)
	admin.GET("/users", usersHandler.List)
	admin.POST("/users", usersHandler.Create)
	admin.PATCH("/users/:id", usersHandler.Update)
	admin.DELETE("/users/:id", usersHandler.Delete)

	admin.GET("/roles", rolesHandler.List)
	admin.POST("/roles", rolesHandler.Create)
	admin.PATCH("/roles/:id", rolesHandler.Update)
	admin.DELETE("/roles/:id", rolesHandler.Delete)
	admin.POST("/roles/:id/permissions", rolesHandler.UpdatePermissions)
	admin.GET("/permissions", rolesHandler.ListPermissions)

	admin.GET("/dashboard/stats", dashboardHandler.Stats)

	// --- Health probes and operational surfaces (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Backend, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
