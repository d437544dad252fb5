// Package middleware gates the console's routes on the auth store's state.
// There is no per-request token verification here: the gateway holds the
// session itself, and the backend is the authority on the token it issued.
package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/store"
)

// RequireSession rejects requests made while no user is authenticated. The
// central error handler turns the rejection into a 401 with a forced
// navigation to the root path.
func RequireSession(auth *store.AuthStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if auth.Snapshot().User == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// RequireAdmin additionally gates on the admin role. The check is the same
// single string comparison the view shell uses to hide the management tabs.
func RequireAdmin(auth *store.AuthStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := auth.Snapshot()
			if snap.User == nil {
				return domain.ErrUnauthenticated
			}
			if !snap.User.IsAdmin() {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
