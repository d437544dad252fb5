package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panelworks/admin-console/internal/core/domain"
	"github.com/panelworks/admin-console/internal/core/store"
)

// AuthHandler drives the auth store from the browser shell.
type AuthHandler struct {
	auth *store.AuthStore
}

func NewAuthHandler(auth *store.AuthStore) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

type sessionResponse struct {
	User *domain.AuthUser `json:"user"`
}

// Login authenticates against the backend and opens the session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{User: h.auth.Snapshot().User})
}

// Signup creates an account and opens the session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.Signup(c.Request().Context(), req.Email, req.Password, req.Name, req.IsAdmin); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{User: h.auth.Snapshot().User})
}

// Logout ends the session. Always succeeds; there is no server round-trip.
//
// @Summary      Log out
// @Tags         auth
// @Success      204  "session cleared"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.auth.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Session returns the current identity, or 401 with a forced navigation to
// the root path when none is active. A session torn down by a background 401
// is reported as expired exactly once; after that the answer is the plain
// unauthenticated one.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	snap := h.auth.Snapshot()
	if snap.User == nil {
		if h.auth.ConsumeRedirect() {
			return domain.ErrSessionExpired
		}
		return domain.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, sessionResponse{User: snap.User})
}
