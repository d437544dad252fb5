package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/panelworks/admin-console/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_SessionExpiredForcesRoot(t *testing.T) {
	code, resp := handleError(t, domain.ErrSessionExpired)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Error != "session expired" || resp.Redirect != "/" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestErrorHandler_UnauthenticatedForcesRoot(t *testing.T) {
	code, resp := handleError(t, domain.ErrUnauthenticated)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Redirect != "/" {
		t.Fatalf("expected forced navigation, got %+v", resp)
	}
}

func TestErrorHandler_Backend401IsSessionExpiry(t *testing.T) {
	// A 401 relayed from the backend matches the session-expired mapping
	// through errors.Is, whatever endpoint produced it.
	code, resp := handleError(t, &domain.ServerError{Status: http.StatusUnauthorized, Message: "token expired"})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Error != "session expired" || resp.Redirect != "/" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestErrorHandler_ServerErrorKeepsStatusAndMessage(t *testing.T) {
	code, resp := handleError(t, &domain.ServerError{Status: http.StatusConflict, Message: "email already registered"})
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
	if resp.Error != "email already registered" {
		t.Fatalf("unexpected message: %q", resp.Error)
	}
	if resp.Redirect != "" {
		t.Fatalf("non-401 must not force navigation: %+v", resp)
	}
}

func TestErrorHandler_ForbiddenHasNoRedirect(t *testing.T) {
	code, resp := handleError(t, domain.ErrForbidden)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if resp.Redirect != "" {
		t.Fatalf("forbidden must not force navigation: %+v", resp)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, resp := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Error != "invalid payload" {
		t.Fatalf("unexpected message: %q", resp.Error)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	code, resp := handleError(t, errors.New("pointer dereference three frames down"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal details must not leak: %q", resp.Error)
	}
}
