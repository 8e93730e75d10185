package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/invensys/inventory-api/internal/core/domain"
)

func contextWithIdentity(e *echo.Echo, rec *httptest.ResponseRecorder, id *Identity) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(identityKey, *id)
	}
	return c
}

func TestRequireRole_Allowed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithIdentity(e, rec, &Identity{Username: "alice", Roles: []string{domain.RoleUser, domain.RoleAdmin}})

	called := false
	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithIdentity(e, rec, &Identity{Username: "bob", Roles: []string{domain.RoleUser}})

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithIdentity(e, rec, nil)

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
