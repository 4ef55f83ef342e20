package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/luestilo/retail-api/internal/core/domain"
)

func runRoleGuard(t *testing.T, user *domain.User, next echo.HandlerFunc, roles ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(UserContextKey, user)
	}

	mw := RequireRole(roles...)
	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireRole_Allows(t *testing.T) {
	called := false
	rec := runRoleGuard(t, &domain.User{Email: "a@x.com", Role: domain.RoleAdmin}, func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}, domain.RoleAdmin)

	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	rec := runRoleGuard(t, &domain.User{Email: "a@x.com", Role: domain.RoleUser}, func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	}, domain.RoleAdmin)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_NoUser(t *testing.T) {
	rec := runRoleGuard(t, nil, func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	}, domain.RoleAdmin)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
