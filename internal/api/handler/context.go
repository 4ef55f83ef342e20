package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luestilo/retail-api/internal/api/middleware"
	"github.com/luestilo/retail-api/internal/core/domain"
)

// currentUser extracts the user injected by the CurrentUser middleware. Its
// presence proves the resolver ran; a protected handler reached without it
// is a wiring bug, answered with the same generic 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return user, nil
}
