package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/luestilo/retail-api/internal/api/metrics"
	"github.com/luestilo/retail-api/internal/core/ports"
	"github.com/luestilo/retail-api/internal/core/token"
)

// UserContextKey is where the resolver stores the authenticated *domain.User.
const UserContextKey = "user"

// unauthenticated is the single 401 returned on every resolver failure, so
// the response never reveals which check failed.
func unauthenticated(reason string) error {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
}

// CurrentUser resolves the bearer token on each request to a full user
// record and injects it into the Echo context. The header must be exactly
// "Bearer <token>"; the token's subject claim is looked up by email. Nothing
// is cached across requests.
func CurrentUser(verifier *token.Verifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthenticated("missing_header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return unauthenticated("bad_scheme")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil || claims.Subject == "" {
				return unauthenticated("invalid_token")
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				// A cryptographically valid token whose subject matches no
				// user is still treated as unauthenticated.
				return unauthenticated("unknown_subject")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
