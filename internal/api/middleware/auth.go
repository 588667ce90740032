package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dbaops/inventory-api/internal/api/metrics"
	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/core/ports"
)

// Auth is the sole admission-control point: every request except the
// public whitelist and CORS pre-flights must carry a Bearer token that
// resolves in the session store. The token is looked up, never decoded.
// On success the resolved username is attached to the request context
// for downstream handlers.
func Auth(sessions ports.SessionStore, publicPaths ...string) echo.MiddlewareFunc {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}
			if _, ok := public[c.Request().URL.Path]; ok {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return domain.ErrAuthRequired
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_header").Inc()
				return domain.ErrAuthRequired
			}

			sess, err := sessions.Lookup(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				}
				return err
			}

			c.Set("username", sess.Username)
			ctx := domain.WithUsername(c.Request().Context(), sess.Username)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
