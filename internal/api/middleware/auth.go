package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/devops-dashboard/dashboard-api/internal/api/metrics"
	"github.com/devops-dashboard/dashboard-api/internal/api/session"
)

// Context keys set by Auth for downstream handlers and the RBAC middleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// rejectionMessage is deliberately the same for a missing, malformed,
// tampered, and expired token so callers learn nothing about which check
// failed.
const rejectionMessage = "not authorized to access this route"

// Auth validates the session token and injects the identity claims into the
// request context. The token is read from the session cookie first, then
// from the Authorization header; the cookie wins when both are present.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, rejectionMessage)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, rejectionMessage)
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, rejectionMessage)
			}

			c.Set(CtxUserID, sub)
			c.Set(CtxRole, claims["role"])

			return next(c)
		}
	}
}

// extractToken resolves the bearer token for a request: session cookie
// first, Authorization header second.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
