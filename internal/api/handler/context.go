package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devops-dashboard/dashboard-api/internal/api/middleware"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and performs a fast-fail check before any service call: a non-empty user
// id proves the middleware ran for this request.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ = c.Get(middleware.CtxRole).(string)
	return userID, role, nil
}
