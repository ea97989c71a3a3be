// Package session implements the transport side of authentication: carrying
// the session token between browser and server in an HTTP cookie.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the session token. The token validator
// checks it before the Authorization header.
const CookieName = "token"

// Manager writes and clears the session cookie. Secure is enabled in
// production so the cookie only travels over TLS.
type Manager struct {
	ttl    time.Duration
	secure bool
}

func NewManager(ttl time.Duration, secure bool) *Manager {
	return &Manager{ttl: ttl, secure: secure}
}

// Attach sets the session cookie with a lifetime matching the token's
// validity window.
func (m *Manager) Attach(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear overwrites the session cookie with an already-expired empty value.
// This is transport-level sign-out only: a previously captured token stays
// verifiable until its natural expiry, since tokens are stateless and there
// is no server-side revocation list.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
