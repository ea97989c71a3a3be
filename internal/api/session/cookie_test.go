package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func recordedCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected exactly one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestManager_Attach(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewManager(30*24*time.Hour, false).Attach(c, "tok123")

	cookie := recordedCookie(t, rec)
	if cookie.Name != CookieName || cookie.Value != "tok123" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("cookie must be HttpOnly")
	}
	if cookie.Secure {
		t.Fatalf("cookie must not be Secure outside production")
	}
	if cookie.Path != "/" {
		t.Fatalf("unexpected path %q", cookie.Path)
	}
	if cookie.MaxAge != int((30 * 24 * time.Hour).Seconds()) {
		t.Fatalf("cookie lifetime must match the token window, got %d", cookie.MaxAge)
	}
}

func TestManager_AttachSecureInProduction(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewManager(time.Hour, true).Attach(c, "tok123")

	if !recordedCookie(t, rec).Secure {
		t.Fatalf("cookie must be Secure in production")
	}
}

func TestManager_Clear(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	NewManager(time.Hour, false).Clear(c)

	cookie := recordedCookie(t, rec)
	if cookie.Value != "" {
		t.Fatalf("cleared cookie must be empty, got %q", cookie.Value)
	}
	if cookie.MaxAge >= 0 {
		t.Fatalf("cleared cookie must expire immediately, got MaxAge %d", cookie.MaxAge)
	}
	if !cookie.Expires.Before(time.Now()) {
		t.Fatalf("cleared cookie must carry a past expiry")
	}
}
