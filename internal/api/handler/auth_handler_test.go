package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devops-dashboard/dashboard-api/internal/api/middleware"
	"github.com/devops-dashboard/dashboard-api/internal/api/session"
	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	currentFn  func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return s.currentFn(ctx, id)
}

func newAuthTestEnv() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newTestSession() *session.Manager {
	return session.NewManager(time.Hour, false)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatalf("expected session cookie in response")
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newAuthTestEnv()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (string, *domain.User, error) {
			if name != "Ann" || email != "ann@x.com" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return "tok123", &domain.User{ID: "1", Name: name, Email: email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub, newTestSession())

	body := strings.NewReader(`{"name":"Ann","email":"ann@x.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["name"] != "Ann" || user["role"] != domain.RoleUser {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	// The hashed password must never appear in a response.
	if _, present := user["password_hash"]; present {
		t.Fatalf("password hash leaked into response")
	}

	cookie := sessionCookie(t, rec)
	if cookie.Value != "tok123" || !cookie.HttpOnly {
		t.Fatalf("unexpected session cookie: %+v", cookie)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	e := newAuthTestEnv()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, newTestSession())

	body := strings.NewReader(`{"name":"Ann","email":"ann@x.com","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := newAuthTestEnv()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, newTestSession())

	body := strings.NewReader(`{"name":"Ann","email":"ann@x.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no session cookie on failed registration")
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newAuthTestEnv()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "tok123", &domain.User{ID: "1", Name: "Ann", Email: email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub, newTestSession())

	body := strings.NewReader(`{"email":"ann@x.com","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok123" {
		t.Fatalf("expected token in body, got %v", resp["token"])
	}
	if sessionCookie(t, rec).Value != "tok123" {
		t.Fatalf("expected token in cookie")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newAuthTestEnv()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, newTestSession())

	body := strings.NewReader(`{"email":"ann@x.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newAuthTestEnv()
	handler := NewAuthHandler(&stubAuthService{}, newTestSession())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookie(t, rec)
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired empty cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newAuthTestEnv()
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "user-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.User{ID: id, Name: "Ann", Email: "ann@x.com", Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub, newTestSession())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "user-1")
	c.Set(middleware.CtxRole, domain.RoleUser)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, _ := resp["user"].(map[string]any)
	if user["id"] != "user-1" || user["email"] != "ann@x.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Me_WithoutClaims(t *testing.T) {
	e := newAuthTestEnv()
	handler := NewAuthHandler(&stubAuthService{}, newTestSession())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
