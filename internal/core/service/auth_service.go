package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
	"github.com/devops-dashboard/dashboard-api/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// AuthService implements registration, login, and identity resolution.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// TokenTTL returns the validity window tokens are issued with. The session
// cookie lifetime is derived from it.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register creates a new identity and logs it in. Every self-registered
// identity gets the user role; admin accounts are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, domain.ErrMissingFields
	}

	user, err := NewUser(name, email, password, domain.RoleUser)
	if err != nil {
		return "", nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login verifies the credentials and issues a session token. A missing
// account and a wrong password both map to ErrInvalidCredentials so the
// response cannot be used to enumerate registered emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CurrentUser resolves the identity referenced by an already validated token.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// issueToken mints an HS256 JWT asserting the identity's id and role. The
// token is self-contained: nothing is stored server-side, so it stays valid
// until exp regardless of later logouts.
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// NewUser builds an unsaved identity with a bcrypt-hashed password and a
// normalized email. Shared with the admin seed command, which is the only
// caller passing the admin role.
func NewUser(name, email, password, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.User{
		Name:         name,
		Email:        NormalizeEmail(email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail lowercases and trims an email so lookups are
// case-insensitive exact matches on the stored form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
