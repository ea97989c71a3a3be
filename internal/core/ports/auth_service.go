package ports

import (
	"context"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
)

type AuthService interface {
	// Register creates a new identity with the user role and returns it
	// together with a freshly issued session token.
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	// Login verifies the credentials and returns a session token. Unknown
	// email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser resolves the identity referenced by a validated token.
	CurrentUser(ctx context.Context, id string) (*domain.User, error)
}
