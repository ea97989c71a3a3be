package ports

import (
	"context"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
)

// AuthRepository defines the interface for identity persistence.
// Implementations must treat email as a case-insensitive unique key.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
