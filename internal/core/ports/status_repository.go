package ports

import (
	"context"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
)

// StatusRepository persists the current health record per tool.
type StatusRepository interface {
	// Upsert stores status as the current record for its tool, replacing
	// any previous one.
	Upsert(ctx context.Context, status domain.ToolStatus) error
	// FindByTool returns the current record for a tool, or
	// domain.ErrStatusNotFound when the tool was never reported.
	FindByTool(ctx context.Context, tool domain.Tool) (*domain.ToolStatus, error)
	// FindAll returns every stored record, at most one per tool.
	FindAll(ctx context.Context) ([]domain.ToolStatus, error)
}
