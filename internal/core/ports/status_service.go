package ports

import (
	"context"
	"time"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
)

// StatusReportInput is the DTO for an agent-submitted status report.
type StatusReportInput struct {
	Tool       domain.Tool
	Health     domain.Health
	Message    string
	ReportedBy string
	CheckedAt  time.Time
}

type StatusService interface {
	// Process deduplicates and persists a single status report. Duplicate
	// reports are skipped silently.
	Process(ctx context.Context, in StatusReportInput) error
	// Snapshot returns the current status of every monitored tool, with
	// unknown placeholders for tools never reported.
	Snapshot(ctx context.Context) ([]domain.ToolStatus, error)
	// ToolStatus returns the current status of one tool.
	ToolStatus(ctx context.Context, tool domain.Tool) (*domain.ToolStatus, error)
	// Alerts derives alerts from the current snapshot.
	Alerts(ctx context.Context) ([]domain.Alert, error)
}
