package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devops-dashboard/dashboard-api/internal/api/metrics"
	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
	"github.com/devops-dashboard/dashboard-api/internal/core/ports"
)

// ReportDedup abstracts the idempotency store (Redis).
type ReportDedup interface {
	IsDuplicate(ctx context.Context, tool domain.Tool, health domain.Health, ts time.Time) (bool, error)
	Mark(ctx context.Context, tool domain.Tool, health domain.Health, ts time.Time) error
}

type statusService struct {
	repo  ports.StatusRepository
	dedup ReportDedup
	log   zerolog.Logger
}

// NewStatusService returns a StatusService implementation.
func NewStatusService(repo ports.StatusRepository, dedup ReportDedup, log zerolog.Logger) ports.StatusService {
	return &statusService{repo: repo, dedup: dedup, log: log}
}

// Process validates, deduplicates, and persists a single status report.
func (s *statusService) Process(ctx context.Context, in ports.StatusReportInput) error {
	start := time.Now()

	if !domain.ValidTool(string(in.Tool)) {
		metrics.StatusReportsTotal.WithLabelValues(string(in.Tool), "invalid").Inc()
		return domain.ErrToolNotFound
	}
	if !domain.ValidHealth(in.Health) {
		metrics.StatusReportsTotal.WithLabelValues(string(in.Tool), "invalid").Inc()
		return fmt.Errorf("process report: unreportable health %q", in.Health)
	}

	// Idempotency check — silently skip replayed reports.
	isDup, err := s.dedup.IsDuplicate(ctx, in.Tool, in.Health, in.CheckedAt)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", string(in.Tool)).Msg("dedup check failed, processing anyway")
		metrics.ReportsDedupTotal.WithLabelValues("error").Inc()
	} else if isDup {
		s.log.Debug().Str("tool", string(in.Tool)).Str("health", string(in.Health)).Msg("duplicate report skipped")
		metrics.ReportsDedupTotal.WithLabelValues("hit").Inc()
		return nil
	} else {
		metrics.ReportsDedupTotal.WithLabelValues("miss").Inc()
	}

	status := domain.ToolStatus{
		Tool:       in.Tool,
		Health:     in.Health,
		Message:    in.Message,
		ReportedBy: in.ReportedBy,
		CheckedAt:  in.CheckedAt,
		UpdatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, status); err != nil {
		metrics.StatusReportsTotal.WithLabelValues(string(in.Tool), "error").Inc()
		return fmt.Errorf("process report: %w", err)
	}

	if err := s.dedup.Mark(ctx, in.Tool, in.Health, in.CheckedAt); err != nil {
		s.log.Warn().Err(err).Str("tool", string(in.Tool)).Msg("dedup mark failed")
	}

	metrics.StatusReportsTotal.WithLabelValues(string(in.Tool), "ok").Inc()
	metrics.ReportProcessingDuration.WithLabelValues(string(in.Tool)).Observe(time.Since(start).Seconds())
	return nil
}

// Snapshot returns a status for every monitored tool in canonical order.
// Tools without a stored report come back as unknown.
func (s *statusService) Snapshot(ctx context.Context) ([]domain.ToolStatus, error) {
	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	byTool := make(map[domain.Tool]domain.ToolStatus, len(stored))
	for _, st := range stored {
		byTool[st.Tool] = st
	}

	out := make([]domain.ToolStatus, 0, len(domain.Tools))
	for _, tool := range domain.Tools {
		if st, ok := byTool[tool]; ok {
			out = append(out, st)
		} else {
			out = append(out, domain.Unreported(tool))
		}
	}
	return out, nil
}

// ToolStatus returns the current status of a single tool, synthesizing an
// unknown placeholder when nothing was reported yet.
func (s *statusService) ToolStatus(ctx context.Context, tool domain.Tool) (*domain.ToolStatus, error) {
	if !domain.ValidTool(string(tool)) {
		return nil, domain.ErrToolNotFound
	}

	st, err := s.repo.FindByTool(ctx, tool)
	if err == domain.ErrStatusNotFound {
		unreported := domain.Unreported(tool)
		return &unreported, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tool status: %w", err)
	}
	return st, nil
}

// Alerts projects the current snapshot onto derived alerts. Nothing is
// stored: an alert exists exactly as long as its tool is degraded or down.
func (s *statusService) Alerts(ctx context.Context) ([]domain.Alert, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.Alert, 0)
	for _, st := range snapshot {
		if alert, ok := domain.AlertFor(st); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts, nil
}
