package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
)

const dedupTTL = time.Hour

// ReportDedup provides idempotency checks for tool status reports.
// Key format: report:<tool>:<health>:<unix_timestamp>
type ReportDedup struct {
	client *redis.Client
}

// NewReportDedup creates a ReportDedup wrapping the given Redis client.
func NewReportDedup(client *redis.Client) *ReportDedup {
	return &ReportDedup{client: client}
}

// IsDuplicate reports whether this exact report has already been processed.
func (d *ReportDedup) IsDuplicate(ctx context.Context, tool domain.Tool, health domain.Health, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tool, health, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this report has been processed (expires after dedupTTL).
func (d *ReportDedup) Mark(ctx context.Context, tool domain.Tool, health domain.Health, ts time.Time) error {
	return d.client.Set(ctx, d.key(tool, health, ts), "1", dedupTTL).Err()
}

func (d *ReportDedup) key(tool domain.Tool, health domain.Health, ts time.Time) string {
	return fmt.Sprintf("report:%s:%s:%d", tool, health, ts.Unix())
}
