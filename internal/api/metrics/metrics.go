// Package metrics defines and registers all custom Prometheus metrics for
// the dashboard API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// TokenRejectionsTotal counts requests rejected by the token validator.
// Label:
//   - reason: "missing" (no cookie or header) or "invalid" (bad signature,
//     malformed, or expired — deliberately not distinguished)
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the token validator.",
	},
	[]string{"reason"},
)

// ── Status report metrics ─────────────────────────────────────────────────────

// StatusReportsTotal counts processed tool status reports.
// Labels:
//   - tool: the reported tool (e.g. "jenkins")
//   - result: "ok", "invalid", or "error"
var StatusReportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_reports_total",
		Help:      "Total number of tool status reports processed, by tool and result.",
	},
	[]string{"tool", "result"},
)

// ReportsDedupTotal counts deduplication decisions on incoming reports.
// Label:
//   - result: "hit" (duplicate, skipped), "miss" (new report), or "error"
var ReportsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_dedup_total",
		Help:      "Total number of report deduplication checks, by result.",
	},
	[]string{"result"},
)

// ReportsQueueDepth tracks the number of reports waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReportsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reports_queue_depth",
		Help:      "Current number of reports pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ReportProcessingDuration measures how long a single report takes to process.
// Label:
//   - tool: the reported tool
var ReportProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_processing_duration_seconds",
		Help:      "Duration of report processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"tool"},
)
