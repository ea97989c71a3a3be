package domain

import (
	"errors"
	"time"
)

// Tool identifies one of the monitored DevOps tools.
type Tool string

const (
	ToolJenkins    Tool = "jenkins"
	ToolGitHub     Tool = "github"
	ToolDocker     Tool = "docker"
	ToolKubernetes Tool = "kubernetes"
	ToolTerraform  Tool = "terraform"
	ToolSonarQube  Tool = "sonarqube"
)

// Tools lists every monitored tool in presentation order. Aggregated
// snapshots always cover this full set.
var Tools = []Tool{
	ToolJenkins,
	ToolGitHub,
	ToolDocker,
	ToolKubernetes,
	ToolTerraform,
	ToolSonarQube,
}

// Health is the shared health state reported for every tool.
type Health string

const (
	HealthOperational Health = "operational"
	HealthDegraded    Health = "degraded"
	HealthDown        Health = "down"
	HealthUnknown     Health = "unknown"
)

var ErrToolNotFound = errors.New("unknown tool")
var ErrStatusNotFound = errors.New("status not found")

// ValidTool reports whether name identifies a monitored tool.
func ValidTool(name string) bool {
	for _, t := range Tools {
		if t == Tool(name) {
			return true
		}
	}
	return false
}

// ValidHealth reports whether h is a reportable health state. Unknown is
// excluded: it is synthesized for tools that were never reported, never
// accepted from agents.
func ValidHealth(h Health) bool {
	switch h {
	case HealthOperational, HealthDegraded, HealthDown:
		return true
	}
	return false
}

// ToolStatus is the current health record for a single tool.
type ToolStatus struct {
	Tool       Tool      `json:"tool"`
	Health     Health    `json:"health"`
	Message    string    `json:"message,omitempty"`
	ReportedBy string    `json:"reported_by,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Unreported returns the placeholder status for a tool with no stored
// report yet.
func Unreported(tool Tool) ToolStatus {
	return ToolStatus{Tool: tool, Health: HealthUnknown}
}

// AlertSeverity classifies a derived alert.
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is derived from a non-operational tool status. Alerts are never
// stored; they are a pure projection of the current snapshot.
type Alert struct {
	Tool      Tool          `json:"tool"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	CheckedAt time.Time     `json:"checked_at"`
}

// AlertFor maps a tool status to an alert, or false when the status does
// not warrant one.
func AlertFor(s ToolStatus) (Alert, bool) {
	var severity AlertSeverity
	switch s.Health {
	case HealthDegraded:
		severity = SeverityWarning
	case HealthDown:
		severity = SeverityCritical
	default:
		return Alert{}, false
	}

	msg := s.Message
	if msg == "" {
		msg = string(s.Tool) + " is " + string(s.Health)
	}
	return Alert{
		Tool:      s.Tool,
		Severity:  severity,
		Message:   msg,
		CheckedAt: s.CheckedAt,
	}, true
}
