package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
	"github.com/devops-dashboard/dashboard-api/internal/core/ports"
)

// ReportDispatcher is the interface the handler uses to enqueue reports.
type ReportDispatcher interface {
	Enqueue(report ports.StatusReportInput)
}

// StatusHandler serves tool health snapshots and ingests status reports.
type StatusHandler struct {
	statusService ports.StatusService
	dispatcher    ReportDispatcher
}

func NewStatusHandler(statusService ports.StatusService, dispatcher ReportDispatcher) *StatusHandler {
	return &StatusHandler{statusService: statusService, dispatcher: dispatcher}
}

type statusReportRequest struct {
	Health     string    `json:"health"      validate:"required,oneof=operational degraded down"`
	Message    string    `json:"message"`
	ReportedBy string    `json:"reported_by" validate:"required"`
	CheckedAt  time.Time `json:"checked_at"  validate:"required"`
}

type snapshotResponse struct {
	Tools []domain.ToolStatus `json:"tools"`
}

type alertsResponse struct {
	Alerts []domain.Alert `json:"alerts"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// List handles GET /api/status — the status of every monitored tool.
//
// @Summary      Get the status of all monitored tools
// @Tags         status
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  snapshotResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/status [get]
func (h *StatusHandler) List(c echo.Context) error {
	snapshot, err := h.statusService.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshotResponse{Tools: snapshot})
}

// Get handles GET /api/status/:tool — the status of a single tool.
//
// @Summary      Get the status of one tool
// @Tags         status
// @Produce      json
// @Security     BearerAuth
// @Param        tool  path      string  true  "Tool name"
// @Success      200   {object}  domain.ToolStatus
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/status/{tool} [get]
func (h *StatusHandler) Get(c echo.Context) error {
	status, err := h.statusService.ToolStatus(c.Request().Context(), domain.Tool(c.Param("tool")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

// Report handles PUT /api/status/:tool — enqueues a status report, returns 202.
//
// @Summary      Submit a tool status report
// @Tags         status
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tool  path      string               true  "Tool name"
// @Param        body  body      statusReportRequest  true  "Status report"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/status/{tool} [put]
func (h *StatusHandler) Report(c echo.Context) error {
	tool := c.Param("tool")
	if !domain.ValidTool(tool) {
		return domain.ErrToolNotFound
	}

	var req statusReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(ports.StatusReportInput{
		Tool:       domain.Tool(tool),
		Health:     domain.Health(req.Health),
		Message:    req.Message,
		ReportedBy: req.ReportedBy,
		CheckedAt:  req.CheckedAt,
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "report accepted"})
}

// Alerts handles GET /api/alerts — alerts derived from the current snapshot.
//
// @Summary      Get active alerts
// @Tags         status
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  alertsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/alerts [get]
func (h *StatusHandler) Alerts(c echo.Context) error {
	alerts, err := h.statusService.Alerts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alertsResponse{Alerts: alerts})
}
