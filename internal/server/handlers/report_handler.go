package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/service/alerts"
	"poultryfarm/internal/service/reporting"
)

const dateLayout = "2006-01-02"

// ReportHandler adapts the reporting and alerting services to HTTP.
type ReportHandler struct {
	reports reporting.Reports
	alerts  *alerts.Service
	logger  *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(reports reporting.Reports, alertsSvc *alerts.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, alerts: alertsSvc, logger: logger}
}

// Financial serves the farm's financial report. Optional from/to query
// parameters accept YYYY-MM-DD or RFC 3339 timestamps.
func (h *ReportHandler) Financial(c *gin.Context) {
	query := reporting.FinancialQuery{
		FarmID:   c.Param("id"),
		Detailed: c.Query("detailed") == "true",
	}

	var err error
	if query.From, err = parseDateParam(c.Query("from")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if query.To, err = parseDateParam(c.Query("to")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	report, err := h.reports.Financial(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Health serves the farm's health report.
func (h *ReportHandler) Health(c *gin.Context) {
	report, err := h.reports.Health(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type generateAnalyticsRequest struct {
	Period string `json:"period"`
}

// GenerateAnalytics appends a new metrics snapshot for the farm.
func (h *ReportHandler) GenerateAnalytics(c *gin.Context) {
	var req generateAnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, h.logger, err)
		return
	}

	snapshot, err := h.reports.GenerateAnalytics(c.Request.Context(), c.Param("id"), req.Period)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// ListAnalytics returns the farm's snapshots.
func (h *ReportHandler) ListAnalytics(c *gin.Context) {
	snapshots, err := h.reports.ListAnalytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

// LowStockInventory returns the farm's items at or below threshold.
func (h *ReportHandler) LowStockInventory(c *gin.Context) {
	items, err := h.alerts.LowStockInventory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpcomingFollowUps returns the farm's health records with a follow-up
// date still ahead.
func (h *ReportHandler) UpcomingFollowUps(c *gin.Context) {
	records, err := h.alerts.UpcomingFollowUps(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// LowStockFeeds serves the legacy global feed query.
func (h *ReportHandler) LowStockFeeds(c *gin.Context) {
	threshold, err := strconv.ParseFloat(c.DefaultQuery("threshold", "0"), 64)
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("%w: threshold %q", domain.ErrInvalidInput, c.Query("threshold")))
		return
	}

	items, err := h.alerts.LowStockFeeds(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, raw)
	}
	return &t, nil
}
