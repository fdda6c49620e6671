package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jurimetrics/app"
	"jurimetrics/domain/core"
	"jurimetrics/domain/report"
	"jurimetrics/internal/baseline"
	"jurimetrics/internal/logging"
	"jurimetrics/ports"
)

// Handlers binds the report pipeline to HTTP.
type Handlers struct {
	reports    *app.ReportService
	baselines  *baseline.Service
	formatters map[string]ports.ReportFormatter
	log        *logging.Logger
}

// NewHandlers creates the handler set. formatters maps the export format
// query value ("text", "html", "xlsx") to its renderer.
func NewHandlers(reports *app.ReportService, baselines *baseline.Service, formatters map[string]ports.ReportFormatter, log *logging.Logger) *Handlers {
	return &Handlers{
		reports:    reports,
		baselines:  baselines,
		formatters: formatters,
		log:        log,
	}
}

// Health reports process liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

type reportRequest struct {
	JurisdictionID string `json:"jurisdiction_id" binding:"required"`
	ReferenceDate  string `json:"reference_date,omitempty"` // RFC 3339 date; defaults to now
}

// GenerateReport runs the full pipeline for one judge.
func (h *Handlers) GenerateReport(c *gin.Context) {
	judgeID, err := core.ParseJudgeID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid judge ID"})
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	referenceDate := time.Now().UTC()
	if req.ReferenceDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReferenceDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reference_date must be YYYY-MM-DD"})
			return
		}
		referenceDate = parsed
	}

	rep, err := h.reports.GenerateReport(c.Request.Context(), judgeID, core.JurisdictionID(req.JurisdictionID), referenceDate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// ExportReport regenerates the report and renders it in the requested format.
func (h *Handlers) ExportReport(c *gin.Context) {
	judgeID, err := core.ParseJudgeID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid judge ID"})
		return
	}

	format := c.DefaultQuery("format", "text")
	formatter, ok := h.formatters[format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown export format %q", format)})
		return
	}

	jurisdictionID := core.JurisdictionID(c.Query("jurisdiction_id"))
	rep, err := h.reports.GenerateReport(c.Request.Context(), judgeID, jurisdictionID, time.Now().UTC())
	if err != nil {
		h.writeError(c, err)
		return
	}

	payload, err := formatter.Format(rep)
	if err != nil {
		h.log.Error("format report as %s: %v", format, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export rendering failed"})
		return
	}

	if format == "xlsx" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="judge-%s-report.xlsx"`, judgeID))
	}
	c.Data(http.StatusOK, formatter.ContentType(), payload)
}

// AugmentedAnalytics returns the legacy percentage analytics with AI
// augmentation applied when a provider is configured.
func (h *Handlers) AugmentedAnalytics(c *gin.Context) {
	judgeID, err := core.ParseJudgeID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid judge ID"})
		return
	}

	analytics, err := h.reports.GenerateAugmentedAnalytics(c.Request.Context(), judgeID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// GetBaseline returns the peer baseline for a scope, computing it on a cold
// cache.
func (h *Handlers) GetBaseline(c *gin.Context) {
	scope := report.BaselineScope(c.Param("scope"))
	if scope != report.ScopeJurisdiction && scope != report.ScopeCourt {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be jurisdiction or court"})
		return
	}

	b, err := h.baselines.GetBaseline(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNoCases):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no cases on record for this judge"})
	case errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrJudgeNotFound),
		errors.Is(err, core.ErrBaselineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrBaselineUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
