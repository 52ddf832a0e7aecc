package handlers

import (
	"errors"
	"net/http"

	"rosterly/config"
	"rosterly/models"
	"rosterly/services/roster"
	"rosterly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RosterHandler exposes the scheduling engine over HTTP.
type RosterHandler struct {
	Svc    roster.RosterService
	Logger *zap.Logger
}

func NewRosterHandler(svc roster.RosterService, logger *zap.Logger) *RosterHandler {
	return &RosterHandler{Svc: svc, Logger: logger}
}

// syncKey resolves the per-deployment sync key for a request. The scheduler
// itself is storage agnostic; the key only scopes documents.
func syncKey(c *gin.Context) string {
	if key := c.GetHeader("X-Sync-Key"); key != "" {
		return key
	}
	return config.AppConfig.DefaultSyncKey
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, roster.ErrInvalidMonth):
		utils.JSONError(c, http.StatusBadRequest, "Invalid month", err.Error())
	case errors.Is(err, roster.ErrStaleOverride):
		utils.JSONError(c, http.StatusBadRequest, "Stale override", err.Error())
	case errors.Is(err, roster.ErrAgentNotFound):
		utils.JSONError(c, http.StatusNotFound, "Agent not found", err.Error())
	case errors.Is(err, roster.ErrStrategyUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "Strategy not available", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

// GetTimetableHandler returns the stored timetable for a month, or the empty
// scaffold when nothing has been generated yet.
func (h *RosterHandler) GetTimetableHandler(c *gin.Context) {
	month := c.Param("month")
	tt, err := h.Svc.GetTimetable(c.Request.Context(), syncKey(c), month)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tt)
}

// GenerateHandler runs a scheduling strategy for the month and persists the
// result. Generation always completes with some timetable; gaps are reported,
// not raised.
func (h *RosterHandler) GenerateHandler(c *gin.Context) {
	month := c.Param("month")
	strategy := c.DefaultQuery("strategy", roster.StrategyGreedy)
	if strategy != roster.StrategyGreedy && strategy != roster.StrategyAI {
		utils.JSONError(c, http.StatusBadRequest, "Unknown strategy", strategy)
		return
	}

	resp, err := h.Svc.Generate(c.Request.Context(), syncKey(c), month, strategy)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if resp.Fallback {
		h.Logger.Warn("Generation fell back to empty timetable", zap.String("month", month))
	}
	c.JSON(http.StatusOK, resp)
}

// DirectEditHandler replaces the agent IDs of one slot, bypassing the
// availability checks. Admin-only.
func (h *RosterHandler) DirectEditHandler(c *gin.Context) {
	month := c.Param("month")
	var req models.DirectEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	tt, err := h.Svc.DirectAssignmentEdit(c.Request.Context(), syncKey(c), month, req.Day, req.Slot, req.AgentIDs)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tt)
}

// ViolationsHandler validates the stored timetable so the UI can flag gaps
// and broken rules without the engine ever raising them.
func (h *RosterHandler) ViolationsHandler(c *gin.Context) {
	month := c.Param("month")
	violations, err := h.Svc.Violations(c.Request.Context(), syncKey(c), month)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"violations": violations, "count": len(violations)})
}
