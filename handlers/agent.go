package handlers

import (
	"net/http"

	"rosterly/models"
	"rosterly/utils"

	"github.com/gin-gonic/gin"
)

// ListAgentsHandler returns the agent directory for the caller's sync key,
// seeding the default roster on first use.
func (h *RosterHandler) ListAgentsHandler(c *gin.Context) {
	agents, err := h.Svc.ListAgents(c.Request.Context(), syncKey(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

// CreateAgentHandler registers a new agent.
func (h *RosterHandler) CreateAgentHandler(c *gin.Context) {
	var req models.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	agent, err := h.Svc.CreateAgent(c.Request.Context(), syncKey(c), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, agent)
}

// DeleteAgentHandler removes an agent from the directory.
func (h *RosterHandler) DeleteAgentHandler(c *gin.Context) {
	if err := h.Svc.DeleteAgent(c.Request.Context(), syncKey(c), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ToggleUnavailabilityHandler flips one (day, slot) unavailability entry for
// an agent. Affects future generations only: an already published timetable
// is never edited retroactively.
func (h *RosterHandler) ToggleUnavailabilityHandler(c *gin.Context) {
	var req models.ToggleUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	agent, err := h.Svc.ToggleUnavailability(c.Request.Context(), syncKey(c), c.Param("id"), req.Month, req.Day, req.Slot)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}
