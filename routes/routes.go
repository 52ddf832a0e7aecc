package routes

import (
	"net/http"

	"rosterly/handlers"
	"rosterly/metrics"
	"rosterly/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAgentRoutes registers agent directory endpoints.
func RegisterAgentRoutes(r *gin.Engine, h *handlers.RosterHandler) {
	api := r.Group("/api/agents")
	{
		api.GET("", h.ListAgentsHandler)
		api.POST("/:id/unavailability", h.ToggleUnavailabilityHandler)

		// Directory mutations beyond self-service toggles are admin-only.
		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("", h.CreateAgentHandler)
		admin.DELETE("/:id", h.DeleteAgentHandler)
	}
}

// RegisterRosterRoutes registers the scheduling endpoints.
func RegisterRosterRoutes(r *gin.Engine, h *handlers.RosterHandler) {
	api := r.Group("/api/roster")
	{
		api.GET("/:month", h.GetTimetableHandler)
		api.GET("/:month/violations", h.ViolationsHandler)
		api.POST("/:month/generate", h.GenerateHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.PUT("/:month/slot", h.DirectEditHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Rosterly"})
	})
}

// RegisterMetricsRoute exposes the Prometheus registry.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}
