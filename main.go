// File: rosterly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rosterly/config"
	"rosterly/database"
	agentRepo "rosterly/database/repository/agent"
	timetableRepo "rosterly/database/repository/timetable"
	"rosterly/handlers"
	"rosterly/middleware"
	"rosterly/routes"
	"rosterly/services/intelligence"
	"rosterly/services/roster"
	"rosterly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	agents := agentRepo.NewMongoAgentRepo()
	timetables := timetableRepo.NewMongoTimetableRepo()

	// services.
	rosterService := &roster.DefaultRosterService{
		AgentRepo:     agents,
		TimetableRepo: timetables,
		Cache:         utils.GetCacheClient(),
		Engine:        roster.NewGreedyScheduler(),
	}
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		rosterService.AIEngine = intelligence.NewAIScheduler(key)
	} else {
		logger.Sugar().Info("main: no Gemini API key configured, AI strategy disabled")
	}

	rosterHandler := handlers.NewRosterHandler(rosterService, logger)

	routes.RegisterHealthRoute(router)
	routes.RegisterMetricsRoute(router)
	routes.RegisterAgentRoutes(router, rosterHandler)
	routes.RegisterRosterRoutes(router, rosterHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
