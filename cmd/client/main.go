package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/textsense/textsense-client/internal/adminlog"
	"github.com/textsense/textsense-client/internal/api"
	"github.com/textsense/textsense-client/internal/config"
	"github.com/textsense/textsense-client/internal/health"
	"github.com/textsense/textsense-client/internal/models"
	"github.com/textsense/textsense-client/internal/moderation"
	"github.com/textsense/textsense-client/internal/notifications"
	"github.com/textsense/textsense-client/internal/submission"
	"github.com/textsense/textsense-client/internal/threads"
)

// The demo boots with one comment thread and one chat conversation,
// matching the reference UI's fixed demo content.
var seedThreads = []models.Thread{
	{ID: "post-1", Title: "Sunset over the bay", Surface: models.SurfaceComment},
	{ID: "chat-alex", Title: "Alex", Surface: models.SurfaceChat},
}

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting TextSense demo client")

	// Initialize the thread store with the demo content
	store, err := threads.NewStore(seedThreads)
	if err != nil {
		logrus.Fatalf("Failed to initialize thread store: %v", err)
	}

	// Shared notification slot and submission metrics
	notifier := notifications.NewCenter(cfg.NotificationTTL)
	metrics := submission.NewMetrics()

	// Moderation gate and admin log clients
	gate := moderation.NewClient(cfg.ModerationURL, cfg.ModerationTimeout)
	logs := adminlog.NewCache(cfg.ModerationURL, cfg.AdminLogLimit, cfg.ModerationTimeout)

	// One submission controller per thread surface
	controllers := make(map[string]*submission.Controller, len(seedThreads))
	for _, t := range seedThreads {
		controllers[t.ID] = submission.NewController(t.ID, t.Surface, gate, store, notifier, metrics)
	}

	// Scheduled backend health probe
	healthService := health.NewService(cfg, notifier)
	if err := healthService.Start(); err != nil {
		logrus.Fatalf("Failed to start health probe: %v", err)
	}
	defer healthService.Stop()

	// Set up HTTP server for the demo surface
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.NewServer(cfg, store, controllers, notifier, logs, metrics).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
