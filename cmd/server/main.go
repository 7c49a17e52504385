package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/event-content-pipeline/internal/api"
	"github.com/event-content-pipeline/internal/app"
	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/scheduler"
	"github.com/event-content-pipeline/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting event content pipeline server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.NewWithWriter(os.Stdout, cfg.Log.Level, cfg.Log.Format == "pretty")

	if cfg.Generator.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set, generate requests will fail")
	}
	if cfg.Pipeline.Secret == "" {
		log.Warn().Msg("BLOG_TRIGGER_SECRET is not set, the trigger endpoint rejects every call")
	}

	// Initialize database and services
	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer application.Close()

	// Run migrations
	if err := application.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Start scheduled generation
	sched, err := scheduler.New(application.Services.Pipeline, cfg.Pipeline, cfg.Server.WriteTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure scheduler")
	}
	sched.Start()

	// Initialize router
	router := api.NewRouter(application.Services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	sched.Stop(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited gracefully")
}
