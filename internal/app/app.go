package app

import (
	"fmt"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/database"
	"github.com/event-content-pipeline/internal/generator"
	"github.com/event-content-pipeline/internal/repository"
	"github.com/event-content-pipeline/internal/revalidate"
	"github.com/event-content-pipeline/internal/service"
	"github.com/rs/zerolog"
)

// App wires the database, repositories and services shared by the server and the CLI
type App struct {
	Config   *config.Config
	DB       *database.DB
	Services *service.Services
}

// New connects to the database and builds the service graph. Migrations are not run.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	repos := repository.New(db)
	gen := generator.NewOpenAIClient(cfg.Generator)
	rv := revalidate.New(cfg.Revalidate, log)

	return &App{
		Config:   cfg,
		DB:       db,
		Services: service.NewServices(repos, gen, rv, cfg, log),
	}, nil
}

// Migrate applies all pending migrations
func (a *App) Migrate() error {
	return a.DB.RunMigrations(a.Config.Database.MigrationsPath)
}

// MigrateDown rolls back the last migration
func (a *App) MigrateDown() error {
	return a.DB.MigrateDown(a.Config.Database.MigrationsPath)
}

// MigrateTo moves the schema to the given version
func (a *App) MigrateTo(version uint) error {
	return a.DB.MigrateToVersion(a.Config.Database.MigrationsPath, version)
}

// Pipeline returns the content generation service
func (a *App) Pipeline() service.PipelineService {
	return a.Services.Pipeline
}

// Close releases the database connection pool
func (a *App) Close() error {
	return a.DB.Close()
}
