package service

import (
	"context"
	"errors"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/content"
	"github.com/event-content-pipeline/internal/location"
	"github.com/event-content-pipeline/internal/models"
	"github.com/event-content-pipeline/internal/repository"
	"github.com/event-content-pipeline/internal/revalidate"
	"github.com/event-content-pipeline/internal/validation"
	"github.com/rs/zerolog"
)

// ErrGeneratorNotConfigured is returned by Generate when no API key is configured
var ErrGeneratorNotConfigured = errors.New("generation API key is not configured")

// PipelineService defines the content generation operations
type PipelineService interface {
	Generate(ctx context.Context, batchSize int) (*models.GenerateResult, error)
	Cleanup(ctx context.Context) (*models.CleanupResult, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// ArticleGenerator turns one event payload into article content
type ArticleGenerator interface {
	Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, error)
}

// Services holds all service interfaces
type Services struct {
	Pipeline PipelineService
}

// Option customizes service construction
type Option func(*pipelineService)

// WithClock replaces time.Now, used to decide which events are in the past
func WithClock(now func() time.Time) Option {
	return func(s *pipelineService) { s.now = now }
}

// WithExtractor replaces the built-in location gazetteer
func WithExtractor(x *location.Extractor) Option {
	return func(s *pipelineService) { s.locator = x }
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	gen ArticleGenerator,
	rv revalidate.Revalidator,
	cfg *config.Config,
	log zerolog.Logger,
	opts ...Option,
) *Services {
	svc := &pipelineService{
		repos:       repos,
		generator:   gen,
		revalidator: rv,
		cfg:         cfg,
		loc:         cfg.Pipeline.Location(),
		locator:     location.NewExtractor(),
		sanitizer:   content.NewSanitizer(),
		validator:   validation.NewValidator(),
		now:         time.Now,
		log:         log.With().Str("service", "pipeline").Logger(),
	}
	for _, opt := range opts {
		opt(svc)
	}

	return &Services{
		Pipeline: svc,
	}
}
