package repository

import (
	"context"
	"errors"
	"time"

	"github.com/event-content-pipeline/internal/database"
	"github.com/event-content-pipeline/internal/models"
)

var (
	// ErrAlreadyProcessed means another run already wrote a marker for the event
	ErrAlreadyProcessed = errors.New("event already processed")
	// ErrSlugTaken means the article slug collided with an existing article
	ErrSlugTaken = errors.New("article slug already exists")
)

// EligibleFilter selects events that can be turned into articles
type EligibleFilter struct {
	From    time.Time // events starting before this day are excluded
	Exclude []string  // event ids that already have a marker
	Limit   int
}

// EventRepository reads events. The pipeline never writes them.
type EventRepository interface {
	ListEligible(ctx context.Context, filter EligibleFilter) ([]*models.Event, error)
	CountEligible(ctx context.Context, from time.Time) (int, error)
}

// ArticleRepository defines the interface for generated article operations
type ArticleRepository interface {
	// CreateWithMarker inserts the article and its processed marker in one transaction
	CreateWithMarker(ctx context.Context, article *models.Article, marker *models.ProcessedEvent) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]models.ArticleSummary, error)
	// DeleteAllWithMarkers removes every marker and article, returning the article count
	DeleteAllWithMarkers(ctx context.Context) (int, error)
}

// MarkerRepository defines the interface for processed event markers
type MarkerRepository interface {
	ProcessedEventIDs(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Event   EventRepository
	Article ArticleRepository
	Marker  MarkerRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Event:   NewEventRepo(db),
		Article: NewArticleRepo(db),
		Marker:  NewMarkerRepo(db),
	}
}
