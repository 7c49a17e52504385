package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/event-content-pipeline/internal/database"
	"github.com/event-content-pipeline/internal/models"
	"github.com/lib/pq"
)

const (
	uniqueViolationCode   = "23505"
	slugConstraint        = "blog_articles_slug_key"
	eventMarkerConstraint = "processed_events_event_id_key"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// CreateWithMarker inserts the article and its marker atomically.
// A concurrent run that already marked the event surfaces as ErrAlreadyProcessed
// and leaves no article behind.
func (r *articleRepo) CreateWithMarker(ctx context.Context, article *models.Article, marker *models.ProcessedEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO blog_articles (
			id, title, slug, excerpt, content, meta_title, meta_description, keywords, tags,
			read_time, country, city, category, event_id, featured_image, article_type, status,
			published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`,
		article.ID, article.Title, article.Slug, article.Excerpt, article.Content,
		article.MetaTitle, article.MetaDescription, pq.Array(nonNil(article.Keywords)), pq.Array(nonNil(article.Tags)),
		article.ReadTime, article.Country, article.City, nullString(article.Category), article.EventID,
		article.FeaturedImage, article.ArticleType, article.Status,
		article.PublishedAt, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, slugConstraint) {
			return ErrSlugTaken
		}
		return fmt.Errorf("insert article: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO processed_events (id, event_id, article_id, processed_at) VALUES ($1, $2, $3, $4)`,
		marker.ID, marker.EventID, marker.ArticleID, marker.ProcessedAt,
	)
	if err != nil {
		if isUniqueViolation(err, eventMarkerConstraint) {
			return ErrAlreadyProcessed
		}
		return fmt.Errorf("insert marker: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit article: %w", err)
	}
	return nil
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM blog_articles WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blog_articles").Scan(&count)
	return count, err
}

// Recent returns the newest articles first
func (r *articleRepo) Recent(ctx context.Context, limit int) ([]models.ArticleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, slug, country, city, created_at
		FROM blog_articles ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.ArticleSummary{}
	for rows.Next() {
		var s models.ArticleSummary
		var city sql.NullString
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Country, &city, &s.CreatedAt); err != nil {
			return nil, err
		}
		if city.Valid {
			s.City = &city.String
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteAllWithMarkers removes markers first so no marker outlives its article
func (r *articleRepo) DeleteAllWithMarkers(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM processed_events"); err != nil {
		return 0, fmt.Errorf("delete markers: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM blog_articles")
	if err != nil {
		return 0, fmt.Errorf("delete articles: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit cleanup: %w", err)
	}
	return int(deleted), nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == uniqueViolationCode && pqErr.Constraint == constraint
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
