package models

import "time"

// ProcessedEvent marks an event as already turned into an article.
// At most one row exists per event.
type ProcessedEvent struct {
	ID          string    `json:"id" db:"id"`
	EventID     string    `json:"event_id" db:"event_id"`
	ArticleID   string    `json:"article_id" db:"article_id"`
	ProcessedAt time.Time `json:"processed_at" db:"processed_at"`
}
