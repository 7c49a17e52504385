package models

import (
	"time"
)

// ArticleStatusPublished is the only status the pipeline writes
const ArticleStatusPublished = "published"

// Article is a generated blog article derived from one event
type Article struct {
	ID              string     `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Slug            string     `json:"slug" db:"slug"`
	Excerpt         string     `json:"excerpt" db:"excerpt"`
	Content         string     `json:"content" db:"content"`
	MetaTitle       string     `json:"meta_title" db:"meta_title"`
	MetaDescription string     `json:"meta_description" db:"meta_description"`
	Keywords        []string   `json:"keywords" db:"keywords"`
	Tags            []string   `json:"tags" db:"tags"`
	ReadTime        int        `json:"read_time" db:"read_time"`
	Country         string     `json:"country" db:"country"`
	City            *string    `json:"city" db:"city"`
	Category        string     `json:"category,omitempty" db:"category"`
	EventID         *string    `json:"event_id,omitempty" db:"event_id"`
	FeaturedImage   *string    `json:"featured_image" db:"featured_image"`
	ArticleType     string     `json:"article_type" db:"article_type"`
	Status          string     `json:"status" db:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// ArticleSummary is the short form shown on the dashboard
type ArticleSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Country   string    `json:"country"`
	City      *string   `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}
