package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/event-content-pipeline/internal/models"
	"github.com/google/uuid"
)

const (
	MaxTitleLength           = 200
	MaxSlugLength            = 100
	MaxMetaTitleLength       = 200
	MaxMetaDescriptionLength = 320
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a list of validation errors usable as an error
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Field + ": " + v.Message
	}
	return strings.Join(parts, "; ")
}

// Validator checks events before generation and articles before they are saved
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEvent checks the fields an article cannot be written without
func (v *Validator) ValidateEvent(event *models.Event) Errors {
	var errors Errors

	if strings.TrimSpace(event.ID) == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	}
	if strings.TrimSpace(event.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}
	if event.StartDate.IsZero() {
		errors = append(errors, ValidationError{Field: "start_date", Message: "start_date is required"})
	}
	if event.EndDate != nil && event.EndDate.Before(event.StartDate) {
		errors = append(errors, ValidationError{Field: "end_date", Message: "end_date is before start_date", Value: event.EndDate})
	}

	return errors
}

// ValidateArticle validates a generated article
func (v *Validator) ValidateArticle(article *models.Article) Errors {
	var errors Errors

	// Validate ID
	if article.ID == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	} else if !isValidUUID(article.ID) {
		errors = append(errors, ValidationError{Field: "id", Message: "invalid UUID format", Value: article.ID})
	}

	// Validate title
	if strings.TrimSpace(article.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	} else if n := utf8.RuneCountInString(article.Title); n > MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds %d characters (has %d)", MaxTitleLength, n),
		})
	}

	// Validate slug
	if article.Slug == "" {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug is required"})
	} else if !slugRegex.MatchString(article.Slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: article.Slug})
	} else if len(article.Slug) > MaxSlugLength {
		errors = append(errors, ValidationError{Field: "slug", Message: fmt.Sprintf("slug exceeds %d characters", MaxSlugLength), Value: article.Slug})
	}

	// Validate body
	if strings.TrimSpace(article.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	}

	if utf8.RuneCountInString(article.MetaTitle) > MaxMetaTitleLength {
		errors = append(errors, ValidationError{Field: "meta_title", Message: fmt.Sprintf("meta_title exceeds %d characters", MaxMetaTitleLength)})
	}
	if utf8.RuneCountInString(article.MetaDescription) > MaxMetaDescriptionLength {
		errors = append(errors, ValidationError{Field: "meta_description", Message: fmt.Sprintf("meta_description exceeds %d characters", MaxMetaDescriptionLength)})
	}

	// Location is never blank, unknown places use the sentinel
	if article.Country == "" {
		errors = append(errors, ValidationError{Field: "country", Message: "country is required"})
	}

	if article.EventID == nil || *article.EventID == "" {
		errors = append(errors, ValidationError{Field: "event_id", Message: "event_id is required"})
	}

	// Validate status
	if article.Status != models.ArticleStatusPublished {
		errors = append(errors, ValidationError{Field: "status", Message: "status must be published", Value: article.Status})
	} else if article.PublishedAt == nil {
		errors = append(errors, ValidationError{Field: "published_at", Message: "published articles must have published_at"})
	}

	if article.ReadTime < 1 {
		errors = append(errors, ValidationError{Field: "read_time", Message: "read_time must be at least 1", Value: article.ReadTime})
	}

	return errors
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
