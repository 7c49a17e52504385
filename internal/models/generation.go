package models

// UnknownLocation is sent and stored when no city or country could be recognized
const UnknownLocation = "Unknown"

// GenerationRequest is the payload sent to the text generation API for one event
type GenerationRequest struct {
	EventID      string   `json:"event_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Location     string   `json:"location,omitempty"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Category     string   `json:"category,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Price        string   `json:"price,omitempty"`
	Images       []string `json:"images,omitempty"`
	BookingURL   string   `json:"booking_url,omitempty"`
	AffiliateURL string   `json:"affiliate_url,omitempty"`
}

// GeneratedContent is the article body and metadata returned by the API
type GeneratedContent struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	Tags            []string `json:"tags"`
}

// GeneratedArticleSummary reports one successfully generated article
type GeneratedArticleSummary struct {
	EventID      string `json:"event_id"`
	ArticleID    string `json:"article_id"`
	ArticleTitle string `json:"article_title"`
	Slug         string `json:"slug"`
}

// GenerationFailure reports one event that could not be turned into an article
type GenerationFailure struct {
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	Error      string `json:"error"`
}

// GenerateResult is the outcome of one Generate batch
type GenerateResult struct {
	Success   bool                      `json:"success"`
	Message   string                    `json:"message"`
	Processed int                       `json:"processed"`
	Failed    int                       `json:"failed"`
	Skipped   int                       `json:"skipped,omitempty"`
	Articles  []GeneratedArticleSummary `json:"articles"`
	Errors    []GenerationFailure       `json:"errors,omitempty"`
}

// CleanupResult is the outcome of deleting all generated content
type CleanupResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}

// Stats is the read-only pipeline overview
type Stats struct {
	TotalArticles   int              `json:"total_articles"`
	ProcessedEvents int              `json:"processed_events"`
	PendingEvents   int              `json:"pending_events"`
	RecentArticles  []ArticleSummary `json:"recent_articles"`
}
