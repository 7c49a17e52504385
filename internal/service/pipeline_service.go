package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/content"
	"github.com/event-content-pipeline/internal/location"
	"github.com/event-content-pipeline/internal/metrics"
	"github.com/event-content-pipeline/internal/models"
	"github.com/event-content-pipeline/internal/repository"
	"github.com/event-content-pipeline/internal/revalidate"
	"github.com/event-content-pipeline/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	recentArticlesLimit = 5
	excerptLength       = 160
	maxSlugProbes       = 20
)

// pipelineService is the concrete implementation of PipelineService
type pipelineService struct {
	repos       *repository.Repositories
	generator   ArticleGenerator
	revalidator revalidate.Revalidator
	cfg         *config.Config
	loc         *time.Location
	locator     *location.Extractor
	sanitizer   *content.Sanitizer
	validator   *validation.Validator
	now         func() time.Time
	log         zerolog.Logger
}

func (s *pipelineService) today() time.Time {
	return models.DateOnly(s.now().In(s.loc))
}

// Generate turns up to batchSize unprocessed eligible events into articles, one at a time.
// A failing event is reported in the result and never stops the rest of the batch.
func (s *pipelineService) Generate(ctx context.Context, batchSize int) (*models.GenerateResult, error) {
	if s.cfg.Generator.APIKey == "" {
		return nil, ErrGeneratorNotConfigured
	}
	if batchSize < 1 {
		batchSize = s.cfg.Pipeline.BatchSize
	}

	processed, err := s.repos.Marker.ProcessedEventIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load processed events: %w", err)
	}

	events, err := s.repos.Event.ListEligible(ctx, repository.EligibleFilter{
		From:    s.today(),
		Exclude: processed,
		Limit:   batchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch eligible events: %w", err)
	}

	result := &models.GenerateResult{
		Success:  true,
		Articles: []models.GeneratedArticleSummary{},
	}

	if len(events) == 0 {
		result.Message = "No new events to blog"
		s.log.Info().Int("excluded", len(processed)).Msg("No eligible events")
		return result, nil
	}

	s.log.Info().Int("events", len(events)).Int("batch_size", batchSize).Msg("Starting generation batch")

	for _, event := range events {
		summary, err := s.processEvent(ctx, event)
		switch {
		case errors.Is(err, repository.ErrAlreadyProcessed):
			result.Skipped++
			metrics.EventsSkipped.Inc()
			s.log.Warn().Str("event_id", event.ID).Msg("Event processed by a concurrent run, skipping")
		case err != nil:
			result.Failed++
			result.Errors = append(result.Errors, models.GenerationFailure{
				EventID:    event.ID,
				EventTitle: event.Title,
				Error:      err.Error(),
			})
			s.log.Error().Err(err).Str("event_id", event.ID).Msg("Article generation failed")
		default:
			result.Processed++
			result.Articles = append(result.Articles, *summary)
			metrics.ArticlesGenerated.Inc()
			s.log.Info().
				Str("event_id", event.ID).
				Str("article_id", summary.ArticleID).
				Str("slug", summary.Slug).
				Msg("Article generated")
		}
	}

	if result.Processed > 0 {
		s.revalidate(ctx)
	}

	result.Message = fmt.Sprintf("Generated %d article(s), %d failed", result.Processed, result.Failed)
	if result.Skipped > 0 {
		result.Message += fmt.Sprintf(", %d already processed", result.Skipped)
	}
	return result, nil
}

func (s *pipelineService) processEvent(ctx context.Context, event *models.Event) (*models.GeneratedArticleSummary, error) {
	if errs := s.validator.ValidateEvent(event); len(errs) > 0 {
		metrics.GenerationFailures.WithLabelValues(metrics.StageValidate).Inc()
		return nil, fmt.Errorf("invalid event: %w", errs)
	}

	attribution := s.locator.Extract(event.LocationText())

	start := time.Now()
	generated, err := s.generator.Generate(ctx, buildRequest(event, attribution))
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationFailures.WithLabelValues(metrics.StageGenerate).Inc()
		return nil, fmt.Errorf("generate article: %w", err)
	}

	article, err := s.buildArticle(ctx, event, attribution, generated)
	if err != nil {
		metrics.GenerationFailures.WithLabelValues(metrics.StagePersist).Inc()
		return nil, err
	}
	if errs := s.validator.ValidateArticle(article); len(errs) > 0 {
		metrics.GenerationFailures.WithLabelValues(metrics.StageValidate).Inc()
		return nil, fmt.Errorf("invalid article: %w", errs)
	}

	marker := &models.ProcessedEvent{
		ID:          uuid.New().String(),
		EventID:     event.ID,
		ArticleID:   article.ID,
		ProcessedAt: article.CreatedAt,
	}

	err = s.repos.Article.CreateWithMarker(ctx, article, marker)
	if errors.Is(err, repository.ErrSlugTaken) {
		// lost a race for the slug between probe and insert
		article.Slug = article.Slug + "-" + shortID()
		err = s.repos.Article.CreateWithMarker(ctx, article, marker)
	}
	if err != nil {
		if !errors.Is(err, repository.ErrAlreadyProcessed) {
			metrics.GenerationFailures.WithLabelValues(metrics.StagePersist).Inc()
			return nil, fmt.Errorf("save article: %w", err)
		}
		return nil, err
	}

	return &models.GeneratedArticleSummary{
		EventID:      event.ID,
		ArticleID:    article.ID,
		ArticleTitle: article.Title,
		Slug:         article.Slug,
	}, nil
}

func (s *pipelineService) buildArticle(
	ctx context.Context,
	event *models.Event,
	attribution location.Attribution,
	generated *models.GeneratedContent,
) (*models.Article, error) {
	body := s.sanitizer.Sanitize(generated.Content)
	if content.PlainText(body) == "" {
		return nil, errors.New("generated content is empty after sanitizing")
	}

	slug, err := s.uniqueSlug(ctx, generated)
	if err != nil {
		return nil, fmt.Errorf("resolve slug: %w", err)
	}

	excerpt := strings.TrimSpace(generated.Excerpt)
	if excerpt == "" {
		excerpt = content.Excerpt(body, excerptLength)
	}
	metaTitle := strings.TrimSpace(generated.MetaTitle)
	if metaTitle == "" {
		metaTitle = generated.Title
	}
	metaDescription := strings.TrimSpace(generated.MetaDescription)
	if metaDescription == "" {
		metaDescription = excerpt
	}
	metaDescription = content.Excerpt(metaDescription, validation.MaxMetaDescriptionLength-1)

	now := s.now()
	eventID := event.ID
	return &models.Article{
		ID:              uuid.New().String(),
		Title:           generated.Title,
		Slug:            slug,
		Excerpt:         excerpt,
		Content:         body,
		MetaTitle:       metaTitle,
		MetaDescription: metaDescription,
		Keywords:        generated.Keywords,
		Tags:            generated.Tags,
		ReadTime:        content.ReadTime(body),
		Country:         attribution.Country,
		City:            attribution.City,
		Category:        event.Category,
		EventID:         &eventID,
		FeaturedImage:   event.PrimaryImage(),
		ArticleType:     s.cfg.Pipeline.ArticleType,
		Status:          models.ArticleStatusPublished,
		PublishedAt:     &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// uniqueSlug prefers the model's slug, then the title, and appends -2, -3... on collision
func (s *pipelineService) uniqueSlug(ctx context.Context, generated *models.GeneratedContent) (string, error) {
	base := content.Slugify(generated.Slug)
	if base == "" {
		base = content.Slugify(generated.Title)
	}
	if base == "" {
		base = "event-" + shortID()
	}

	candidate := base
	for i := 2; i <= maxSlugProbes+1; i++ {
		exists, err := s.repos.Article.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return base + "-" + shortID(), nil
}

// Cleanup deletes every generated article and marker, then invalidates cached pages
func (s *pipelineService) Cleanup(ctx context.Context) (*models.CleanupResult, error) {
	deleted, err := s.repos.Article.DeleteAllWithMarkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete generated content: %w", err)
	}

	metrics.ArticlesDeleted.Add(float64(deleted))
	s.log.Info().Int("deleted", deleted).Msg("Generated content deleted")

	s.revalidate(ctx)

	return &models.CleanupResult{
		Success:      true,
		Message:      fmt.Sprintf("Deleted %d generated article(s) and their markers", deleted),
		DeletedCount: deleted,
	}, nil
}

// Stats reports counts without modifying anything
func (s *pipelineService) Stats(ctx context.Context) (*models.Stats, error) {
	total, err := s.repos.Article.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	markers, err := s.repos.Marker.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count markers: %w", err)
	}
	eligible, err := s.repos.Event.CountEligible(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("count eligible events: %w", err)
	}
	recent, err := s.repos.Article.Recent(ctx, recentArticlesLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent articles: %w", err)
	}

	pending := eligible - markers
	if pending < 0 {
		pending = 0
	}

	return &models.Stats{
		TotalArticles:   total,
		ProcessedEvents: markers,
		PendingEvents:   pending,
		RecentArticles:  recent,
	}, nil
}

// revalidate is best effort; cached pages expire on their own eventually
func (s *pipelineService) revalidate(ctx context.Context) {
	if err := s.revalidator.Revalidate(ctx, s.cfg.Pipeline.RevalidatePaths); err != nil {
		s.log.Warn().Err(err).Strs("paths", s.cfg.Pipeline.RevalidatePaths).Msg("Page revalidation failed")
	}
}

func buildRequest(event *models.Event, attribution location.Attribution) *models.GenerationRequest {
	req := &models.GenerationRequest{
		EventID:      event.ID,
		Title:        event.Title,
		Description:  event.Description,
		Location:     event.LocationText(),
		City:         attribution.CityName(),
		Country:      attribution.Country,
		Category:     event.Category,
		StartDate:    event.StartDate.Format("2006-01-02"),
		Price:        event.Price,
		BookingURL:   event.BookingURL,
		AffiliateURL: event.AffiliateURL,
	}
	if event.EndDate != nil {
		req.EndDate = event.EndDate.Format("2006-01-02")
	}
	for _, img := range []string{event.CoverImage, event.ImageURL, event.Thumbnail} {
		if img != "" {
			req.Images = append(req.Images, img)
		}
	}
	return req
}

func shortID() string {
	return uuid.New().String()[:8]
}
