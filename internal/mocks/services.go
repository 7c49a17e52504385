package mocks

import (
	"context"
	"strings"

	"github.com/event-content-pipeline/internal/models"
)

// MockPipelineService is a mock implementation of PipelineService
type MockPipelineService struct {
	GenerateResult *models.GenerateResult
	GenerateError  error
	GenerateCalls  int
	LastBatchSize  int
	CleanupResult  *models.CleanupResult
	CleanupError   error
	CleanupCalls   int
	StatsResult    *models.Stats
	StatsError     error
	PanicOn        string
}

func NewMockPipelineService() *MockPipelineService {
	return &MockPipelineService{
		GenerateResult: &models.GenerateResult{Success: true, Message: "No new events to blog", Articles: []models.GeneratedArticleSummary{}},
		CleanupResult:  &models.CleanupResult{Success: true, Message: "Deleted 0 generated article(s) and their markers"},
		StatsResult:    &models.Stats{RecentArticles: []models.ArticleSummary{}},
	}
}

func (m *MockPipelineService) Generate(ctx context.Context, batchSize int) (*models.GenerateResult, error) {
	if m.PanicOn == "generate" {
		panic("generate exploded")
	}
	m.GenerateCalls++
	m.LastBatchSize = batchSize
	if m.GenerateError != nil {
		return nil, m.GenerateError
	}
	return m.GenerateResult, nil
}

func (m *MockPipelineService) Cleanup(ctx context.Context) (*models.CleanupResult, error) {
	m.CleanupCalls++
	if m.CleanupError != nil {
		return nil, m.CleanupError
	}
	return m.CleanupResult, nil
}

func (m *MockPipelineService) Stats(ctx context.Context) (*models.Stats, error) {
	if m.StatsError != nil {
		return nil, m.StatsError
	}
	return m.StatsResult, nil
}

// MockGenerator is a mock ArticleGenerator. Errors are keyed by event id.
type MockGenerator struct {
	Errors   map[string]error
	Func     func(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, error)
	Requests []*models.GenerationRequest
}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Errors: make(map[string]error),
	}
}

func (m *MockGenerator) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, error) {
	m.Requests = append(m.Requests, req)
	if err := m.Errors[req.EventID]; err != nil {
		return nil, err
	}
	if m.Func != nil {
		return m.Func(ctx, req)
	}
	title := "Guide: " + req.Title
	return &models.GeneratedContent{
		Title:    title,
		Slug:     strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Excerpt:  "Everything you need to know about " + req.Title,
		Content:  "<h2>" + req.Title + "</h2><p>Join us in " + req.City + ", " + req.Country + ".</p>",
		Keywords: []string{req.Title},
		Tags:     []string{"events"},
	}, nil
}

// MockRevalidator records revalidated path sets
type MockRevalidator struct {
	Calls [][]string
	Err   error
}

func (m *MockRevalidator) Revalidate(ctx context.Context, paths []string) error {
	m.Calls = append(m.Calls, paths)
	return m.Err
}
