package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/event-content-pipeline/internal/models"
	"github.com/event-content-pipeline/internal/repository"
)

// MockStore ties the mock repositories together so CreateWithMarker can
// enforce the one-marker-per-event constraint like the database does
type MockStore struct {
	Events   *MockEventRepository
	Articles *MockArticleRepository
	Markers  *MockMarkerRepository
}

func NewMockStore() *MockStore {
	markers := NewMockMarkerRepository()
	return &MockStore{
		Events:   NewMockEventRepository(),
		Articles: NewMockArticleRepository(markers),
		Markers:  markers,
	}
}

// Repositories exposes the mocks through the repository interfaces
func (s *MockStore) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Event:   s.Events,
		Article: s.Articles,
		Marker:  s.Markers,
	}
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	Events     map[string]*models.Event
	ListError  error
	CountError error
	LastFilter *repository.EligibleFilter
	ListCalls  int
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Events: make(map[string]*models.Event),
	}
}

func (m *MockEventRepository) Add(events ...*models.Event) {
	for _, e := range events {
		m.Events[e.ID] = e
	}
}

func (m *MockEventRepository) eligible(from time.Time) []*models.Event {
	var out []*models.Event
	for _, e := range m.Events {
		if e.Eligible(from) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MockEventRepository) ListEligible(ctx context.Context, filter repository.EligibleFilter) ([]*models.Event, error) {
	m.ListCalls++
	m.LastFilter = &filter
	if m.ListError != nil {
		return nil, m.ListError
	}

	excluded := make(map[string]bool, len(filter.Exclude))
	for _, id := range filter.Exclude {
		excluded[id] = true
	}

	var out []*models.Event
	for _, e := range m.eligible(filter.From) {
		if excluded[e.ID] {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *MockEventRepository) CountEligible(ctx context.Context, from time.Time) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.eligible(from)), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles      map[string]*models.Article
	SlugToArticle map[string]*models.Article
	CreateError   error
	CreateFunc    func(ctx context.Context, article *models.Article, marker *models.ProcessedEvent) error
	CreateCalls   int
	SlugError     error
	CountError    error
	DeleteError   error
	markers       *MockMarkerRepository
}

func NewMockArticleRepository(markers *MockMarkerRepository) *MockArticleRepository {
	return &MockArticleRepository{
		Articles:      make(map[string]*models.Article),
		SlugToArticle: make(map[string]*models.Article),
		markers:       markers,
	}
}

func (m *MockArticleRepository) CreateWithMarker(ctx context.Context, article *models.Article, marker *models.ProcessedEvent) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, article, marker); err != nil {
			return err
		}
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, taken := m.SlugToArticle[article.Slug]; taken {
		return repository.ErrSlugTaken
	}
	if _, done := m.markers.Markers[marker.EventID]; done {
		return repository.ErrAlreadyProcessed
	}

	m.Articles[article.ID] = article
	m.SlugToArticle[article.Slug] = article
	m.markers.Markers[marker.EventID] = marker
	return nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.SlugError != nil {
		return false, m.SlugError
	}
	_, exists := m.SlugToArticle[slug]
	return exists, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.Articles), nil
}

func (m *MockArticleRepository) Recent(ctx context.Context, limit int) ([]models.ArticleSummary, error) {
	all := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	out := []models.ArticleSummary{}
	for _, a := range all {
		if len(out) == limit {
			break
		}
		out = append(out, models.ArticleSummary{
			ID:        a.ID,
			Title:     a.Title,
			Slug:      a.Slug,
			Country:   a.Country,
			City:      a.City,
			CreatedAt: a.CreatedAt,
		})
	}
	return out, nil
}

func (m *MockArticleRepository) DeleteAllWithMarkers(ctx context.Context) (int, error) {
	if m.DeleteError != nil {
		return 0, m.DeleteError
	}
	deleted := len(m.Articles)
	m.Articles = make(map[string]*models.Article)
	m.SlugToArticle = make(map[string]*models.Article)
	m.markers.Markers = make(map[string]*models.ProcessedEvent)
	return deleted, nil
}

// MockMarkerRepository is a mock implementation of MarkerRepository, keyed by event id
type MockMarkerRepository struct {
	Markers   map[string]*models.ProcessedEvent
	ListError error
}

func NewMockMarkerRepository() *MockMarkerRepository {
	return &MockMarkerRepository{
		Markers: make(map[string]*models.ProcessedEvent),
	}
}

func (m *MockMarkerRepository) ProcessedEventIDs(ctx context.Context) ([]string, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	ids := make([]string, 0, len(m.Markers))
	for id := range m.Markers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockMarkerRepository) Count(ctx context.Context) (int, error) {
	return len(m.Markers), nil
}
