package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/content"
	"github.com/event-content-pipeline/internal/location"
	"github.com/event-content-pipeline/internal/mocks"
	"github.com/event-content-pipeline/internal/models"
	"github.com/event-content-pipeline/internal/service"
	"github.com/rs/zerolog"
)

var sampleArticle = strings.Repeat(`<h2>What to expect</h2>
<p>The <strong>Riyadh Season</strong> concert brings regional headliners to Boulevard City.
Doors open at 7pm and <a href="https://tickets.example.com/evt-1">tickets</a> sell fast.</p>
<script>alert("x")</script>
<ul><li>Parking on site</li><li>Family friendly</li></ul>
`, 20)

// BenchmarkLocationExtract benchmarks attribution over the built-in gazetteer
func BenchmarkLocationExtract(b *testing.B) {
	x := location.NewExtractor()
	inputs := []string{
		"Boulevard City, Riyadh, Saudi Arabia",
		"Coca-Cola Arena, City Walk, Dubai",
		"Bahrain National Theatre, Manama",
		"The Grand Hall, 12 Harbour Road",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		x.Extract(inputs[i%len(inputs)])
	}
}

// BenchmarkSanitize benchmarks cleaning a generated article body
func BenchmarkSanitize(b *testing.B) {
	s := content.NewSanitizer()

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(sampleArticle)))

	for i := 0; i < b.N; i++ {
		s.Sanitize(sampleArticle)
	}
}

// BenchmarkReadTime benchmarks text extraction and word counting
func BenchmarkReadTime(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(sampleArticle)))

	for i := 0; i < b.N; i++ {
		content.ReadTime(sampleArticle)
	}
}

// BenchmarkSlugify benchmarks slug generation with diacritics
func BenchmarkSlugify(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		content.Slugify("Fête de la Musique à Beyrouth: Guide Complet 2027")
	}
}

// BenchmarkGenerateBatch benchmarks one batch of ten events against in-memory repositories
func BenchmarkGenerateBatch(b *testing.B) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	cfg := &config.Config{
		Generator: config.GeneratorConfig{APIKey: "sk-bench"},
		Pipeline: config.PipelineConfig{
			BatchSize:       10,
			MaxBatchSize:    10,
			Timezone:        "UTC",
			ArticleType:     "event",
			RevalidatePaths: config.DefaultRevalidatePaths,
		},
	}

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		store := mocks.NewMockStore()
		for j := 0; j < 10; j++ {
			store.Events.Add(&models.Event{
				ID:           fmt.Sprintf("evt-%03d", j),
				Title:        fmt.Sprintf("Concert %d", j),
				VenueName:    "Boulevard City",
				VenueAddress: "Riyadh, Saudi Arabia",
				StartDate:    now.AddDate(0, 0, j+1),
				AffiliateURL: "https://tickets.example.com",
				IsActive:     true,
			})
		}
		services := service.NewServices(store.Repositories(), mocks.NewMockGenerator(), &mocks.MockRevalidator{}, cfg,
			zerolog.Nop(), service.WithClock(func() time.Time { return now }))
		b.StartTimer()

		if _, err := services.Pipeline.Generate(context.Background(), 10); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(10*b.N)/b.Elapsed().Seconds(), "articles/sec")
}
