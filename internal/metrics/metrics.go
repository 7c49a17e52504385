package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ArticlesGenerated counts articles persisted together with their marker
	ArticlesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "content_pipeline",
		Name:      "articles_generated_total",
		Help:      "Articles generated from events.",
	})

	// GenerationFailures counts per-event failures, labelled by stage
	GenerationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "content_pipeline",
		Name:      "generation_failures_total",
		Help:      "Events that could not be turned into an article.",
	}, []string{"stage"})

	// EventsSkipped counts events another run processed first
	EventsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "content_pipeline",
		Name:      "events_skipped_total",
		Help:      "Events skipped because a marker already existed at insert time.",
	})

	// ArticlesDeleted counts articles removed by cleanup
	ArticlesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "content_pipeline",
		Name:      "articles_deleted_total",
		Help:      "Generated articles removed by cleanup.",
	})

	// GenerationDuration observes generation API call latency
	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "content_pipeline",
		Name:      "generation_duration_seconds",
		Help:      "Latency of generation API calls.",
		Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
	})
)

// Failure stages
const (
	StageValidate = "validate"
	StageGenerate = "generate"
	StagePersist  = "persist"
)
