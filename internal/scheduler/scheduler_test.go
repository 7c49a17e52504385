package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/mocks"
	"github.com/event-content-pipeline/internal/scheduler"
	"github.com/rs/zerolog"
)

func pipelineConfig(schedule string) config.PipelineConfig {
	return config.PipelineConfig{
		BatchSize:    3,
		MaxBatchSize: 10,
		Timezone:     "Asia/Bahrain",
		Schedule:     schedule,
	}
}

func TestNew_EmptyScheduleDisabled(t *testing.T) {
	s, err := scheduler.New(mocks.NewMockPipelineService(), pipelineConfig(""), time.Minute, zerolog.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Enabled() {
		t.Error("Expected scheduler to be disabled")
	}
	if !s.NextRun().IsZero() {
		t.Error("Expected zero next run when disabled")
	}

	// no-ops when disabled
	s.Start()
	s.Stop(context.Background())
}

func TestNew_InvalidSchedule(t *testing.T) {
	if _, err := scheduler.New(mocks.NewMockPipelineService(), pipelineConfig("every tuesday"), time.Minute, zerolog.Nop()); err == nil {
		t.Fatal("Expected error for invalid schedule")
	}
}

func TestStartAndStop(t *testing.T) {
	s, err := scheduler.New(mocks.NewMockPipelineService(), pipelineConfig("0 6 * * *"), time.Minute, zerolog.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !s.Enabled() {
		t.Fatal("Expected scheduler to be enabled")
	}

	s.Start()
	next := s.NextRun()
	if next.IsZero() {
		t.Fatal("Expected next run after start")
	}
	if next.Hour() != 6 || next.Location().String() != "Asia/Bahrain" {
		t.Errorf("Expected 06:00 Bahrain time, got %s", next)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestRunOnce_UsesConfiguredBatchSize(t *testing.T) {
	pipeline := mocks.NewMockPipelineService()
	s, err := scheduler.New(pipeline, pipelineConfig("@hourly"), time.Minute, zerolog.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	s.RunOnce(context.Background())

	if pipeline.GenerateCalls != 1 || pipeline.LastBatchSize != 3 {
		t.Errorf("Expected one call with batch 3, got %d calls, batch %d", pipeline.GenerateCalls, pipeline.LastBatchSize)
	}
}

func TestRunOnce_ErrorIsLogged(t *testing.T) {
	pipeline := mocks.NewMockPipelineService()
	pipeline.GenerateError = errors.New("generation API key is not configured")
	s, err := scheduler.New(pipeline, pipelineConfig("@hourly"), time.Minute, zerolog.Nop())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	s.RunOnce(context.Background())

	if pipeline.GenerateCalls != 1 {
		t.Errorf("Expected one call, got %d", pipeline.GenerateCalls)
	}
}
