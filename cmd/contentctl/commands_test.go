package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/mocks"
	"github.com/event-content-pipeline/internal/models"
	"github.com/event-content-pipeline/internal/service"
)

type fakeBackend struct {
	pipeline      *mocks.MockPipelineService
	migrated      bool
	rolledBack    bool
	targetVersion uint
	closed        bool
	migrateErr    error
}

func (f *fakeBackend) Pipeline() service.PipelineService {
	return f.pipeline
}

func (f *fakeBackend) Migrate() error {
	f.migrated = true
	return f.migrateErr
}

func (f *fakeBackend) MigrateDown() error {
	f.rolledBack = true
	return nil
}

func (f *fakeBackend) MigrateTo(v uint) error {
	f.targetVersion = v
	return nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

func run(t *testing.T, b *fakeBackend, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out, func() (backend, error) { return b, nil })
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{pipeline: mocks.NewMockPipelineService()}
}

func TestGenerateCommand(t *testing.T) {
	b := newFakeBackend()
	b.pipeline.GenerateResult = &models.GenerateResult{
		Success:   true,
		Message:   "Generated 2 article(s), 0 failed",
		Processed: 2,
		Articles:  []models.GeneratedArticleSummary{},
	}

	out, err := run(t, b, "generate", "--batch-size", "2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b.pipeline.LastBatchSize != 2 {
		t.Errorf("Expected batch size 2, got %d", b.pipeline.LastBatchSize)
	}
	if !b.closed {
		t.Error("Expected backend to be closed")
	}

	var result models.GenerateResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Expected JSON output, got %q", out)
	}
	if result.Processed != 2 {
		t.Errorf("Expected processed=2, got %d", result.Processed)
	}
}

func TestGenerateCommand_DefaultBatchSize(t *testing.T) {
	b := newFakeBackend()

	if _, err := run(t, b, "generate"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b.pipeline.LastBatchSize != 0 {
		t.Errorf("Expected 0 so the service applies its default, got %d", b.pipeline.LastBatchSize)
	}
}

func TestGenerateCommand_Error(t *testing.T) {
	b := newFakeBackend()
	b.pipeline.GenerateError = service.ErrGeneratorNotConfigured

	_, err := run(t, b, "generate")
	if !errors.Is(err, service.ErrGeneratorNotConfigured) {
		t.Fatalf("Expected ErrGeneratorNotConfigured, got %v", err)
	}
}

func TestCleanupAndStatsCommands(t *testing.T) {
	b := newFakeBackend()
	b.pipeline.CleanupResult = &models.CleanupResult{Success: true, DeletedCount: 3}
	b.pipeline.StatsResult = &models.Stats{PendingEvents: 4, RecentArticles: []models.ArticleSummary{}}

	out, err := run(t, b, "cleanup")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, `"deleted_count": 3`) {
		t.Errorf("Unexpected cleanup output %q", out)
	}

	out, err = run(t, b, "stats")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, `"pending_events": 4`) {
		t.Errorf("Unexpected stats output %q", out)
	}
}

func TestMigrateCommands(t *testing.T) {
	b := newFakeBackend()

	if _, err := run(t, b, "migrate", "up"); err != nil || !b.migrated {
		t.Errorf("migrate up: err=%v migrated=%v", err, b.migrated)
	}
	if _, err := run(t, b, "migrate", "down"); err != nil || !b.rolledBack {
		t.Errorf("migrate down: err=%v rolledBack=%v", err, b.rolledBack)
	}
	if _, err := run(t, b, "migrate", "goto", "2"); err != nil || b.targetVersion != 2 {
		t.Errorf("migrate goto: err=%v version=%d", err, b.targetVersion)
	}
}

func TestMigrateGoto_InvalidVersion(t *testing.T) {
	b := newFakeBackend()

	if _, err := run(t, b, "migrate", "goto", "latest"); err == nil {
		t.Fatal("Expected error for non-numeric version")
	}
	if b.closed {
		t.Error("Invalid input must not connect")
	}
}

func TestConnectError(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(&out, func() (backend, error) { return nil, errors.New("DB_HOST is required") })
	root.SetArgs([]string{"stats"})

	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "DB_HOST") {
		t.Fatalf("Expected connect error, got %v", err)
	}
}

// The binary embeds tzdata so the default timezone resolves on minimal images.
func TestDefaultTimezoneResolves(t *testing.T) {
	if _, err := time.LoadLocation("Asia/Bahrain"); err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	pipeline := config.PipelineConfig{Timezone: "Asia/Bahrain"}
	if got := pipeline.Location().String(); got != "Asia/Bahrain" {
		t.Errorf("Expected Asia/Bahrain, got %s", got)
	}
}
