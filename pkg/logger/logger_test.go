package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/event-content-pipeline/pkg/logger"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "warn", false)

	log.Info().Msg("dropped")
	log.Warn().Str("event_id", "evt-1").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line at warn level, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("Expected JSON log line: %v", err)
	}
	if entry["service"] != "event-content-pipeline" {
		t.Errorf("Expected service field, got %v", entry["service"])
	}
	if entry["event_id"] != "evt-1" {
		t.Errorf("Expected event_id field, got %v", entry["event_id"])
	}
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "loud", false)

	log.Debug().Msg("dropped")
	log.Info().Msg("kept")

	if bytes.Contains(buf.Bytes(), []byte("dropped")) {
		t.Error("Debug line should be filtered at info level")
	}
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Error("Info line should be written")
	}
}
