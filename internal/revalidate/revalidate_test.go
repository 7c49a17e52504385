package revalidate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/revalidate"
	"github.com/rs/zerolog"
)

func TestWebhookRevalidator(t *testing.T) {
	var gotSecret string
	var gotBody map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("x-revalidate-secret")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := revalidate.New(config.RevalidateConfig{URL: srv.URL, Secret: "rv", Timeout: time.Second}, zerolog.Nop())
	if err := r.Revalidate(context.Background(), []string{"/", "/blog"}); err != nil {
		t.Fatalf("Revalidate failed: %v", err)
	}

	if gotSecret != "rv" {
		t.Errorf("Expected secret header, got %q", gotSecret)
	}
	if len(gotBody["paths"]) != 2 || gotBody["paths"][1] != "/blog" {
		t.Errorf("Unexpected body %v", gotBody)
	}
}

func TestWebhookRevalidator_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	r := revalidate.New(config.RevalidateConfig{URL: srv.URL, Timeout: time.Second}, zerolog.Nop())
	if err := r.Revalidate(context.Background(), []string{"/"}); err == nil {
		t.Error("Expected error for 401 response")
	}
}

func TestWebhookRevalidator_NoPaths(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	r := revalidate.New(config.RevalidateConfig{URL: srv.URL, Timeout: time.Second}, zerolog.Nop())
	if err := r.Revalidate(context.Background(), nil); err != nil {
		t.Fatalf("Revalidate failed: %v", err)
	}
	if called {
		t.Error("No request expected for empty path list")
	}
}

func TestNopRevalidator(t *testing.T) {
	r := revalidate.New(config.RevalidateConfig{}, zerolog.Nop())
	if err := r.Revalidate(context.Background(), []string{"/"}); err != nil {
		t.Errorf("Nop revalidator returned error: %v", err)
	}
}
