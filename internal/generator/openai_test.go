package generator_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/generator"
	"github.com/event-content-pipeline/internal/models"
)

func newClient(url string) *generator.OpenAIClient {
	return generator.NewOpenAIClient(config.GeneratorConfig{
		APIKey:   "sk-test",
		Endpoint: url,
		Model:    "test-model",
		Timeout:  5 * time.Second,
	})
}

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestGenerate_Success(t *testing.T) {
	var gotAuth string
	var gotReq map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatReply(`{"title":"A Night in Riyadh","slug":"a-night-in-riyadh","content":"<p>Body</p>","tags":["music"]}`)))
	}))
	defer srv.Close()

	out, err := newClient(srv.URL).Generate(context.Background(), &models.GenerationRequest{
		EventID: "evt-1",
		Title:   "Riyadh Season Concert",
		City:    "Riyadh",
		Country: "Saudi Arabia",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotReq["model"] != "test-model" {
		t.Errorf("Expected model in request, got %v", gotReq["model"])
	}
	messages := gotReq["messages"].([]interface{})
	user := messages[1].(map[string]interface{})["content"].(string)
	if !strings.Contains(user, `"country":"Saudi Arabia"`) {
		t.Errorf("Expected event payload in user message, got %s", user)
	}

	if out.Title != "A Night in Riyadh" || out.Slug != "a-night-in-riyadh" {
		t.Errorf("Unexpected content %+v", out)
	}
	if len(out.Tags) != 1 || out.Tags[0] != "music" {
		t.Errorf("Expected tags, got %v", out.Tags)
	}
}

func TestGenerate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Generate(context.Background(), &models.GenerationRequest{Title: "x"})
	if err == nil {
		t.Fatal("Expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Expected API body in error, got %v", err)
	}
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Generate(context.Background(), &models.GenerationRequest{Title: "x"})
	if !errors.Is(err, generator.ErrMalformedResponse) {
		t.Errorf("Expected ErrMalformedResponse, got %v", err)
	}
}

func TestGenerate_MissingKey(t *testing.T) {
	c := generator.NewOpenAIClient(config.GeneratorConfig{Endpoint: "http://localhost", Model: "m"})
	if _, err := c.Generate(context.Background(), &models.GenerationRequest{}); err == nil {
		t.Error("Expected misconfiguration error")
	}
}

func TestGenerate_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(`{"title":"t","content":"c"}`)))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newClient(srv.URL).Generate(ctx, &models.GenerationRequest{}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestParseContent(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"plain json", `{"title":"T","content":"<p>C</p>"}`, false},
		{"fenced json", "```json\n{\"title\":\"T\",\"content\":\"C\"}\n```", false},
		{"bare fence", "```\n{\"title\":\"T\",\"content\":\"C\"}\n```", false},
		{"not json", "Here is your article!", true},
		{"missing title", `{"content":"C"}`, true},
		{"blank content", `{"title":"T","content":"   "}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := generator.ParseContent(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, generator.ErrMalformedResponse) {
					t.Errorf("Expected ErrMalformedResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseContent failed: %v", err)
			}
			if out.Title != "T" {
				t.Errorf("Expected title T, got %q", out.Title)
			}
		})
	}
}
