package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/models"
	"golang.org/x/time/rate"
)

// ErrMalformedResponse is returned when the model output is not a usable article
var ErrMalformedResponse = errors.New("malformed generation response")

const defaultSystemPrompt = `You write engaging, accurate blog articles about live events for a nightlife and events guide.
Respond with a single JSON object with the keys: title, slug, excerpt, content, meta_title,
meta_description, keywords (array of strings), tags (array of strings).
"content" is HTML using <h2>, <p>, <ul> and <a> only. Only mention facts present in the input.
Use the provided city and country exactly; if they are "Unknown" do not guess a location.
Include the booking or affiliate link as a call to action.`

// OpenAIClient generates articles through an OpenAI-compatible chat completions API.
type OpenAIClient struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient builds a client from configuration. Requests are paced to
// cfg.RequestsPerMinute; zero or less disables pacing.
func NewOpenAIClient(cfg config.GeneratorConfig) *OpenAIClient {
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(cfg.RequestsPerMinute / 60)
	}

	return &OpenAIClient{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Generate sends one event to the model and parses the returned article.
func (c *OpenAIClient) Generate(ctx context.Context, req *models.GenerationRequest) (*models.GeneratedContent, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return nil, fmt.Errorf("generation client misconfigured")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: safePrompt(c.systemPrompt)},
			{Role: "user", Content: string(payload)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call generation api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("generation api error %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformedResponse, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices after %s", ErrMalformedResponse, time.Since(start).Round(time.Millisecond))
	}

	return ParseContent(chat.Choices[0].Message.Content)
}

// ParseContent decodes the model's JSON article, tolerating markdown code fences.
func ParseContent(raw string) (*models.GeneratedContent, error) {
	raw = stripFences(raw)

	var out models.GeneratedContent
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out.Title = strings.TrimSpace(out.Title)
	out.Content = strings.TrimSpace(out.Content)
	if out.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrMalformedResponse)
	}
	if out.Content == "" {
		return nil, fmt.Errorf("%w: missing content", ErrMalformedResponse)
	}
	return &out, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return defaultSystemPrompt
	}
	return prompt
}
