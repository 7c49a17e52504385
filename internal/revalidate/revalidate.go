package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/event-content-pipeline/internal/config"
	"github.com/rs/zerolog"
)

// Revalidator invalidates cached pages after content changes
type Revalidator interface {
	Revalidate(ctx context.Context, paths []string) error
}

// New returns a webhook revalidator, or a no-op one when no URL is configured
func New(cfg config.RevalidateConfig, log zerolog.Logger) Revalidator {
	log = log.With().Str("component", "revalidate").Logger()
	if cfg.URL == "" {
		log.Warn().Msg("REVALIDATE_URL not set, page cache invalidation disabled")
		return &nopRevalidator{log: log}
	}
	return &webhookRevalidator{
		url:        cfg.URL,
		secret:     cfg.Secret,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

type webhookRevalidator struct {
	url        string
	secret     string
	httpClient *http.Client
	log        zerolog.Logger
}

// Revalidate posts {"paths": [...]} to the page-rendering layer
func (r *webhookRevalidator) Revalidate(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string][]string{"paths": paths})
	if err != nil {
		return fmt.Errorf("marshal paths: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.secret != "" {
		req.Header.Set("x-revalidate-secret", r.secret)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("revalidate error %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	r.log.Info().Strs("paths", paths).Msg("Pages revalidated")
	return nil
}

type nopRevalidator struct {
	log zerolog.Logger
}

func (r *nopRevalidator) Revalidate(ctx context.Context, paths []string) error {
	r.log.Debug().Strs("paths", paths).Msg("Skipping revalidation")
	return nil
}
