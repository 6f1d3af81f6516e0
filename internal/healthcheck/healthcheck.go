package healthcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	healthPath     = "/health"
	healthyStatus  = "healthy"
	requestTimeout = 5 * time.Second
)

// Probe sends a single GET to baseURL's /health endpoint and returns nil
// only for a 200 response reporting a healthy status.
func Probe(ctx context.Context, baseURL string) error {
	base, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	healthURL := base.ResolveReference(&url.URL{Path: healthPath})

	client := &http.Client{
		Timeout: requestTimeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", healthURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}

	if body.Status != healthyStatus {
		return fmt.Errorf("unexpected health status %q", body.Status)
	}

	return nil
}

// WaitUntilHealthy probes baseURL every interval until it reports healthy
// or ctx is done.
func WaitUntilHealthy(
	ctx context.Context,
	baseURL string,
	interval time.Duration,
	logger *slog.Logger,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := Probe(ctx, baseURL)
		if err == nil {
			logger.Info("Server is up", slog.String("server", baseURL))
			return nil
		}

		logger.Debug("Server not ready",
			slog.String("server", baseURL),
			slog.Any("err", err))

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", baseURL, ctx.Err())
		case <-ticker.C:
		}
	}
}
