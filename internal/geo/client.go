package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "trip-bot/1.0 (+https://github.com/ai-trip-planner)"

// httpClient is the small JSON transport shared by the adapters.
type httpClient struct {
	adapter string
	http    *http.Client
}

func newHTTPClient(adapter string, timeout time.Duration) httpClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return httpClient{adapter: adapter, http: &http.Client{Timeout: timeout}}
}

// do sends req and decodes a JSON body into out, classifying every failure.
func (c httpClient) do(req *http.Request, out any) error {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return newAdapterError(c.adapter, KindUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return newAdapterError(c.adapter, KindStatus,
			fmt.Errorf("unexpected status %s: %s", res.Status, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return newAdapterError(c.adapter, KindMalformed, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (c httpClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return newAdapterError(c.adapter, KindUnavailable, fmt.Errorf("failed to create request: %w", err))
	}
	return c.do(req, out)
}

func (c httpClient) postForm(ctx context.Context, url, body string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return newAdapterError(c.adapter, KindUnavailable, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}
