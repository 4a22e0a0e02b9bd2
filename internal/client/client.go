// Package client fetches dashboard snapshots from the upstream data endpoint.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"execdash/internal/domain"
)

const (
	DefaultPath    = "/api/dashboard"
	DefaultTimeout = 30 * time.Second
)

// Client is a minimal HTTP client for the snapshot endpoint.
type Client struct {
	BaseURL    string
	Path       string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Path:    DefaultPath,
		Timeout: DefaultTimeout,
	}
}

// FetchError is any failure to obtain a usable snapshot. Message is what the
// dashboard shows to the user.
type FetchError struct {
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "fetch failed"
}

func (e *FetchError) Unwrap() error { return e.Err }

// Snapshot issues one GET for the current snapshot. force asks the upstream to
// bypass its cache.
func (c *Client) Snapshot(ctx context.Context, force bool) (*domain.Snapshot, error) {
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: c.Timeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(force), nil)
	if err != nil {
		return nil, &FetchError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		return nil, &FetchError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	var snap domain.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, &FetchError{Status: resp.StatusCode, Message: "decode snapshot: " + err.Error(), Err: err}
	}
	if snap.Error != "" {
		return nil, &FetchError{Status: resp.StatusCode, Message: snap.Error}
	}
	return &snap, nil
}

func (c *Client) endpoint(force bool) string {
	path := c.Path
	if path == "" {
		path = DefaultPath
	}
	u := strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if force {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + url.Values{"refresh": {"1"}}.Encode()
	}
	return u
}
