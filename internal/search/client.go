// Package search implements the fetch capability against an Algolia-style
// search endpoint: GET a URL, decode {hits:[{objectID,title,url}]}.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hnsearch/internal/domain"
	"hnsearch/internal/logging"
)

// DefaultEndpoint is the built-in search endpoint
const DefaultEndpoint = "https://hn.algolia.com/api/v1/search"

// DefaultQuery is the query issued on startup
const DefaultQuery = "MIT"

// maxBodyBytes bounds the decoded response body
const maxBodyBytes = 8 << 20

// Fetcher fetches and decodes a result set from a URL
type Fetcher interface {
	Fetch(ctx context.Context, target string) (domain.ResultSet, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, target string) (domain.ResultSet, error)

// Fetch calls f(ctx, target)
func (f FetcherFunc) Fetch(ctx context.Context, target string) (domain.ResultSet, error) {
	return f(ctx, target)
}

// Config holds the HTTP client settings
type Config struct {
	Timeout   time.Duration // 0 disables the client timeout
	UserAgent string
}

// Client is the HTTP implementation of Fetcher
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new search client
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		logger:     logging.NewLogger("search"),
	}
}

// Fetch performs a GET on target and decodes the hits. Any failure is
// returned as a *FetchError matching ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context, target string) (domain.ResultSet, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.ResultSet{}, &FetchError{URL: target, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", target).Msg("Request failed")
		return domain.ResultSet{}, &FetchError{URL: target, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ResultSet{}, &FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var payload domain.ResultSet
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return domain.ResultSet{}, &FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}
	if payload.Hits == nil {
		payload.Hits = []domain.Record{}
	}

	c.logger.Debug().
		Str("url", target).
		Int("hits", len(payload.Hits)).
		Dur("duration", time.Since(start)).
		Msg("Fetched results")

	return payload, nil
}

// BuildURL appends the escaped query to the endpoint's query string
func BuildURL(endpoint, query string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" {
		// Not a parseable absolute URL; fall back to plain concatenation
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		return endpoint + sep + "query=" + url.QueryEscape(query)
	}
	values := u.Query()
	values.Set("query", query)
	u.RawQuery = values.Encode()
	return u.String()
}
