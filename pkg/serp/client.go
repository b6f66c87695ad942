// Package serp provides a client for a search-engine results API that
// returns rendered result pages as HTML.
package serp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the search operations.
type Client interface {
	// Search runs a web search and returns the first result page.
	Search(ctx context.Context, query string) (*Page, error)
}

// Page is a fetched search result page.
type Page struct {
	Query      string
	StatusCode int
	Header     http.Header
	HTML       string
}

// Option configures the serp client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a search client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.scaleserp.com",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes an HTTP request with exponential backoff retries on
// transient failures (429, 500, 502, 503).
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) (*http.Response, []byte, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, nil, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, nil, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, nil, eris.Wrap(readErr, "serp: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("serp: status %d", resp.StatusCode)
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return resp, body, nil
	}

	return nil, nil, lastErr
}

func (c *httpClient) Search(ctx context.Context, query string) (*Page, error) {
	reqURL := fmt.Sprintf("%s/search?output=html&q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "serp: create request")
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "text/html")

	resp, body, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "serp: request failed")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusForbidden &&
		resp.StatusCode != http.StatusServiceUnavailable {
		return nil, eris.Errorf("serp: unexpected status %d", resp.StatusCode)
	}

	// 403/503 bodies are returned to the caller so it can run block
	// detection instead of treating them as transport failures.
	return &Page{
		Query:      query,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		HTML:       string(body),
	}, nil
}
