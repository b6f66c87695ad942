// Package wiki provides a client for an encyclopedia summary-by-title
// REST API.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the summary lookup operation.
type Client interface {
	// Summary fetches the article summary for a title. Returns
	// (nil, nil) when no article exists.
	Summary(ctx context.Context, title string) (*Summary, error)
}

// Summary is the parsed summary response. Type is "standard" for a
// disambiguated, non-redirect article.
type Summary struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
	Thumbnail   struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Option configures the wiki client.
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
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a summary client. userAgent identifies the caller
// per the API's etiquette policy.
func NewClient(userAgent string, opts ...Option) Client {
	c := &httpClient{
		baseURL:   "https://en.wikipedia.org/api/rest_v1",
		userAgent: userAgent,
		http: &http.Client{
			Timeout: 15 * time.Second,
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

func (c *httpClient) Summary(ctx context.Context, title string) (*Summary, error) {
	reqURL := fmt.Sprintf("%s/page/summary/%s", c.baseURL, url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "wiki: create request")
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "wiki: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "wiki: read response body")
	}

	// No article for this title.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("wiki: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var sum Summary
	if err := json.Unmarshal(body, &sum); err != nil {
		return nil, eris.Wrap(err, "wiki: unmarshal response")
	}

	return &sum, nil
}
