// Package marketdata provides a client for a financial-data API with
// company profiles for listed companies.
package marketdata

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

// Client defines the profile lookup operation.
type Client interface {
	// Profile returns the company profile best matching the name, or
	// (nil, nil) when the company is not listed.
	Profile(ctx context.Context, name string) (*Profile, error)
}

// Profile is a listed-company profile.
type Profile struct {
	Symbol            string `json:"symbol"`
	CompanyName       string `json:"companyName"`
	Description       string `json:"description"`
	Industry          string `json:"industry"`
	CEO               string `json:"ceo"`
	Website           string `json:"website"`
	FullTimeEmployees string `json:"fullTimeEmployees"`
	Revenue           string `json:"revenue"`
	IPODate           string `json:"ipoDate"`
	City              string `json:"city"`
	Country           string `json:"country"`
	Image             string `json:"image"`
}

// Option configures the marketdata client.
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

// NewClient creates a profile client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://financialmodelingprep.com/api/v3",
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

func (c *httpClient) Profile(ctx context.Context, name string) (*Profile, error) {
	reqURL := fmt.Sprintf("%s/profile?query=%s&apikey=%s",
		c.baseURL, url.QueryEscape(name), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "marketdata: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "marketdata: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "marketdata: read response body")
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("marketdata: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var profiles []Profile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, eris.Wrap(err, "marketdata: unmarshal response")
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}
