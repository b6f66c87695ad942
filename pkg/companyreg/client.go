// Package companyreg provides a client for the UK company registry's
// public data API.
package companyreg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines registry lookup operations.
type Client interface {
	// Profile fetches a company by registration number. Returns
	// (nil, nil) when the number is unknown.
	Profile(ctx context.Context, number string) (*CompanyProfile, error)
	// SearchByName returns the best-matching registered company for a
	// name, or (nil, nil) when nothing matches.
	SearchByName(ctx context.Context, name string) (*CompanyProfile, error)
}

// CompanyProfile is the structured registry record.
type CompanyProfile struct {
	CompanyName    string  `json:"company_name"`
	CompanyNumber  string  `json:"company_number"`
	CompanyStatus  string  `json:"company_status"`
	Type           string  `json:"type"`
	DateOfCreation string  `json:"date_of_creation"`
	SICCodes       []string `json:"sic_codes"`
	RegisteredOfficeAddress struct {
		AddressLine1 string `json:"address_line_1"`
		AddressLine2 string `json:"address_line_2"`
		Locality     string `json:"locality"`
		PostalCode   string `json:"postal_code"`
		Country      string `json:"country"`
	} `json:"registered_office_address"`
}

// Address renders the registered office address as one line.
func (p *CompanyProfile) Address() string {
	parts := []string{
		p.RegisteredOfficeAddress.AddressLine1,
		p.RegisteredOfficeAddress.AddressLine2,
		p.RegisteredOfficeAddress.Locality,
		p.RegisteredOfficeAddress.PostalCode,
	}
	var filled []string
	for _, s := range parts {
		if s != "" {
			filled = append(filled, s)
		}
	}
	return strings.Join(filled, ", ")
}

type searchResponse struct {
	Items []CompanyProfile `json:"items"`
}

// Option configures the registry client.
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

// NewClient creates a registry client. The API uses HTTP basic auth
// with the key as username and an empty password.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.company-information.service.gov.uk",
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

func (c *httpClient) get(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, eris.Wrap(err, "companyreg: create request")
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, eris.Wrap(err, "companyreg: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, eris.Wrap(err, "companyreg: read response body")
	}

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, eris.Errorf("companyreg: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return false, eris.Wrap(err, "companyreg: unmarshal response")
	}
	return true, nil
}

func (c *httpClient) Profile(ctx context.Context, number string) (*CompanyProfile, error) {
	var p CompanyProfile
	found, err := c.get(ctx, "/company/"+url.PathEscape(strings.TrimSpace(number)), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (c *httpClient) SearchByName(ctx context.Context, name string) (*CompanyProfile, error) {
	var sr searchResponse
	path := fmt.Sprintf("/search/companies?q=%s&items_per_page=1", url.QueryEscape(name))
	found, err := c.get(ctx, path, &sr)
	if err != nil || !found {
		return nil, err
	}
	if len(sr.Items) == 0 {
		return nil, nil
	}
	return &sr.Items[0], nil
}
