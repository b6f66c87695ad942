// Package company persists company profiles and the enrichment
// provenance written back onto them.
package company

import (
	"strings"
	"time"

	"github.com/wastemetrics/enrich-cli/internal/fallback"
	"github.com/wastemetrics/enrich-cli/internal/model"
)

// CompanyRecord is a stored company profile. Text columns default to
// empty strings rather than NULLs to keep scanning simple.
type CompanyRecord struct { //nolint:revive // stutters but matches table naming across the codebase
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	Country            string     `json:"country,omitempty"`
	RegistrationNumber string     `json:"registration_number,omitempty"`
	Description        string     `json:"description,omitempty"`
	Industry           string     `json:"industry,omitempty"`
	Founded            string     `json:"founded,omitempty"`
	Headquarters       string     `json:"headquarters,omitempty"`
	EmployeeSize       string     `json:"employee_size,omitempty"`
	Website            string     `json:"website,omitempty"`
	CEO                string     `json:"ceo,omitempty"`
	Revenue            string     `json:"revenue,omitempty"`
	LinkedInURL        string     `json:"linkedin_url,omitempty"`
	LogoURL            string     `json:"logo_url,omitempty"`
	Source             string     `json:"source,omitempty"`
	Confidence         float64    `json:"confidence,omitempty"`
	LastEnrichedAt     *time.Time `json:"last_enriched_at,omitempty"`
	LastRunID          string     `json:"last_run_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NeedsEnrichment reports whether the profile still lacks real source
// data: no description yet, or only a template-generated one.
func (c *CompanyRecord) NeedsEnrichment() bool {
	if c.Description == "" {
		return true
	}
	return strings.Contains(c.Source, fallback.SourceName)
}

// Query builds the enrichment input for this company.
func (c *CompanyRecord) Query() model.CompanyQuery {
	return model.CompanyQuery{
		Name:               c.Name,
		Country:            c.Country,
		RegistrationNumber: c.RegistrationNumber,
	}
}
