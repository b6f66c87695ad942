// Package model defines the shared data types of the enrichment pipeline.
package model

// CompanyQuery identifies a company to enrich. One is constructed per
// enrichment request and never mutated.
type CompanyQuery struct {
	Name               string `json:"name"`
	Country            string `json:"country,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
}

// SourceResult is the normalized partial record produced by a single
// source adapter. Every field except SourceName and Confidence is
// optional; a result without a Description is invalid and dropped
// before ranking.
type SourceResult struct {
	Description       string  `json:"description,omitempty"`
	Industry          string  `json:"industry,omitempty"`
	Founded           string  `json:"founded,omitempty"`
	Headquarters      string  `json:"headquarters,omitempty"`
	EmployeeSizeLabel string  `json:"employee_size_label,omitempty"`
	Website           string  `json:"website,omitempty"`
	CEO               string  `json:"ceo,omitempty"`
	Revenue           string  `json:"revenue,omitempty"`
	LinkedIn          string  `json:"linkedin,omitempty"`
	Logo              string  `json:"logo,omitempty"`
	SourceName        string  `json:"source_name"`
	Confidence        float64 `json:"confidence"`

	// Priority breaks confidence ties deterministically during merge.
	// Lower values rank first. Set by the adapter, not serialized.
	Priority int `json:"-"`
}

// Valid reports whether the result carries enough text to participate
// in a merge.
func (r *SourceResult) Valid() bool {
	return r != nil && r.Description != ""
}

// EnrichedRecord is the merged output of an enrichment run. Source is
// the "+"-joined provenance of all contributing adapters; Confidence
// is the arithmetic mean of their confidences.
type EnrichedRecord struct {
	Description       string  `json:"description"`
	Industry          string  `json:"industry,omitempty"`
	Founded           string  `json:"founded,omitempty"`
	Headquarters      string  `json:"headquarters,omitempty"`
	EmployeeSizeLabel string  `json:"employee_size_label,omitempty"`
	Website           string  `json:"website,omitempty"`
	CEO               string  `json:"ceo,omitempty"`
	Revenue           string  `json:"revenue,omitempty"`
	LinkedIn          string  `json:"linkedin,omitempty"`
	Logo              string  `json:"logo,omitempty"`
	Source            string  `json:"source"`
	Confidence        float64 `json:"confidence"`

	// Fallback carries the template-generated alternative when the
	// merged confidence lands below the low-quality threshold. The
	// caller decides which text to persist; the pipeline never swaps
	// the texts silently.
	Fallback *EnrichedRecord `json:"fallback,omitempty"`
}
