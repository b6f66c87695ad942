// Package adapter wraps each external data source behind a uniform
// fetch contract. Adapters normalize whatever the source returns into
// a SourceResult with a confidence score, or report nothing at all:
// failures never propagate past the orchestrator.
package adapter

import (
	"context"
	"strings"

	"github.com/wastemetrics/enrich-cli/internal/model"
)

// SourceAdapter is the shared capability all sources implement.
type SourceAdapter interface {
	// Name returns the human-readable source name used in provenance.
	Name() string
	// Priority orders adapters for deterministic confidence
	// tie-breaks during merge. Lower is stronger.
	Priority() int
	// Applicable reports whether the adapter should run for the query
	// at all (e.g. a registry lookup needs a registration number or a
	// matching jurisdiction).
	Applicable(q model.CompanyQuery) bool
	// Fetch returns a normalized partial record. A nil result with a
	// nil error means the source had nothing usable; errors are
	// logged by the orchestrator and treated the same way.
	Fetch(ctx context.Context, q model.CompanyQuery) (*model.SourceResult, error)
}

// Minimum text lengths. Extractions below these are treated as absent
// rather than as low-confidence hits, so near-empty snippets never
// pollute a merge.
const (
	minDescriptionChars = 50
	minFieldChars       = 10
)

// usableText trims s and returns it only when it meets the minimum
// length; otherwise the field is treated as absent.
func usableText(s string, min int) string {
	s = strings.TrimSpace(s)
	if len(s) < min {
		return ""
	}
	return s
}
