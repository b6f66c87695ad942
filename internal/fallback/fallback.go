// Package fallback synthesizes deterministic template descriptions for
// companies no external source could describe.
package fallback

import (
	"fmt"
	"strings"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/internal/taxonomy"
)

// SourceName tags template-generated records so the data-quality
// pipeline can find and re-attempt them later.
const SourceName = "Generated Template"

const (
	matchedConfidence = 0.5
	genericConfidence = 0.3

	genericIndustry = "Business Services"
	genericFragment = "established business entity with operations across its industry sector"
)

// Generator produces template descriptions from the shared taxonomy.
// Generate is a pure function of the query: no network, no randomness.
type Generator struct {
	table *taxonomy.Table
}

// NewGenerator creates a Generator backed by the given taxonomy table.
func NewGenerator(table *taxonomy.Table) *Generator {
	return &Generator{table: table}
}

// Generate composes a template description and industry classification
// from the company name and country alone. The returned record always
// has a non-empty description.
func (g *Generator) Generate(q model.CompanyQuery) model.EnrichedRecord {
	industry := genericIndustry
	fragment := genericFragment
	confidence := genericConfidence

	if m, ok := g.table.Classify(q.Name); ok {
		industry = m.Industry
		fragment = m.Fragment
		confidence = matchedConfidence
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is %s %s.", strings.TrimSpace(q.Name), article(fragment), fragment)
	if q.Country != "" {
		fmt.Fprintf(&b, " Based in %s, the company maintains established operations within the %s sector.", q.Country, industry)
	} else {
		fmt.Fprintf(&b, " The company maintains established operations within the %s sector.", industry)
	}

	return model.EnrichedRecord{
		Description: b.String(),
		Industry:    industry,
		Source:      SourceName,
		Confidence:  confidence,
	}
}

func article(noun string) string {
	switch {
	case noun == "":
		return "a"
	case strings.ContainsRune("aeiou", rune(noun[0])):
		return "an"
	default:
		return "a"
	}
}
