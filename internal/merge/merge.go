// Package merge combines partial source results into one enriched
// record by per-field first-write-wins over a confidence-sorted list.
package merge

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wastemetrics/enrich-cli/internal/fallback"
	"github.com/wastemetrics/enrich-cli/internal/model"
)

// LowQualityThreshold is the aggregate confidence below which the
// merged record carries the template alternative for the caller to
// choose from. Single named constant; do not duplicate the value.
const LowQualityThreshold = 0.4

// Engine merges source results, degrading to the fallback generator
// when nothing usable survives filtering.
type Engine struct {
	fb *fallback.Generator
}

// NewEngine creates a merge engine.
func NewEngine(fb *fallback.Generator) *Engine {
	return &Engine{fb: fb}
}

// Merge filters, ranks and combines source results into one record.
// Invalid results (no description) are dropped; if none remain the
// fallback generator supplies the record. Field values are taken from
// the highest-ranked result that defines each field, independently per
// field, so a lower-confidence source may fill a gap the top source
// left. Aggregate confidence is the mean of all contributing results.
func (e *Engine) Merge(results []model.SourceResult, q model.CompanyQuery) model.EnrichedRecord {
	ranked := make([]model.SourceResult, 0, len(results))
	for i := range results {
		if results[i].Valid() {
			ranked = append(ranked, results[i])
		}
	}

	if len(ranked) == 0 {
		zap.L().Debug("merge: no usable source results, using template",
			zap.String("company", q.Name),
		)
		return e.fb.Generate(q)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].Priority < ranked[j].Priority
	})

	var rec model.EnrichedRecord
	sources := make([]string, 0, len(ranked))
	sum := 0.0
	for _, r := range ranked {
		setIfEmpty(&rec.Description, r.Description)
		setIfEmpty(&rec.Industry, r.Industry)
		setIfEmpty(&rec.Founded, r.Founded)
		setIfEmpty(&rec.Headquarters, r.Headquarters)
		setIfEmpty(&rec.EmployeeSizeLabel, r.EmployeeSizeLabel)
		setIfEmpty(&rec.Website, r.Website)
		setIfEmpty(&rec.CEO, r.CEO)
		setIfEmpty(&rec.Revenue, r.Revenue)
		setIfEmpty(&rec.LinkedIn, r.LinkedIn)
		setIfEmpty(&rec.Logo, r.Logo)
		sources = append(sources, r.SourceName)
		sum += r.Confidence
	}

	rec.Source = strings.Join(sources, " + ")
	rec.Confidence = sum / float64(len(ranked))
	return rec
}

// ChooseFinalRecord applies the low-quality policy: a merged record
// below the threshold is still returned, but with the template
// alternative attached so the caller can prefer it. Some real scraped
// text at low confidence is still more useful than a template, so the
// decision is surfaced rather than made here.
func ChooseFinalRecord(merged, template model.EnrichedRecord) model.EnrichedRecord {
	if merged.Confidence >= LowQualityThreshold {
		return merged
	}
	if merged.Source == template.Source {
		// Already a template record; nothing to surface.
		return merged
	}
	merged.Fallback = &template
	return merged
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
