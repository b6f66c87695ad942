package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/internal/taxonomy"
)

const heuristicConfidence = 0.6

// Heuristic classifies the company purely from keywords in its name
// against the shared taxonomy. No network, always settles immediately.
type Heuristic struct {
	table *taxonomy.Table
}

// NewHeuristic creates the adapter.
func NewHeuristic(table *taxonomy.Table) *Heuristic {
	return &Heuristic{table: table}
}

func (a *Heuristic) Name() string { return "Name Heuristics" }

func (a *Heuristic) Priority() int { return 5 }

func (a *Heuristic) Applicable(q model.CompanyQuery) bool { return q.Name != "" }

func (a *Heuristic) Fetch(_ context.Context, q model.CompanyQuery) (*model.SourceResult, error) {
	m, ok := a.table.Classify(q.Name)
	if !ok {
		return nil, nil
	}

	// A one-line classifier description keeps the result mergeable;
	// the richer template prose belongs to the fallback generator.
	desc := fmt.Sprintf("%s appears to operate as %s %s.",
		strings.TrimSpace(q.Name), article(m.Fragment), m.Fragment)

	return &model.SourceResult{
		Description: desc,
		Industry:    m.Industry,
		SourceName:  a.Name(),
		Confidence:  heuristicConfidence,
		Priority:    a.Priority(),
	}, nil
}

func article(noun string) string {
	if noun != "" && strings.ContainsRune("aeiou", rune(noun[0])) {
		return "an"
	}
	return "a"
}
