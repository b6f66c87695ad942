// Package enrich coordinates source adapters, the merge engine and the
// fallback generator into a single enrichment entry point.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wastemetrics/enrich-cli/internal/adapter"
	"github.com/wastemetrics/enrich-cli/internal/fallback"
	"github.com/wastemetrics/enrich-cli/internal/merge"
	"github.com/wastemetrics/enrich-cli/internal/model"
)

// Orchestrator runs all applicable adapters concurrently, merges
// whatever settles in time, and guarantees a usable record on every
// call. It holds no state between calls.
type Orchestrator struct {
	adapters []adapter.SourceAdapter
	engine   *merge.Engine
	fb       *fallback.Generator
	timeout  time.Duration
}

// NewOrchestrator creates an orchestrator. timeout bounds the whole
// run; adapters additionally bound their own requests.
func NewOrchestrator(adapters []adapter.SourceAdapter, engine *merge.Engine, fb *fallback.Generator, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Orchestrator{
		adapters: adapters,
		engine:   engine,
		fb:       fb,
		timeout:  timeout,
	}
}

// Enrich produces one final record for the query. It never fails: a
// total miss across all sources degrades to the template generator.
// Adapters that have not settled when the timeout elapses are
// disregarded; their in-flight requests are cancelled via the derived
// context but never awaited.
func (o *Orchestrator) Enrich(ctx context.Context, q model.CompanyQuery) model.EnrichedRecord {
	applicable := make([]adapter.SourceAdapter, 0, len(o.adapters))
	for _, a := range o.adapters {
		if a.Applicable(q) {
			applicable = append(applicable, a)
		}
	}
	if len(applicable) == 0 {
		return o.fb.Generate(q)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	// Buffered so late adapters can settle into the channel after the
	// deadline without leaking their goroutines.
	resCh := make(chan *model.SourceResult, len(applicable))
	for _, a := range applicable {
		go func(a adapter.SourceAdapter) {
			res, err := a.Fetch(fetchCtx, q)
			if err != nil {
				zap.L().Debug("enrich: source failed",
					zap.String("source", a.Name()),
					zap.String("company", q.Name),
					zap.Error(err),
				)
				resCh <- nil
				return
			}
			resCh <- res
		}(a)
	}

	timer := time.NewTimer(o.timeout)
	defer timer.Stop()

	var results []model.SourceResult
collect:
	for range applicable {
		select {
		case r := <-resCh:
			if r.Valid() {
				results = append(results, *r)
			}
		case <-timer.C:
			zap.L().Warn("enrich: timeout waiting for sources",
				zap.String("company", q.Name),
				zap.Int("settled", len(results)),
				zap.Int("launched", len(applicable)),
			)
			break collect
		case <-ctx.Done():
			break collect
		}
	}

	merged := o.engine.Merge(results, q)
	final := merge.ChooseFinalRecord(merged, o.fb.Generate(q))

	zap.L().Info("enrich: complete",
		zap.String("company", q.Name),
		zap.String("source", final.Source),
		zap.Float64("confidence", final.Confidence),
		zap.Int("contributing", len(results)),
	)
	return final
}
