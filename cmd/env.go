package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/wastemetrics/enrich-cli/internal/adapter"
	"github.com/wastemetrics/enrich-cli/internal/company"
	"github.com/wastemetrics/enrich-cli/internal/enrich"
	"github.com/wastemetrics/enrich-cli/internal/fallback"
	"github.com/wastemetrics/enrich-cli/internal/merge"
	"github.com/wastemetrics/enrich-cli/internal/taxonomy"
	"github.com/wastemetrics/enrich-cli/pkg/companyreg"
	"github.com/wastemetrics/enrich-cli/pkg/marketdata"
	"github.com/wastemetrics/enrich-cli/pkg/serp"
	"github.com/wastemetrics/enrich-cli/pkg/wiki"
)

// initStore opens the Postgres-backed company store.
func initStore(ctx context.Context) (company.Store, error) {
	if cfg.Store.DatabaseURL == "" {
		return nil, eris.New("store database URL is required (ENRICH_STORE_DATABASE_URL)")
	}
	st, err := company.NewPostgres(ctx, cfg.Store.DatabaseURL, &company.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	return st, nil
}

// loadTaxonomy returns the industry table, applying a YAML override
// when one is configured.
func loadTaxonomy() (*taxonomy.Table, error) {
	if cfg.Taxonomy.Path == "" {
		return taxonomy.Default(), nil
	}
	table, err := taxonomy.Load(cfg.Taxonomy.Path)
	if err != nil {
		return nil, eris.Wrap(err, "load taxonomy")
	}
	zap.L().Info("taxonomy loaded", zap.String("path", cfg.Taxonomy.Path), zap.Int("entries", table.Len()))
	return table, nil
}

// initOrchestrator wires the source adapters, merge engine and fallback
// generator. Adapters without credentials are left out entirely.
func initOrchestrator() (*enrich.Orchestrator, error) {
	table, err := loadTaxonomy()
	if err != nil {
		return nil, err
	}

	adapterTimeout := time.Duration(cfg.Enrich.AdapterTimeoutSecs) * time.Second

	var adapters []adapter.SourceAdapter
	if cfg.SERP.Key != "" {
		serpClient := serp.NewClient(cfg.SERP.Key, serp.WithBaseURL(cfg.SERP.BaseURL))
		adapters = append(adapters, adapter.NewKnowledgePanel(serpClient, adapterTimeout))
	} else {
		zap.L().Debug("serp key not set, knowledge panel adapter disabled")
	}

	wikiClient := wiki.NewClient(cfg.Wiki.UserAgent, wiki.WithBaseURL(cfg.Wiki.BaseURL))
	adapters = append(adapters, adapter.NewEncyclopedia(wikiClient))

	if cfg.Registry.Key != "" {
		regClient := companyreg.NewClient(cfg.Registry.Key, companyreg.WithBaseURL(cfg.Registry.BaseURL))
		adapters = append(adapters, adapter.NewRegistry(regClient))
	} else {
		zap.L().Debug("registry key not set, registry adapter disabled")
	}

	if cfg.MarketData.Key != "" {
		mdClient := marketdata.NewClient(cfg.MarketData.Key, marketdata.WithBaseURL(cfg.MarketData.BaseURL))
		adapters = append(adapters, adapter.NewFinancial(mdClient))
	} else {
		zap.L().Debug("market data key not set, financial adapter disabled")
	}

	adapters = append(adapters, adapter.NewHeuristic(table))

	fb := fallback.NewGenerator(table)
	engine := merge.NewEngine(fb)
	timeout := time.Duration(cfg.Enrich.TimeoutSecs) * time.Second

	return enrich.NewOrchestrator(adapters, engine, fb, timeout), nil
}
