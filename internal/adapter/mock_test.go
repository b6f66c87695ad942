package adapter

import (
	"context"

	"github.com/wastemetrics/enrich-cli/pkg/companyreg"
	"github.com/wastemetrics/enrich-cli/pkg/marketdata"
	"github.com/wastemetrics/enrich-cli/pkg/serp"
	"github.com/wastemetrics/enrich-cli/pkg/wiki"
)

type mockSERP struct {
	page *serp.Page
	err  error
}

func (m *mockSERP) Search(_ context.Context, query string) (*serp.Page, error) {
	if m.err != nil {
		return nil, m.err
	}
	page := *m.page
	page.Query = query
	return &page, nil
}

type mockWiki struct {
	sum *wiki.Summary
	err error
}

func (m *mockWiki) Summary(_ context.Context, _ string) (*wiki.Summary, error) {
	return m.sum, m.err
}

type mockRegistry struct {
	profile    *companyreg.CompanyProfile
	err        error
	lastLookup string
}

func (m *mockRegistry) Profile(_ context.Context, number string) (*companyreg.CompanyProfile, error) {
	m.lastLookup = "number:" + number
	return m.profile, m.err
}

func (m *mockRegistry) SearchByName(_ context.Context, name string) (*companyreg.CompanyProfile, error) {
	m.lastLookup = "name:" + name
	return m.profile, m.err
}

type mockMarketData struct {
	profile *marketdata.Profile
	err     error
}

func (m *mockMarketData) Profile(_ context.Context, _ string) (*marketdata.Profile, error) {
	return m.profile, m.err
}
