package adapter

import (
	"context"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/internal/names"
	"github.com/wastemetrics/enrich-cli/pkg/marketdata"
)

const (
	financialBaseConfidence = 0.7
	financialMaxConfidence  = 0.9
	financialFieldBonus     = 0.05
)

// Financial looks up listed-company profiles on a financial-data API.
type Financial struct {
	client marketdata.Client
}

// NewFinancial creates the adapter.
func NewFinancial(client marketdata.Client) *Financial {
	return &Financial{client: client}
}

func (a *Financial) Name() string { return "Financial Data" }

func (a *Financial) Priority() int { return 4 }

// Applicable gates on a listed-company legal form; the API only covers
// public companies, so querying it for everyone wastes quota.
func (a *Financial) Applicable(q model.CompanyQuery) bool {
	return names.HasListedSuffix(q.Name)
}

func (a *Financial) Fetch(ctx context.Context, q model.CompanyQuery) (*model.SourceResult, error) {
	profile, err := a.client.Profile(ctx, q.Name)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	desc := usableText(profile.Description, minDescriptionChars)
	if desc == "" {
		return nil, nil
	}

	employees := ""
	if profile.FullTimeEmployees != "" {
		employees = profile.FullTimeEmployees + " employees"
	}

	confidence := financialBaseConfidence
	for _, field := range []string{profile.Industry, profile.CEO, profile.Website, employees} {
		if field != "" {
			confidence += financialFieldBonus
		}
	}
	if confidence > financialMaxConfidence {
		confidence = financialMaxConfidence
	}

	return &model.SourceResult{
		Description:       desc,
		Industry:          profile.Industry,
		CEO:               profile.CEO,
		Website:           profile.Website,
		EmployeeSizeLabel: employees,
		Revenue:           profile.Revenue,
		Headquarters:      headquartersLabel(profile),
		Logo:              profile.Image,
		SourceName:        a.Name(),
		Confidence:        confidence,
		Priority:          a.Priority(),
	}, nil
}

func headquartersLabel(p *marketdata.Profile) string {
	switch {
	case p.City != "" && p.Country != "":
		return p.City + ", " + p.Country
	case p.City != "":
		return p.City
	default:
		return p.Country
	}
}
