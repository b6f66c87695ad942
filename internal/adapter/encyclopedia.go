package adapter

import (
	"context"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/internal/names"
	"github.com/wastemetrics/enrich-cli/pkg/wiki"
)

const encyclopediaConfidence = 0.7

// Encyclopedia looks up the company's article summary by title. The
// legal-form suffix is stripped first because article titles rarely
// carry it.
type Encyclopedia struct {
	client wiki.Client
}

// NewEncyclopedia creates the adapter.
func NewEncyclopedia(client wiki.Client) *Encyclopedia {
	return &Encyclopedia{client: client}
}

func (a *Encyclopedia) Name() string { return "Encyclopedia" }

func (a *Encyclopedia) Priority() int { return 2 }

func (a *Encyclopedia) Applicable(q model.CompanyQuery) bool { return q.Name != "" }

func (a *Encyclopedia) Fetch(ctx context.Context, q model.CompanyQuery) (*model.SourceResult, error) {
	title := names.StripCorporateSuffix(q.Name)

	sum, err := a.client.Summary(ctx, title)
	if err != nil {
		return nil, err
	}
	if sum == nil {
		return nil, nil
	}

	// Only disambiguated, non-redirect articles are trusted; anything
	// else is likely the wrong entity.
	if sum.Type != "standard" {
		return nil, nil
	}

	extract := usableText(sum.Extract, minDescriptionChars)
	if extract == "" {
		return nil, nil
	}

	return &model.SourceResult{
		Description: extract,
		Logo:        sum.Thumbnail.Source,
		SourceName:  a.Name(),
		Confidence:  encyclopediaConfidence,
		Priority:    a.Priority(),
	}, nil
}
