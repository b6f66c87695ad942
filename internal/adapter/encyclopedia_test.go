package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/pkg/wiki"
)

func standardSummary() *wiki.Summary {
	sum := &wiki.Summary{
		Type:        "standard",
		Title:       "Veolia",
		Description: "French utility company",
		Extract:     "Veolia Environnement SA is a French transnational company with activities in water, waste and energy.",
	}
	sum.Thumbnail.Source = "https://img.example/veolia.png"
	return sum
}

func TestEncyclopedia_Fetch(t *testing.T) {
	a := NewEncyclopedia(&mockWiki{sum: standardSummary()})

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Veolia Environnement SA"})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Contains(t, res.Description, "Veolia Environnement SA is a French transnational company")
	assert.Equal(t, "https://img.example/veolia.png", res.Logo)
	assert.Equal(t, "Encyclopedia", res.SourceName)
	assert.InDelta(t, 0.7, res.Confidence, 0.001)
	assert.Equal(t, 2, res.Priority)
}

func TestEncyclopedia_NoArticle(t *testing.T) {
	a := NewEncyclopedia(&mockWiki{})

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Nonexistent Co"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestEncyclopedia_Disambiguation(t *testing.T) {
	sum := standardSummary()
	sum.Type = "disambiguation"
	a := NewEncyclopedia(&mockWiki{sum: sum})

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Mercury"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestEncyclopedia_ShortExtract(t *testing.T) {
	sum := standardSummary()
	sum.Extract = "Too short."
	a := NewEncyclopedia(&mockWiki{sum: sum})

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Veolia"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestEncyclopedia_ClientError(t *testing.T) {
	a := NewEncyclopedia(&mockWiki{err: errors.New("timeout")})

	_, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Veolia"})
	assert.Error(t, err)
}
