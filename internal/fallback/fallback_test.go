package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/internal/taxonomy"
)

func TestGenerate_MatchedBusinessType(t *testing.T) {
	g := NewGenerator(taxonomy.Default())

	rec := g.Generate(model.CompanyQuery{Name: "Deutsche Bank", Country: "Germany"})

	assert.Equal(t, SourceName, rec.Source)
	assert.InDelta(t, 0.5, rec.Confidence, 0.001)
	assert.Equal(t, "Banking & Financial Services", rec.Industry)
	assert.Contains(t, rec.Description, "Deutsche Bank is a financial institution")
	assert.Contains(t, rec.Description, "Based in Germany")
	assert.Contains(t, rec.Description, "Banking & Financial Services sector")
}

func TestGenerate_Generic(t *testing.T) {
	g := NewGenerator(taxonomy.Default())

	rec := g.Generate(model.CompanyQuery{Name: "Acme Holdings"})

	assert.InDelta(t, 0.3, rec.Confidence, 0.001)
	assert.Equal(t, "Business Services", rec.Industry)
	assert.Contains(t, rec.Description, "Acme Holdings is an established business entity")
	assert.NotContains(t, rec.Description, "Based in")
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(taxonomy.Default())
	q := model.CompanyQuery{Name: "Veolia Waste Solutions", Country: "France"}

	first := g.Generate(q)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.Generate(q))
	}
}

func TestGenerate_NeverEmptyDescription(t *testing.T) {
	g := NewGenerator(taxonomy.Default())

	rec := g.Generate(model.CompanyQuery{Name: "X"})
	require.NotEmpty(t, rec.Description)
	assert.NotEmpty(t, rec.Industry)
	assert.Greater(t, rec.Confidence, 0.0)
}

func TestArticle(t *testing.T) {
	assert.Equal(t, "an", article("environmental services company"))
	assert.Equal(t, "a", article("financial institution"))
	assert.Equal(t, "a", article(""))
}
