package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/internal/taxonomy"
)

func TestHeuristic_Fetch(t *testing.T) {
	a := NewHeuristic(taxonomy.Default())

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Green Recycling GmbH"})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Contains(t, res.Description, "Green Recycling GmbH appears to operate as an environmental services company")
	assert.Equal(t, "Waste Management & Environmental Services", res.Industry)
	assert.Equal(t, "Name Heuristics", res.SourceName)
	assert.InDelta(t, 0.6, res.Confidence, 0.001)
	assert.Equal(t, 5, res.Priority)
}

func TestHeuristic_NoMatch(t *testing.T) {
	a := NewHeuristic(taxonomy.Default())

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Acme Holdings"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestHeuristic_Deterministic(t *testing.T) {
	a := NewHeuristic(taxonomy.Default())
	q := model.CompanyQuery{Name: "Nordic Freight Lines"}

	first, err := a.Fetch(context.Background(), q)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := a.Fetch(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
