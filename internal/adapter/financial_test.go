package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/pkg/marketdata"
)

func listedProfile() *marketdata.Profile {
	return &marketdata.Profile{
		Symbol:            "VIE.PA",
		CompanyName:       "Veolia Environnement SA",
		Description:       "Veolia Environnement SA provides water, waste and energy management services worldwide.",
		Industry:          "Waste Management",
		CEO:               "Estelle Brachlianoff",
		Website:           "https://www.veolia.com",
		FullTimeEmployees: "213000",
		Revenue:           "45.3B EUR",
		City:              "Aubervilliers",
		Country:           "France",
		Image:             "https://img.example/vie.png",
	}
}

func TestFinancial_Applicable(t *testing.T) {
	a := NewFinancial(&mockMarketData{})

	assert.True(t, a.Applicable(model.CompanyQuery{Name: "Veolia Environnement SA"}))
	assert.True(t, a.Applicable(model.CompanyQuery{Name: "Apple Inc."}))
	assert.False(t, a.Applicable(model.CompanyQuery{Name: "Müller Umwelt GmbH"}))
	assert.False(t, a.Applicable(model.CompanyQuery{Name: "Veolia"}))
}

func TestFinancial_Fetch(t *testing.T) {
	a := NewFinancial(&mockMarketData{profile: listedProfile()})

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Veolia Environnement SA"})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Contains(t, res.Description, "water, waste and energy management")
	assert.Equal(t, "Waste Management", res.Industry)
	assert.Equal(t, "Estelle Brachlianoff", res.CEO)
	assert.Equal(t, "https://www.veolia.com", res.Website)
	assert.Equal(t, "213000 employees", res.EmployeeSizeLabel)
	assert.Equal(t, "Aubervilliers, France", res.Headquarters)
	assert.Equal(t, "Financial Data", res.SourceName)
	// Base 0.7 plus four populated fields capped at 0.9.
	assert.InDelta(t, 0.9, res.Confidence, 0.001)
	assert.Equal(t, 4, res.Priority)
}

func TestFinancial_NotListed(t *testing.T) {
	a := NewFinancial(&mockMarketData{})

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Private Co Inc"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestFinancial_ShortDescription(t *testing.T) {
	p := listedProfile()
	p.Description = "Short."
	a := NewFinancial(&mockMarketData{profile: p})

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Veolia Environnement SA"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestFinancial_SparseProfileConfidence(t *testing.T) {
	a := NewFinancial(&mockMarketData{profile: &marketdata.Profile{
		Description: "A listed company with a description long enough to pass the minimum length gate.",
	}})

	res, err := a.Fetch(context.Background(), model.CompanyQuery{Name: "Sparse Inc"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.InDelta(t, 0.7, res.Confidence, 0.001)
}

func TestHeadquartersLabel(t *testing.T) {
	assert.Equal(t, "Aubervilliers, France", headquartersLabel(&marketdata.Profile{City: "Aubervilliers", Country: "France"}))
	assert.Equal(t, "Aubervilliers", headquartersLabel(&marketdata.Profile{City: "Aubervilliers"}))
	assert.Equal(t, "France", headquartersLabel(&marketdata.Profile{Country: "France"}))
	assert.Empty(t, headquartersLabel(&marketdata.Profile{}))
}
