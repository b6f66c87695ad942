package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile", r.URL.Path)
		assert.Equal(t, "Veolia Environnement SA", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		_, _ = w.Write([]byte(`[{
			"symbol": "VIE.PA",
			"companyName": "Veolia Environnement SA",
			"description": "Provides water, waste and energy management services.",
			"industry": "Waste Management",
			"ceo": "Estelle Brachlianoff",
			"website": "https://www.veolia.com",
			"fullTimeEmployees": "213000",
			"city": "Aubervilliers",
			"country": "France"
		}]`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	p, err := c.Profile(context.Background(), "Veolia Environnement SA")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "VIE.PA", p.Symbol)
	assert.Equal(t, "Waste Management", p.Industry)
	assert.Equal(t, "213000", p.FullTimeEmployees)
}

func TestProfile_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	p, err := c.Profile(context.Background(), "Not Listed Ltd")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	p, err := c.Profile(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfile_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("bad-key", WithBaseURL(srv.URL))

	_, err := c.Profile(context.Background(), "Veolia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
}

func TestProfile_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := c.Profile(context.Background(), "Veolia")
	assert.Error(t, err)
}
