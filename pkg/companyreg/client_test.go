package companyreg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileJSON = `{
	"company_name": "BIFFA WASTE SERVICES LIMITED",
	"company_number": "00946107",
	"company_status": "active",
	"type": "ltd",
	"date_of_creation": "1912-04-09",
	"sic_codes": ["38110", "38320"],
	"registered_office_address": {
		"address_line_1": "Coronation Road",
		"locality": "High Wycombe",
		"postal_code": "HP12 3TZ",
		"country": "England"
	}
}`

func TestProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company/00946107", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "test-key", user)

		_, _ = w.Write([]byte(profileJSON))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	p, err := c.Profile(context.Background(), "00946107")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "BIFFA WASTE SERVICES LIMITED", p.CompanyName)
	assert.Equal(t, "active", p.CompanyStatus)
	assert.Equal(t, []string{"38110", "38320"}, p.SICCodes)
	assert.Equal(t, "Coronation Road, High Wycombe, HP12 3TZ", p.Address())
}

func TestProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	p, err := c.Profile(context.Background(), "99999999")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSearchByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/companies", r.URL.Path)
		assert.Equal(t, "Biffa", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("items_per_page"))

		_, _ = w.Write([]byte(`{"items": [` + profileJSON + `]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	p, err := c.SearchByName(context.Background(), "Biffa")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "00946107", p.CompanyNumber)
}

func TestSearchByName_NoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	p, err := c.SearchByName(context.Background(), "Nobody At All")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfile_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key", WithBaseURL(srv.URL))

	_, err := c.Profile(context.Background(), "00946107")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")
}

func TestAddress_Empty(t *testing.T) {
	p := &CompanyProfile{}
	assert.Empty(t, p.Address())
}
