package scrape

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testExtractors = []Extractor{
	{Name: "primary", Pattern: regexp.MustCompile(`(?is)<div class="desc">(.*?)</div>`)},
	{Name: "meta", Pattern: regexp.MustCompile(`(?is)<meta name="description" content="([^"]+)"`)},
}

func TestExtractFirst_PrimaryRegion(t *testing.T) {
	page := `<div class="desc">Veolia provides water, waste and energy management services across five continents.</div>`

	text, region := ExtractFirst(page, testExtractors, 20)
	assert.Equal(t, "primary", region)
	assert.Contains(t, text, "Veolia provides water")
}

func TestExtractFirst_FallsThroughShortCapture(t *testing.T) {
	page := `<div class="desc">Short.</div>
<meta name="description" content="A longer meta description that easily passes the minimum length requirement.">`

	text, region := ExtractFirst(page, testExtractors, 20)
	assert.Equal(t, "meta", region)
	assert.Contains(t, text, "longer meta description")
}

func TestExtractFirst_NothingMatches(t *testing.T) {
	text, region := ExtractFirst("<html><body>nothing here</body></html>", testExtractors, 20)
	assert.Empty(t, text)
	assert.Empty(t, region)
}

func TestCleanText(t *testing.T) {
	in := `  Veolia <b>Environnement</b> &amp; partners
	operate   worldwide  `
	assert.Equal(t, "Veolia Environnement & partners operate worldwide", CleanText(in))
}
