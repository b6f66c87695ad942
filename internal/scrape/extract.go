package scrape

import (
	"html"
	"regexp"
	"strings"
)

// Extractor names one content region of a result page and the pattern
// that captures its text.
type Extractor struct {
	Name    string
	Pattern *regexp.Regexp
}

var tagRe = regexp.MustCompile(`<[^>]*>`)
var spaceRe = regexp.MustCompile(`\s+`)

// ExtractFirst tries the extractors in order against the page and
// returns the first capture that survives cleanup with at least
// minChars characters. Shorter captures are treated as absent, not as
// low-quality hits.
func ExtractFirst(page string, extractors []Extractor, minChars int) (string, string) {
	for _, ex := range extractors {
		m := ex.Pattern.FindStringSubmatch(page)
		if len(m) < 2 {
			continue
		}
		text := CleanText(m[1])
		if len(text) >= minChars {
			return text, ex.Name
		}
	}
	return "", ""
}

// CleanText strips markup, decodes entities and collapses whitespace.
func CleanText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
