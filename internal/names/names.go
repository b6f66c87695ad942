// Package names normalizes company names for lookups and keyword
// matching.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// corporateSuffixes are trailing legal-form tokens stripped before
// title-based lookups (encyclopedia queries match article titles, which
// rarely carry the legal form).
var corporateSuffixes = map[string]bool{
	"ag":           true,
	"sa":           true,
	"spa":          true,
	"se":           true,
	"nv":           true,
	"ltd":          true,
	"limited":      true,
	"inc":          true,
	"incorporated": true,
	"corp":         true,
	"corporation":  true,
	"gmbh":         true,
	"plc":          true,
	"llc":          true,
	"llp":          true,
	"co":           true,
}

// listedSuffixes are legal forms that usually indicate a publicly
// listed company, used to gate the financial-data lookup.
var listedSuffixes = map[string]bool{
	"ag":   true,
	"sa":   true,
	"se":   true,
	"nv":   true,
	"inc":  true,
	"corp": true,
	"plc":  true,
	"spa":  true,
}

// Fold lowercases s and strips diacritics so keyword matching is stable
// across spellings like "Müller" and "Muller".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// StripCorporateSuffix removes trailing legal-form suffixes from a
// company name. It never strips the whole name.
func StripCorporateSuffix(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	for len(fields) > 1 {
		last := strings.ToLower(strings.Trim(fields[len(fields)-1], ".,"))
		if !corporateSuffixes[last] {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// HasListedSuffix reports whether the name carries a legal form that
// signals a publicly listed company.
func HasListedSuffix(name string) bool {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) < 2 {
		return false
	}
	last := strings.ToLower(strings.Trim(fields[len(fields)-1], ".,"))
	return listedSuffixes[last]
}
