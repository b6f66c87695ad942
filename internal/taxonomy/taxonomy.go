// Package taxonomy holds the shared keyword classification table used
// by both the heuristic adapter and the fallback generator. It is the
// single source of truth for name-based industry classification.
package taxonomy

import (
	"os"
	"regexp"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/wastemetrics/enrich-cli/internal/names"
)

// Entry maps a name pattern to classification labels and the prose
// fragment used for template descriptions. Patterns are matched against
// the folded (lowercased, diacritic-stripped) company name, in order;
// the first match wins.
type Entry struct {
	Pattern      string `yaml:"pattern"`
	Industry     string `yaml:"industry"`
	BusinessType string `yaml:"business_type"`
	Fragment     string `yaml:"fragment"`

	re *regexp.Regexp
}

// Match is the outcome of classifying a company name.
type Match struct {
	Industry     string
	BusinessType string
	Fragment     string
}

// Table is an ordered, immutable classification table.
type Table struct {
	entries []Entry
}

var defaultEntries = []Entry{
	{
		Pattern:      `\bbank(ing|ers)?\b|bancorp|sparkasse|credit union`,
		Industry:     "Banking & Financial Services",
		BusinessType: "bank",
		Fragment:     "financial institution providing comprehensive banking and financial services",
	},
	{
		Pattern:      `insurance|insurer|assurance|versicherung|reinsurance`,
		Industry:     "Insurance",
		BusinessType: "insurance",
		Fragment:     "insurance provider offering risk management and coverage solutions",
	},
	{
		Pattern:      `pharma|biotech|therapeutics|laborator|medical`,
		Industry:     "Pharmaceuticals & Life Sciences",
		BusinessType: "pharma",
		Fragment:     "pharmaceutical and life sciences company developing healthcare products",
	},
	{
		Pattern:      `waste|recycl|environmental|disposal|sanitation`,
		Industry:     "Waste Management & Environmental Services",
		BusinessType: "waste",
		Fragment:     "environmental services company specializing in waste collection, treatment and recycling",
	},
	{
		Pattern:      `energy|power|electric|petroleum|\boil\b|\bgas\b|renewables?`,
		Industry:     "Energy & Utilities",
		BusinessType: "energy",
		Fragment:     "energy company engaged in the production and distribution of power and fuels",
	},
	{
		Pattern:      `software|\btech\b|digital|cloud|cyber|\bdata\b|systems`,
		Industry:     "Information Technology",
		BusinessType: "tech",
		Fragment:     "technology company delivering software and digital solutions",
	},
	{
		Pattern:      `automotive|motors?\b|vehicle`,
		Industry:     "Automotive",
		BusinessType: "automotive",
		Fragment:     "automotive company engaged in vehicle manufacturing and mobility solutions",
	},
	{
		Pattern:      `aerospace|aviation|airlines?|airways`,
		Industry:     "Aerospace & Aviation",
		BusinessType: "aerospace",
		Fragment:     "aerospace company serving the aviation and defense markets",
	},
	{
		Pattern:      `construction|builders?|infrastructure|engineering`,
		Industry:     "Construction & Engineering",
		BusinessType: "construction",
		Fragment:     "construction and engineering firm delivering infrastructure projects",
	},
	{
		Pattern:      `telecom|telekom|communications?\b|broadband|mobile`,
		Industry:     "Telecommunications",
		BusinessType: "telecom",
		Fragment:     "telecommunications provider operating network and connectivity services",
	},
	{
		Pattern:      `logistics|shipping|freight|cargo|transport|courier`,
		Industry:     "Transportation & Logistics",
		BusinessType: "logistics",
		Fragment:     "logistics company providing transportation and supply chain services",
	},
	{
		Pattern:      `media|broadcast|publish|entertainment|studios?\b`,
		Industry:     "Media & Entertainment",
		BusinessType: "media",
		Fragment:     "media company producing and distributing content",
	},
	{
		Pattern:      `retail|stores?\b|supermarket|\bmart\b`,
		Industry:     "Retail",
		BusinessType: "retail",
		Fragment:     "retail company operating consumer sales channels",
	},
	{
		Pattern:      `\bfood\b|beverage|brewer|dairy|agri`,
		Industry:     "Food & Beverage",
		BusinessType: "food",
		Fragment:     "food and beverage company producing consumer goods",
	},
}

// Default returns the built-in classification table.
func Default() *Table {
	t, err := newTable(defaultEntries)
	if err != nil {
		// The built-in patterns are compile-checked by tests.
		panic(err)
	}
	return t
}

// Load reads a YAML override table from path. The file holds a list of
// entries in the same shape as the built-in table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "taxonomy: read file")
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrap(err, "taxonomy: unmarshal")
	}
	if len(entries) == 0 {
		return nil, eris.New("taxonomy: file defines no entries")
	}

	return newTable(entries)
}

func newTable(entries []Entry) (*Table, error) {
	compiled := make([]Entry, len(entries))
	for i, e := range entries {
		re, err := regexp.Compile(e.Pattern)
		if err != nil {
			return nil, eris.Wrapf(err, "taxonomy: compile pattern %q", e.Pattern)
		}
		e.re = re
		compiled[i] = e
	}
	return &Table{entries: compiled}, nil
}

// Classify matches the company name against the table in order and
// returns the first hit. ok is false when no pattern matches.
func (t *Table) Classify(name string) (Match, bool) {
	folded := names.Fold(name)
	for _, e := range t.entries {
		if e.re.MatchString(folded) {
			return Match{
				Industry:     e.Industry,
				BusinessType: e.BusinessType,
				Fragment:     e.Fragment,
			}, true
		}
	}
	return Match{}, false
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}
