package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/internal/names"
	"github.com/wastemetrics/enrich-cli/pkg/companyreg"
)

const (
	registryBaseConfidence = 0.7
	registryMaxConfidence  = 0.9
	registryFieldBonus     = 0.05
)

// ukCountries are country spellings that make the UK registry
// applicable without a registration number.
var ukCountries = map[string]bool{
	"uk":             true,
	"gb":             true,
	"great britain":  true,
	"united kingdom": true,
	"england":        true,
	"scotland":       true,
	"wales":          true,
}

// Registry builds a templated description from the structured fields of
// a company registry record.
type Registry struct {
	client companyreg.Client
}

// NewRegistry creates the adapter.
func NewRegistry(client companyreg.Client) *Registry {
	return &Registry{client: client}
}

func (a *Registry) Name() string { return "Company Registry" }

func (a *Registry) Priority() int { return 3 }

// Applicable requires either an explicit registration number or a UK
// country signal; the registry covers a single jurisdiction.
func (a *Registry) Applicable(q model.CompanyQuery) bool {
	if q.RegistrationNumber != "" {
		return true
	}
	return ukCountries[names.Fold(q.Country)]
}

func (a *Registry) Fetch(ctx context.Context, q model.CompanyQuery) (*model.SourceResult, error) {
	var (
		profile *companyreg.CompanyProfile
		err     error
	)
	if q.RegistrationNumber != "" {
		profile, err = a.client.Profile(ctx, q.RegistrationNumber)
	} else {
		profile, err = a.client.SearchByName(ctx, q.Name)
	}
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	name := profile.CompanyName
	if name == "" {
		name = q.Name
	}

	// Confidence scales with how many structured fields the record
	// actually carries.
	confidence := registryBaseConfidence
	populated := 0

	var b strings.Builder
	if profile.Type != "" {
		fmt.Fprintf(&b, "%s is a %s company registered in the United Kingdom", name, humanizeCompanyType(profile.Type))
		populated++
	} else {
		fmt.Fprintf(&b, "%s is a company registered in the United Kingdom", name)
	}
	if profile.CompanyNumber != "" {
		fmt.Fprintf(&b, " (company number %s)", profile.CompanyNumber)
	}
	b.WriteString(".")

	founded := ""
	if profile.DateOfCreation != "" {
		fmt.Fprintf(&b, " The company was incorporated on %s", profile.DateOfCreation)
		if profile.CompanyStatus != "" {
			fmt.Fprintf(&b, " and is currently %s", profile.CompanyStatus)
		}
		b.WriteString(".")
		founded = profile.DateOfCreation
		populated++
	} else if profile.CompanyStatus != "" {
		fmt.Fprintf(&b, " The company is currently %s.", profile.CompanyStatus)
	}
	if profile.CompanyStatus != "" {
		populated++
	}

	hq := profile.Address()
	if hq != "" {
		fmt.Fprintf(&b, " Its registered office is at %s.", hq)
		populated++
	}

	industry := ""
	if len(profile.SICCodes) > 0 {
		industry = sicIndustry(profile.SICCodes[0])
		if industry != "" {
			fmt.Fprintf(&b, " The company operates in the %s sector.", industry)
			populated++
		}
	}

	confidence += float64(populated) * registryFieldBonus
	if confidence > registryMaxConfidence {
		confidence = registryMaxConfidence
	}

	return &model.SourceResult{
		Description:  b.String(),
		Industry:     industry,
		Founded:      founded,
		Headquarters: hq,
		SourceName:   a.Name(),
		Confidence:   confidence,
		Priority:     a.Priority(),
	}, nil
}

func humanizeCompanyType(t string) string {
	switch t {
	case "ltd", "private-limited-guarant-nsc", "private-limited-shares-section-30-exemption":
		return "private limited"
	case "plc":
		return "public limited"
	case "llp":
		return "limited liability partnership"
	default:
		return strings.ReplaceAll(t, "-", " ")
	}
}

// sicIndustry maps the leading digits of a SIC code to a coarse sector
// label. Only the divisions that matter for the platform are mapped;
// unknown codes yield no industry.
func sicIndustry(code string) string {
	if len(code) < 2 {
		return ""
	}
	switch code[:2] {
	case "38", "39":
		return "Waste Management & Environmental Services"
	case "35":
		return "Energy & Utilities"
	case "41", "42", "43":
		return "Construction & Engineering"
	case "49", "50", "51", "52", "53":
		return "Transportation & Logistics"
	case "58", "59", "60":
		return "Media & Entertainment"
	case "61":
		return "Telecommunications"
	case "62", "63":
		return "Information Technology"
	case "64", "66":
		return "Banking & Financial Services"
	case "65":
		return "Insurance"
	case "21":
		return "Pharmaceuticals & Life Sciences"
	case "29":
		return "Automotive"
	case "30":
		return "Aerospace & Aviation"
	case "45", "46", "47":
		return "Retail"
	case "10", "11":
		return "Food & Beverage"
	default:
		return ""
	}
}
