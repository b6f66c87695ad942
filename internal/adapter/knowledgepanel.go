package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wastemetrics/enrich-cli/internal/model"
	"github.com/wastemetrics/enrich-cli/internal/scrape"
	"github.com/wastemetrics/enrich-cli/pkg/serp"
)

const knowledgePanelConfidence = 0.8

// descriptionExtractors are tried in order against the result page;
// the first region yielding enough text wins.
var descriptionExtractors = []scrape.Extractor{
	{Name: "knowledge_panel", Pattern: regexp.MustCompile(`(?is)<div[^>]+class="[^"]*kno-rdesc[^"]*"[^>]*>\s*<span[^>]*>(.*?)</span>`)},
	{Name: "item_description", Pattern: regexp.MustCompile(`(?is)<div[^>]+itemprop="description"[^>]*>(.*?)</div>`)},
	{Name: "og_description", Pattern: regexp.MustCompile(`(?is)<meta[^>]+property="og:description"[^>]+content="([^"]+)"`)},
	{Name: "meta_description", Pattern: regexp.MustCompile(`(?is)<meta[^>]+name="description"[^>]+content="([^"]+)"`)},
}

var industryExtractors = []scrape.Extractor{
	{Name: "panel_industry", Pattern: regexp.MustCompile(`(?is)Industry\s*:?\s*</[^>]+>\s*<[^>]+>([^<]+)`)},
}

var headquartersExtractors = []scrape.Extractor{
	{Name: "panel_headquarters", Pattern: regexp.MustCompile(`(?is)Headquarters\s*:?\s*</[^>]+>\s*<[^>]+>([^<]+)`)},
}

// KnowledgePanel extracts a business-description panel from a web
// search for the company.
type KnowledgePanel struct {
	client  serp.Client
	timeout time.Duration
}

// NewKnowledgePanel creates the adapter. timeout bounds each search
// request independently of the orchestrator's overall deadline.
func NewKnowledgePanel(client serp.Client, timeout time.Duration) *KnowledgePanel {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &KnowledgePanel{client: client, timeout: timeout}
}

func (a *KnowledgePanel) Name() string { return "Knowledge Panel" }

func (a *KnowledgePanel) Priority() int { return 1 }

func (a *KnowledgePanel) Applicable(q model.CompanyQuery) bool { return q.Name != "" }

func (a *KnowledgePanel) Fetch(ctx context.Context, q model.CompanyQuery) (*model.SourceResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	query := strings.TrimSpace(fmt.Sprintf("%s %s company overview", q.Name, q.Country))
	page, err := a.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if blocked, kind := scrape.DetectBlock(page.StatusCode, page.Header, []byte(page.HTML)); blocked {
		zap.L().Debug("knowledge panel: blocked response",
			zap.String("company", q.Name),
			zap.String("block_type", string(kind)),
		)
		return nil, nil
	}

	desc, region := scrape.ExtractFirst(page.HTML, descriptionExtractors, minDescriptionChars)
	if desc == "" {
		return nil, nil
	}

	industry, _ := scrape.ExtractFirst(page.HTML, industryExtractors, minFieldChars)
	hq, _ := scrape.ExtractFirst(page.HTML, headquartersExtractors, minFieldChars)

	zap.L().Debug("knowledge panel: description found",
		zap.String("company", q.Name),
		zap.String("region", region),
	)

	return &model.SourceResult{
		Description:  desc,
		Industry:     industry,
		Headquarters: hq,
		SourceName:   a.Name(),
		Confidence:   knowledgePanelConfidence,
		Priority:     a.Priority(),
	}, nil
}
