package company

import (
	"context"

	"github.com/wastemetrics/enrich-cli/internal/model"
)

// Store defines persistence operations for company profiles.
type Store interface {
	CreateCompany(ctx context.Context, c *CompanyRecord) error
	GetCompany(ctx context.Context, id int64) (*CompanyRecord, error)
	GetCompanyByName(ctx context.Context, name, country string) (*CompanyRecord, error)

	// ListNeedingEnrichment returns companies whose description is
	// missing or only template-generated.
	ListNeedingEnrichment(ctx context.Context, limit int) ([]CompanyRecord, error)

	// ApplyEnrichment writes an enriched record back onto a stored
	// profile, stamping provenance, confidence, run ID and timestamp.
	ApplyEnrichment(ctx context.Context, companyID int64, rec model.EnrichedRecord, runID string) error

	// BulkInsert loads imported companies via COPY, skipping nothing;
	// callers dedupe beforehand.
	BulkInsert(ctx context.Context, companies []CompanyRecord) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
