package company

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/wastemetrics/enrich-cli/internal/db"
	"github.com/wastemetrics/enrich-cli/internal/model"
)

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "company: parse pool config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "company: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "company: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool (used by tests).
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const migration = `
CREATE TABLE IF NOT EXISTS companies (
	id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name                TEXT NOT NULL,
	country             TEXT NOT NULL DEFAULT '',
	registration_number TEXT NOT NULL DEFAULT '',
	description         TEXT NOT NULL DEFAULT '',
	industry            TEXT NOT NULL DEFAULT '',
	founded             TEXT NOT NULL DEFAULT '',
	headquarters        TEXT NOT NULL DEFAULT '',
	employee_size       TEXT NOT NULL DEFAULT '',
	website             TEXT NOT NULL DEFAULT '',
	ceo                 TEXT NOT NULL DEFAULT '',
	revenue             TEXT NOT NULL DEFAULT '',
	linkedin_url        TEXT NOT NULL DEFAULT '',
	logo_url            TEXT NOT NULL DEFAULT '',
	source              TEXT NOT NULL DEFAULT '',
	confidence          DOUBLE PRECISION NOT NULL DEFAULT 0,
	last_enriched_at    TIMESTAMPTZ,
	last_run_id         TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (name, country)
);

CREATE INDEX IF NOT EXISTS idx_companies_source ON companies(source);
CREATE INDEX IF NOT EXISTS idx_companies_country ON companies(country);
`

// Migrate applies the embedded schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, migration)
	return eris.Wrap(err, "company: migrate")
}

// Ping checks connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "company: ping")
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

const companyColumns = `id, name, country, registration_number, description, industry,
	founded, headquarters, employee_size, website, ceo, revenue,
	linkedin_url, logo_url, source, confidence, last_enriched_at, last_run_id,
	created_at, updated_at`

func companyDests(c *CompanyRecord) []any {
	return []any{
		&c.ID, &c.Name, &c.Country, &c.RegistrationNumber, &c.Description, &c.Industry,
		&c.Founded, &c.Headquarters, &c.EmployeeSize, &c.Website, &c.CEO, &c.Revenue,
		&c.LinkedInURL, &c.LogoURL, &c.Source, &c.Confidence, &c.LastEnrichedAt, &c.LastRunID,
		&c.CreatedAt, &c.UpdatedAt,
	}
}

// CreateCompany inserts a new company and sets its ID.
func (s *PostgresStore) CreateCompany(ctx context.Context, c *CompanyRecord) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO companies (name, country, registration_number, description, industry,
			founded, headquarters, employee_size, website, ceo, revenue,
			linkedin_url, logo_url, source, confidence, last_run_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Country, c.RegistrationNumber, c.Description, c.Industry,
		c.Founded, c.Headquarters, c.EmployeeSize, c.Website, c.CEO, c.Revenue,
		c.LinkedInURL, c.LogoURL, c.Source, c.Confidence, c.LastRunID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return eris.Wrap(err, "company: create")
	}
	return nil
}

// GetCompany fetches a company by ID, or nil when it does not exist.
func (s *PostgresStore) GetCompany(ctx context.Context, id int64) (*CompanyRecord, error) {
	c := &CompanyRecord{}
	err := s.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id=$1`, id).
		Scan(companyDests(c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "company: get %d", id)
	}
	return c, nil
}

// GetCompanyByName fetches a company by its unique (name, country) pair.
func (s *PostgresStore) GetCompanyByName(ctx context.Context, name, country string) (*CompanyRecord, error) {
	c := &CompanyRecord{}
	err := s.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE name=$1 AND country=$2`, name, country).
		Scan(companyDests(c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "company: get by name %s", name)
	}
	return c, nil
}

// ListNeedingEnrichment returns companies with no description or a
// template-generated one, oldest first.
func (s *PostgresStore) ListNeedingEnrichment(ctx context.Context, limit int) ([]CompanyRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		WHERE description = '' OR source LIKE 'Generated%'
		ORDER BY id
		LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "company: list needing enrichment")
	}
	defer rows.Close()

	var companies []CompanyRecord
	for rows.Next() {
		var c CompanyRecord
		if err := rows.Scan(companyDests(&c)...); err != nil {
			return nil, eris.Wrap(err, "company: scan")
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "company: list iterate")
}

// ApplyEnrichment writes the enriched record onto a stored profile.
func (s *PostgresStore) ApplyEnrichment(ctx context.Context, companyID int64, rec model.EnrichedRecord, runID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE companies SET
			description=$2, industry=$3, founded=$4, headquarters=$5,
			employee_size=$6, website=$7, ceo=$8, revenue=$9,
			linkedin_url=$10, logo_url=$11, source=$12, confidence=$13,
			last_enriched_at=now(), last_run_id=$14, updated_at=now()
		WHERE id=$1`,
		companyID,
		rec.Description, rec.Industry, rec.Founded, rec.Headquarters,
		rec.EmployeeSizeLabel, rec.Website, rec.CEO, rec.Revenue,
		rec.LinkedIn, rec.Logo, rec.Source, rec.Confidence,
		runID,
	)
	if err != nil {
		return eris.Wrapf(err, "company: apply enrichment %d", companyID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("company: not found: %d", companyID)
	}
	return nil
}

// BulkInsert loads imported companies via COPY.
func (s *PostgresStore) BulkInsert(ctx context.Context, companies []CompanyRecord) (int64, error) {
	if len(companies) == 0 {
		return 0, nil
	}
	rows := make([][]any, len(companies))
	for i, c := range companies {
		rows[i] = []any{c.Name, c.Country, c.RegistrationNumber}
	}
	return db.CopyFrom(ctx, s.pool, "companies",
		[]string{"name", "country", "registration_number"}, rows)
}
