package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// statements is the full schema, applied in dependency order. Every
// statement is idempotent so Migrate can run on every startup.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT true,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS municipalities (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		department  TEXT NOT NULL,
		email       TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		website_url TEXT NOT NULL DEFAULT '',
		created_by  TEXT NOT NULL REFERENCES users(id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS companies (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		business_sector TEXT NOT NULL DEFAULT '',
		login_email     TEXT NOT NULL UNIQUE,
		username        TEXT NOT NULL UNIQUE,
		password_hash   TEXT NOT NULL,
		website         TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		municipality_id TEXT NOT NULL REFERENCES municipalities(id),
		created_by      TEXT NOT NULL REFERENCES users(id),
		is_active       BOOLEAN NOT NULL DEFAULT true,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS job_offers (
		id                   TEXT PRIMARY KEY,
		title                TEXT NOT NULL,
		description          TEXT NOT NULL,
		requirements         TEXT NOT NULL,
		location             TEXT NOT NULL,
		contract_type        TEXT NOT NULL,
		work_schedule        TEXT NOT NULL,
		work_modality        TEXT NOT NULL,
		experience_level     TEXT NOT NULL,
		category             TEXT NOT NULL DEFAULT '',
		municipality         TEXT NOT NULL,
		department           TEXT NOT NULL DEFAULT '',
		company_id           TEXT NOT NULL REFERENCES companies(id),
		skills_required      TEXT[] NOT NULL DEFAULT '{}',
		desired_skills       TEXT[] NOT NULL DEFAULT '{}',
		images               TEXT[] NOT NULL DEFAULT '{}',
		salary_min           DOUBLE PRECISION,
		salary_max           DOUBLE PRECISION,
		application_deadline TIMESTAMPTZ,
		status               TEXT NOT NULL DEFAULT 'ACTIVE',
		is_active            BOOLEAN NOT NULL DEFAULT true,
		published_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_job_offers_company
		ON job_offers(company_id)`,

	`CREATE INDEX IF NOT EXISTS idx_job_offers_public
		ON job_offers(municipality, status) WHERE is_active = true`,
}

// Migrate applies the schema inside a single transaction.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("migrate begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate exec: %w", err)
		}
	}

	return tx.Commit(ctx)
}
