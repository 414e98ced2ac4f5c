package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cemse/placement-service/internal/auth"
	"cemse/placement-service/internal/model"
)

// ErrUnknownMunicipality is returned for a municipality id outside the
// seed catalog. Callers translate it to a field-level validation error.
var ErrUnknownMunicipality = errors.New("unknown municipality")

// Provisioner synthesizes minimal valid rows for missing foreign-key
// targets. All Ensure methods run inside the caller's transaction so a
// failed parent insert rolls the synthesized rows back too.
type Provisioner struct {
	catalog *Catalog
}

// New returns a Provisioner over the given seed catalog.
func New(catalog *Catalog) *Provisioner {
	return &Provisioner{catalog: catalog}
}

// Catalog exposes the seed catalog, for validation messages.
func (p *Provisioner) Catalog() *Catalog {
	return p.catalog
}

// EnsureMunicipality guarantees a municipality row with the given id exists.
// Recognized ids are inserted together with the locked creator user the
// created_by relationship requires. Concurrent callers racing on the same
// seed are safe: the inserts are ON CONFLICT DO NOTHING, so the loser of
// the race proceeds as "already exists".
func (p *Provisioner) EnsureMunicipality(ctx context.Context, tx pgx.Tx, id string) error {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM municipalities WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check municipality %s: %w", id, err)
	}
	if exists {
		return nil
	}

	seed, ok := p.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMunicipality, id)
	}

	// The municipality's creator relationship is mandatory, so the seed
	// carries its own locked government account.
	creatorID := "seed-" + seed.ID
	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, true)
		 ON CONFLICT DO NOTHING`,
		creatorID, "gobierno_"+seed.ID, auth.LockedPasswordHash, string(auth.RoleMunicipalGovernments),
	)
	if err != nil {
		return fmt.Errorf("seed municipality user %s: %w", creatorID, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO municipalities (id, name, department, email, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		seed.ID, seed.Name, seed.Department, seed.Email, creatorID,
	)
	if err != nil {
		return fmt.Errorf("seed municipality %s: %w", seed.ID, err)
	}
	return nil
}

// EnsureOperator guarantees a user row for a mock development identity so
// created_by references resolve. No-op outside development flows.
func (p *Provisioner) EnsureOperator(ctx context.Context, tx pgx.Tx, id *auth.Identity) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, is_active)
		 VALUES ($1, $1, $2, $3, true)
		 ON CONFLICT DO NOTHING`,
		id.ID, auth.LockedPasswordHash, string(id.Role),
	)
	if err != nil {
		return fmt.Errorf("ensure operator %s: %w", id.ID, err)
	}
	return nil
}

// EnsureCompanyForUser guarantees a company row for a COMPANIES-role user
// publishing an offer before registration completed. The company reuses the
// user's id so the identity stays permanently addressable; attributes come
// from the user row with placeholder fallbacks.
func (p *Provisioner) EnsureCompanyForUser(ctx context.Context, tx pgx.Tx, user *model.User) (string, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, user.ID,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("check company %s: %w", user.ID, err)
	}
	if exists {
		return user.ID, nil
	}

	name := user.Username
	if name == "" {
		name = "Empresa " + user.ID
	}

	def := p.catalog.Default()
	if err := p.EnsureMunicipality(ctx, tx, def.ID); err != nil {
		return "", err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO companies
		   (id, name, login_email, username, password_hash, municipality_id, created_by, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $1, true)
		 ON CONFLICT (id) DO NOTHING`,
		user.ID, name, user.ID+"@autocreated.local", user.Username, user.PasswordHash, def.ID,
	)
	if err != nil {
		return "", fmt.Errorf("auto-create company for user %s: %w", user.ID, err)
	}
	return user.ID, nil
}

// Bootstrap idempotently creates every catalog seed at startup, separating
// "ensure default data exists" from the request write path. The request-path
// EnsureMunicipality stays as the race-safe fallback for fresh databases.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool, p *Provisioner) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range p.catalog.IDs() {
		if err := p.EnsureMunicipality(ctx, tx, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
