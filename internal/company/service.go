package company

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"cemse/placement-service/internal/api"
	"cemse/placement-service/internal/auth"
	"cemse/placement-service/internal/model"
	"cemse/placement-service/internal/provision"
)

// Service encapsulates company business logic. It is transport-agnostic.
type Service struct {
	pool   *pgxpool.Pool
	rdb    *redis.Client
	prov   *provision.Provisioner
	hasher *auth.Hasher
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client, prov *provision.Provisioner, hasher *auth.Hasher) *Service {
	return &Service{pool: pool, rdb: rdb, prov: prov, hasher: hasher}
}

// Create registers a company: one transaction inserts the login User and
// the Company (sharing one id), provisioning the municipality seed first
// when needed. Validation and uniqueness pre-checks short-circuit before
// any write, so a non-201 outcome means nothing was persisted.
func (s *Service) Create(ctx context.Context, creator *auth.Identity, req *CreateRequest) (*CredentialsReveal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create company begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if creator.Mock {
		if err := s.prov.EnsureOperator(ctx, tx, creator); err != nil {
			return nil, err
		}
	}

	if err := s.prov.EnsureMunicipality(ctx, tx, req.MunicipalityID); err != nil {
		if errors.Is(err, provision.ErrUnknownMunicipality) {
			return nil, &api.ValidationError{Field: "municipalityId", Msg: fmt.Sprintf("unknown municipality %q", req.MunicipalityID)}
		}
		return nil, err
	}

	// The company shares the login user's id, keeping the 1:1 link
	// addressable by either row.
	id := uuid.NewString()

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, true)`,
		id, req.Username, passwordHash, string(auth.RoleCompanies),
	)
	if err != nil {
		return nil, translateUnique(err)
	}

	var c model.Company
	err = tx.QueryRow(ctx,
		`INSERT INTO companies
		   (id, name, description, business_sector, login_email, username,
		    password_hash, website, phone, municipality_id, created_by, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, true)
		 RETURNING id, name, description, business_sector, login_email, username,
		           website, phone, municipality_id, created_by, is_active,
		           created_at, updated_at`,
		id, req.Name, req.Description, req.BusinessSector, req.Email, req.Username,
		passwordHash, req.Website, req.Phone, req.MunicipalityID, creator.ID,
	).Scan(
		&c.ID, &c.Name, &c.Description, &c.BusinessSector, &c.LoginEmail, &c.Username,
		&c.Website, &c.Phone, &c.MunicipalityID, &c.CreatedBy, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, translateUnique(err)
	}

	municipality, err := fetchMunicipality(ctx, tx, c.MunicipalityID)
	if err != nil {
		return nil, err
	}
	creatorRow, err := fetchUserSummary(ctx, tx, creator.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create company commit: %w", err)
	}

	s.publishCreated(ctx, &c)

	return &CredentialsReveal{
		Response: Response{Company: c, Municipality: municipality, Creator: creatorRow},
		Password: req.Password,
	}, nil
}

// List returns all active companies, newest first, hashes stripped.
func (s *Service) List(ctx context.Context) ([]model.Company, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, business_sector, login_email, username,
		        website, phone, municipality_id, created_by, is_active,
		        created_at, updated_at
		 FROM companies
		 WHERE is_active = true
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	out := make([]model.Company, 0)
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.BusinessSector, &c.LoginEmail, &c.Username,
			&c.Website, &c.Phone, &c.MunicipalityID, &c.CreatedBy, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list companies scan: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Get returns a single company with its municipality nested.
func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	var c model.Company
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, business_sector, login_email, username,
		        website, phone, municipality_id, created_by, is_active,
		        created_at, updated_at
		 FROM companies WHERE id = $1`,
		id,
	).Scan(
		&c.ID, &c.Name, &c.Description, &c.BusinessSector, &c.LoginEmail, &c.Username,
		&c.Website, &c.Phone, &c.MunicipalityID, &c.CreatedBy, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("get company %s: %w", id, err)
	}

	municipality, err := fetchMunicipality(ctx, s.pool, c.MunicipalityID)
	if err != nil {
		return nil, err
	}
	return &Response{Company: c, Municipality: municipality}, nil
}

// checkUniqueness pre-checks username and login email so duplicates yield
// field-named messages instead of raw constraint-violation text.
func (s *Service) checkUniqueness(ctx context.Context, username, email string) error {
	var taken bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)
		     OR EXISTS (SELECT 1 FROM companies WHERE username = $1)`,
		username,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return &api.ConflictError{Field: "username"}
	}

	err = s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM companies WHERE login_email = $1)`,
		email,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return &api.ConflictError{Field: "email"}
	}
	return nil
}

// translateUnique converts a duplicate-key race that slipped past the
// pre-check into the same field-named conflict the pre-check would have
// produced.
func translateUnique(err error) error {
	if api.IsUniqueViolation(err) {
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		field := "username"
		if strings.Contains(pgErr.ConstraintName, "email") {
			field = "email"
		}
		return &api.ConflictError{Field: field}
	}
	return fmt.Errorf("create company: %w", err)
}

// row abstracts pgx.Tx and *pgxpool.Pool for the shared fetch helpers.
type row interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func fetchMunicipality(ctx context.Context, q row, id string) (*model.Municipality, error) {
	var m model.Municipality
	err := q.QueryRow(ctx,
		`SELECT id, name, department, email, phone, website_url, created_by,
		        created_at, updated_at
		 FROM municipalities WHERE id = $1`,
		id,
	).Scan(&m.ID, &m.Name, &m.Department, &m.Email, &m.Phone, &m.WebsiteURL,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("fetch municipality %s: %w", id, err)
	}
	return &m, nil
}

func fetchUserSummary(ctx context.Context, q row, id string) (*UserSummary, error) {
	var u UserSummary
	err := q.QueryRow(ctx,
		`SELECT id, username, role FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user %s: %w", id, err)
	}
	return &u, nil
}

// publishCreated notifies the gateway for SSE forwarding (non-fatal).
func (s *Service) publishCreated(ctx context.Context, c *model.Company) {
	event, _ := json.Marshal(map[string]string{
		"type":      "EVENT_COMPANY_CREATED",
		"companyId": c.ID,
		"name":      c.Name,
		"createdBy": c.CreatedBy,
	})
	if err := s.rdb.Publish(ctx, "EVENT_COMPANY_CREATED", event).Err(); err != nil {
		slog.Warn("publish EVENT_COMPANY_CREATED failed", "err", err)
	}
}
