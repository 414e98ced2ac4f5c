package joboffer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"cemse/placement-service/internal/api"
	"cemse/placement-service/internal/auth"
	"cemse/placement-service/internal/model"
	"cemse/placement-service/internal/provision"
)

const offerColumns = `id, title, description, requirements, location,
	contract_type, work_schedule, work_modality, experience_level, category,
	municipality, department, company_id, skills_required, desired_skills,
	images, salary_min, salary_max, application_deadline, status, is_active,
	published_at, created_at, updated_at`

// Service encapsulates job-offer business logic. It is transport-agnostic.
type Service struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	prov *provision.Provisioner
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client, prov *provision.Provisioner) *Service {
	return &Service{pool: pool, rdb: rdb, prov: prov}
}

// Create publishes a job offer. When a COMPANIES-role identity references
// its own id but no company row exists yet, one is auto-provisioned inside
// the same transaction as the offer insert.
func (s *Service) Create(ctx context.Context, identity *auth.Identity, req *CreateRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	deadline := ParseDeadline(req.ApplicationDeadline)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create offer begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if identity.Mock {
		if err := s.prov.EnsureOperator(ctx, tx, identity); err != nil {
			return nil, err
		}
	}

	company, err := s.resolveCompany(ctx, tx, identity, req.CompanyID)
	if err != nil {
		return nil, err
	}

	var o model.JobOffer
	err = tx.QueryRow(ctx,
		`INSERT INTO job_offers
		   (id, title, description, requirements, location, contract_type,
		    work_schedule, work_modality, experience_level, category,
		    municipality, department, company_id, skills_required,
		    desired_skills, images, salary_min, salary_max,
		    application_deadline, status, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		         $14, $15, $16, $17, $18, $19, $20, true)
		 RETURNING `+offerColumns,
		uuid.NewString(), req.Title, req.Description, req.Requirements,
		req.Location, req.ContractType, req.WorkSchedule, req.WorkModality,
		req.ExperienceLevel, req.Category, req.Municipality, req.Department,
		company.ID, emptyIfNil(req.SkillsRequired), emptyIfNil(req.DesiredSkills),
		[]string{}, req.SalaryMin, req.SalaryMax, deadline, string(StatusActive),
	).Scan(scanTargets(&o)...)
	if err != nil {
		return nil, fmt.Errorf("create offer insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create offer commit: %w", err)
	}

	s.publishCreated(ctx, &o)

	return &Response{JobOffer: o, Company: company}, nil
}

// List returns offers matching the filters. Without a company filter the
// listing is public: only active offers, regardless of the other filters.
func (s *Service) List(ctx context.Context, f ListFilters) ([]Response, error) {
	query := `SELECT ` + offerColumns + ` FROM job_offers WHERE 1=1`
	args := []any{}

	if f.CompanyID != "" {
		args = append(args, f.CompanyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	} else {
		query += " AND is_active = true"
	}
	if f.Status != "" {
		st, err := ParseStatus(f.Status)
		if err != nil {
			return nil, &api.ValidationError{Field: "status", Msg: err.Error()}
		}
		args = append(args, string(st))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Municipality != "" {
		args = append(args, f.Municipality)
		query += fmt.Sprintf(" AND municipality = $%d", len(args))
	}
	query += " ORDER BY published_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	out := make([]Response, 0)
	for rows.Next() {
		var o model.JobOffer
		if err := rows.Scan(scanTargets(&o)...); err != nil {
			return nil, fmt.Errorf("list offers scan: %w", err)
		}
		out = append(out, Response{JobOffer: o})
	}
	return out, nil
}

// Get returns a single offer with its company nested.
func (s *Service) Get(ctx context.Context, id string) (*Response, error) {
	var o model.JobOffer
	err := s.pool.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM job_offers WHERE id = $1`, id,
	).Scan(scanTargets(&o)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("get offer %s: %w", id, err)
	}

	var cs CompanySummary
	err = s.pool.QueryRow(ctx,
		`SELECT id, name, login_email FROM companies WHERE id = $1`, o.CompanyID,
	).Scan(&cs.ID, &cs.Name, &cs.Email)
	if err != nil {
		return nil, fmt.Errorf("get offer company %s: %w", o.CompanyID, err)
	}
	return &Response{JobOffer: o, Company: &cs}, nil
}

// SweepExpired marks active offers whose deadline has passed as EXPIRED and
// removes them from the public listing. Returns the number of swept rows.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_offers
		 SET status = $1, is_active = false, updated_at = NOW()
		 WHERE status = $2
		   AND application_deadline IS NOT NULL
		   AND application_deadline < NOW()`,
		string(StatusExpired), string(StatusActive),
	)
	if err != nil {
		return 0, fmt.Errorf("sweep expired offers: %w", err)
	}
	return tag.RowsAffected(), nil
}

// resolveCompany validates the companyId reference, auto-provisioning the
// company when a COMPANIES-role identity addresses itself.
func (s *Service) resolveCompany(ctx context.Context, tx pgx.Tx, identity *auth.Identity, companyID string) (*CompanySummary, error) {
	var cs CompanySummary
	err := tx.QueryRow(ctx,
		`SELECT id, name, login_email FROM companies WHERE id = $1`, companyID,
	).Scan(&cs.ID, &cs.Name, &cs.Email)
	if err == nil {
		return &cs, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("resolve company %s: %w", companyID, err)
	}

	if identity.Role != auth.RoleCompanies || companyID != identity.ID {
		return nil, &api.ValidationError{Field: "companyId", Msg: fmt.Sprintf("unknown company %q", companyID)}
	}

	var user model.User
	err = tx.QueryRow(ctx,
		`SELECT id, username, password_hash, role FROM users
		 WHERE id = $1 AND is_active = true`,
		identity.ID,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &api.ValidationError{Field: "companyId", Msg: fmt.Sprintf("unknown company %q", companyID)}
		}
		return nil, fmt.Errorf("resolve company user %s: %w", identity.ID, err)
	}

	id, err := s.prov.EnsureCompanyForUser(ctx, tx, &user)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`SELECT id, name, login_email FROM companies WHERE id = $1`, id,
	).Scan(&cs.ID, &cs.Name, &cs.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve provisioned company %s: %w", id, err)
	}
	return &cs, nil
}

// scanTargets returns the scan destinations matching offerColumns order.
func scanTargets(o *model.JobOffer) []any {
	return []any{
		&o.ID, &o.Title, &o.Description, &o.Requirements, &o.Location,
		&o.ContractType, &o.WorkSchedule, &o.WorkModality, &o.ExperienceLevel,
		&o.Category, &o.Municipality, &o.Department, &o.CompanyID,
		&o.SkillsRequired, &o.DesiredSkills, &o.Images, &o.SalaryMin,
		&o.SalaryMax, &o.ApplicationDeadline, &o.Status, &o.IsActive,
		&o.PublishedAt, &o.CreatedAt, &o.UpdatedAt,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// publishCreated notifies the gateway for SSE forwarding (non-fatal).
func (s *Service) publishCreated(ctx context.Context, o *model.JobOffer) {
	event, _ := json.Marshal(map[string]string{
		"type":       "EVENT_JOBOFFER_CREATED",
		"jobOfferId": o.ID,
		"companyId":  o.CompanyID,
		"title":      o.Title,
	})
	if err := s.rdb.Publish(ctx, "EVENT_JOBOFFER_CREATED", event).Err(); err != nil {
		slog.Warn("publish EVENT_JOBOFFER_CREATED failed", "err", err)
	}
}
