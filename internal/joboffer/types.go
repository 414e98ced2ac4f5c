package joboffer

import (
	"strings"
	"time"

	"cemse/placement-service/internal/api"
	"cemse/placement-service/internal/model"
)

// CreateRequest is the POST /api/joboffer body, accepted as JSON or
// multipart form fields.
type CreateRequest struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Requirements        string   `json:"requirements"`
	Location            string   `json:"location"`
	ContractType        string   `json:"contractType"`
	WorkSchedule        string   `json:"workSchedule"`
	WorkModality        string   `json:"workModality"`
	ExperienceLevel     string   `json:"experienceLevel"`
	Category            string   `json:"category"`
	Municipality        string   `json:"municipality"`
	Department          string   `json:"department"`
	CompanyID           string   `json:"companyId"`
	SkillsRequired      []string `json:"skillsRequired"`
	DesiredSkills       []string `json:"desiredSkills"`
	SalaryMin           *float64 `json:"salaryMin"`
	SalaryMax           *float64 `json:"salaryMax"`
	ApplicationDeadline string   `json:"applicationDeadline"`
}

// Validate reports the first missing required field.
func (r *CreateRequest) Validate() error {
	for _, f := range []struct {
		name, value string
	}{
		{"title", strings.TrimSpace(r.Title)},
		{"description", strings.TrimSpace(r.Description)},
		{"requirements", strings.TrimSpace(r.Requirements)},
		{"location", strings.TrimSpace(r.Location)},
		{"contractType", strings.TrimSpace(r.ContractType)},
		{"workSchedule", strings.TrimSpace(r.WorkSchedule)},
		{"workModality", strings.TrimSpace(r.WorkModality)},
		{"experienceLevel", strings.TrimSpace(r.ExperienceLevel)},
		{"municipality", strings.TrimSpace(r.Municipality)},
		{"companyId", strings.TrimSpace(r.CompanyID)},
	} {
		if f.value == "" {
			return &api.ValidationError{Field: f.name}
		}
	}
	return nil
}

// ParseDeadline coerces the raw applicationDeadline value to a point in
// time. Malformed or empty input is downgraded to absent rather than being
// handed to the store, which would reject the whole transaction with an
// opaque driver error.
func ParseDeadline(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// CompanySummary is the company shape nested in offer responses.
type CompanySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Response is the client-facing offer shape.
type Response struct {
	model.JobOffer
	Company *CompanySummary `json:"company,omitempty"`
}

// ListFilters narrows GET /api/joboffer. An empty CompanyID means the
// public listing: only active offers are returned.
type ListFilters struct {
	Status       string
	Category     string
	Municipality string
	CompanyID    string
}
