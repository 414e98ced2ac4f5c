// Package model defines the persisted data structures shared across the
// placement service.
package model

import "time"

// User is a login principal. One row is created per authenticated identity;
// company accounts get their User row at company-registration time.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Municipality mirrors the municipalities table. Every Company references
// one; the seed catalog can synthesize the well-known rows on demand.
type Municipality struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	WebsiteURL string    `json:"websiteUrl,omitempty"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Company is linked 1:1 to the User row created alongside it for login.
type Company struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	BusinessSector string    `json:"businessSector,omitempty"`
	LoginEmail     string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Website        string    `json:"website,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	MunicipalityID string    `json:"municipalityId"`
	CreatedBy      string    `json:"createdBy"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// JobOffer mirrors the job_offers table. Array fields are stored as
// PostgreSQL text[]; optional fields are pointers so absent values persist
// as NULL.
type JobOffer struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        string     `json:"requirements"`
	Location            string     `json:"location"`
	ContractType        string     `json:"contractType"`
	WorkSchedule        string     `json:"workSchedule"`
	WorkModality        string     `json:"workModality"`
	ExperienceLevel     string     `json:"experienceLevel"`
	Category            string     `json:"category,omitempty"`
	Municipality        string     `json:"municipality"`
	Department          string     `json:"department"`
	CompanyID           string     `json:"companyId"`
	SkillsRequired      []string   `json:"skillsRequired"`
	DesiredSkills       []string   `json:"desiredSkills"`
	Images              []string   `json:"images"`
	SalaryMin           *float64   `json:"salaryMin"`
	SalaryMax           *float64   `json:"salaryMax"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Status              string     `json:"status"`
	IsActive            bool       `json:"isActive"`
	PublishedAt         time.Time  `json:"publishedAt"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
