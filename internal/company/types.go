// Package company implements company registration and lookup.
//
// Registration atomically creates the login User and the Company row,
// provisioning the referenced municipality when it is one of the recognized
// seeds. The created credentials are revealed exactly once in the creation
// response; every other read strips them.
package company

import (
	"strings"

	"cemse/placement-service/internal/api"
	"cemse/placement-service/internal/model"
)

// CreateRequest is the POST /api/company body.
type CreateRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	MunicipalityID string `json:"municipalityId"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Description    string `json:"description"`
	BusinessSector string `json:"businessSector"`
	Website        string `json:"website"`
	Phone          string `json:"phone"`
}

// Validate normalizes the request and reports the first missing required
// field.
func (r *CreateRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.MunicipalityID = strings.TrimSpace(r.MunicipalityID)
	r.Username = strings.TrimSpace(r.Username)

	for _, f := range []struct {
		name, value string
	}{
		{"name", r.Name},
		{"email", r.Email},
		{"municipalityId", r.MunicipalityID},
		{"username", r.Username},
		{"password", r.Password},
	} {
		if f.value == "" {
			return &api.ValidationError{Field: f.name}
		}
	}
	return nil
}

// UserSummary is the creator shape nested in company responses.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Response is the client-facing company shape. The password hash never
// marshals (model.Company tags it json:"-").
type Response struct {
	model.Company
	Municipality *model.Municipality `json:"municipality,omitempty"`
	Creator      *UserSummary        `json:"creator,omitempty"`
}

// CredentialsReveal is the one-shot creation response: it is the only type
// in the service that carries a plaintext password, so generated
// credentials can be relayed to an administrator exactly once.
type CredentialsReveal struct {
	Response
	Password string `json:"password"`
}
