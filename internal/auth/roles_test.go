package auth_test

import (
	"errors"
	"testing"

	"cemse/placement-service/internal/auth"
)

// ── ParseRole ──────────────────────────────────────────────────────────────

func TestParseRole_ValidValues(t *testing.T) {
	valid := []string{
		"SUPERADMIN", "MUNICIPAL_GOVERNMENTS", "COMPANIES",
		"TRAINING_CENTERS", "NGOS_AND_FOUNDATIONS", "YOUTH", "ADOLESCENTS",
	}
	for _, s := range valid {
		got, err := auth.ParseRole(s)
		if err != nil {
			t.Errorf("ParseRole(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseRole(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseRole_InvalidValues(t *testing.T) {
	for _, s := range []string{"", "UNKNOWN", "superadmin", " SUPERADMIN"} {
		if _, err := auth.ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) expected error, got nil", s)
		}
	}
}

// ── Authorize ──────────────────────────────────────────────────────────────

func TestAuthorize_CreateCompany(t *testing.T) {
	cases := []struct {
		role    auth.Role
		allowed bool
	}{
		{auth.RoleSuperAdmin, true},
		{auth.RoleMunicipalGovernments, true},
		{auth.RoleCompanies, false},
		{auth.RoleYouth, false},
		{auth.RoleTrainingCenters, false},
	}
	for _, c := range cases {
		err := auth.Authorize(&auth.Identity{ID: "u1", Role: c.role}, auth.OpCreateCompany)
		if c.allowed && err != nil {
			t.Errorf("Authorize(%s, company.create) = %v, want nil", c.role, err)
		}
		if !c.allowed && err == nil {
			t.Errorf("Authorize(%s, company.create) = nil, want PermissionError", c.role)
		}
	}
}

func TestAuthorize_CreateJobOffer(t *testing.T) {
	cases := []struct {
		role    auth.Role
		allowed bool
	}{
		{auth.RoleSuperAdmin, true},
		{auth.RoleCompanies, true},
		{auth.RoleMunicipalGovernments, false},
		{auth.RoleAdolescents, false},
	}
	for _, c := range cases {
		err := auth.Authorize(&auth.Identity{ID: "u1", Role: c.role}, auth.OpCreateJobOffer)
		if c.allowed && err != nil {
			t.Errorf("Authorize(%s, joboffer.create) = %v, want nil", c.role, err)
		}
		if !c.allowed && err == nil {
			t.Errorf("Authorize(%s, joboffer.create) = nil, want PermissionError", c.role)
		}
	}
}

// Denials must carry the attempted role and the required set for operator
// diagnostics.
func TestAuthorize_PermissionErrorDetails(t *testing.T) {
	err := auth.Authorize(&auth.Identity{ID: "u1", Role: auth.RoleYouth}, auth.OpCreateCompany)
	var permErr *auth.PermissionError
	if !errors.As(err, &permErr) {
		t.Fatalf("Authorize returned %T, want *PermissionError", err)
	}
	if permErr.Attempted != auth.RoleYouth {
		t.Errorf("Attempted = %s, want YOUTH", permErr.Attempted)
	}
	if len(permErr.Required) != 2 {
		t.Errorf("Required = %v, want [SUPERADMIN MUNICIPAL_GOVERNMENTS]", permErr.Required)
	}
}

// Mock development identities bypass every allow-list.
func TestAuthorize_MockBypass(t *testing.T) {
	id := &auth.Identity{ID: "dev-user", Role: auth.RoleSuperAdmin, Mock: true}
	for _, op := range []auth.Operation{auth.OpCreateCompany, auth.OpCreateJobOffer} {
		if err := auth.Authorize(id, op); err != nil {
			t.Errorf("Authorize(mock, %s) = %v, want nil", op, err)
		}
	}
}
