// Package auth verifies bearer credentials and enforces per-operation role
// allow-lists.
//
// Credential formats accepted by the Verifier:
//
//	mock-dev-token…                     development-only fixed identity
//	auth-token-<ROLE>-<userId>-<ts>     legacy opaque token, DB lookup
//	<JWT>                               HS256, key selected by "kid" header
package auth

import "fmt"

// Role values mirror the role column in the users table.
type Role string

const (
	RoleSuperAdmin           Role = "SUPERADMIN"
	RoleMunicipalGovernments Role = "MUNICIPAL_GOVERNMENTS"
	RoleCompanies            Role = "COMPANIES"
	RoleTrainingCenters      Role = "TRAINING_CENTERS"
	RoleNGOsAndFoundations   Role = "NGOS_AND_FOUNDATIONS"
	RoleYouth                Role = "YOUTH"
	RoleAdolescents          Role = "ADOLESCENTS"
)

// Operation names a sensitive mutation guarded by an allow-list.
type Operation string

const (
	OpCreateCompany  Operation = "company.create"
	OpCreateJobOffer Operation = "joboffer.create"
)

// allowedRoles lists, per operation, every role permitted to perform it.
var allowedRoles = map[Operation][]Role{
	OpCreateCompany:  {RoleSuperAdmin, RoleMunicipalGovernments},
	OpCreateJobOffer: {RoleSuperAdmin, RoleCompanies},
}

// ParseRole converts a raw string to a Role, returning an error for
// unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleSuperAdmin, RoleMunicipalGovernments, RoleCompanies,
		RoleTrainingCenters, RoleNGOsAndFoundations, RoleYouth, RoleAdolescents:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// PermissionError reports a denied operation together with the attempted
// role and the required set, for operator diagnostics.
type PermissionError struct {
	Op        Operation
	Attempted Role
	Required  []Role
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("role %s may not perform %s (requires one of %v)", e.Attempted, e.Op, e.Required)
}

// Authorize permits or denies an operation for a verified identity.
// Mock development identities bypass the allow-list; they can only exist
// when the process runs in development mode.
func Authorize(id *Identity, op Operation) error {
	if id.Mock {
		return nil
	}
	required, ok := allowedRoles[op]
	if !ok {
		return &PermissionError{Op: op, Attempted: id.Role}
	}
	for _, r := range required {
		if r == id.Role {
			return nil
		}
	}
	return &PermissionError{Op: op, Attempted: id.Role, Required: required}
}
