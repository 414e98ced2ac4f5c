package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cemse/placement-service/internal/api"
	"cemse/placement-service/internal/auth"
)

func statusFor(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	api.WriteDomainError(rec, err)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not JSON: %v", err)
	}
	return rec.Code, body
}

func TestWriteDomainError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", auth.ErrUnauthenticated, http.StatusUnauthorized},
		{"expired", auth.ErrTokenExpired, http.StatusUnauthorized},
		{"validation", &api.ValidationError{Field: "name"}, http.StatusBadRequest},
		{"conflict", &api.ConflictError{Field: "username"}, http.StatusBadRequest},
		{"not found", api.ErrNotFound, http.StatusNotFound},
		{"unavailable", api.ErrUnavailable, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		got, _ := statusFor(t, c.err)
		if got != c.want {
			t.Errorf("%s: status = %d, want %d", c.name, got, c.want)
		}
	}
}

// 401 bodies must not reveal which verification step failed.
func TestWriteDomainError_AuthMessages(t *testing.T) {
	_, body := statusFor(t, auth.ErrUnauthenticated)
	if body["error"] != "authentication required" {
		t.Errorf("unauthenticated message = %v", body["error"])
	}
	_, body = statusFor(t, auth.ErrTokenExpired)
	if body["error"] != "token expired" {
		t.Errorf("expired message = %v", body["error"])
	}
}

// 403 bodies carry the attempted and required roles for operators.
func TestWriteDomainError_ForbiddenDiagnostics(t *testing.T) {
	err := &auth.PermissionError{
		Op:        auth.OpCreateCompany,
		Attempted: auth.RoleYouth,
		Required:  []auth.Role{auth.RoleSuperAdmin, auth.RoleMunicipalGovernments},
	}
	code, body := statusFor(t, err)
	if code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
	if body["attemptedRole"] != "YOUTH" {
		t.Errorf("attemptedRole = %v, want YOUTH", body["attemptedRole"])
	}
	required, ok := body["requiredRoles"].([]any)
	if !ok || len(required) != 2 {
		t.Errorf("requiredRoles = %v, want two entries", body["requiredRoles"])
	}
}

// Wrapped errors still map through errors.Is / errors.As.
func TestWriteDomainError_WrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), &api.ValidationError{Field: "municipalityId"})
	code, _ := statusFor(t, wrapped)
	if code != http.StatusBadRequest {
		t.Errorf("wrapped validation status = %d, want 400", code)
	}
}

// The debug payload only appears when explicitly enabled.
func TestWriteDomainErrorDebug_Gating(t *testing.T) {
	rec := httptest.NewRecorder()
	api.WriteDomainErrorDebug(rec, errors.New("boom"), false)
	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	if _, ok := body["debug"]; ok {
		t.Error("debug field present with includeDebug=false")
	}

	rec = httptest.NewRecorder()
	api.WriteDomainErrorDebug(rec, errors.New("boom"), true)
	body = map[string]any{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if _, ok := body["debug"]; !ok {
		t.Error("debug field missing with includeDebug=true")
	}
}
