package joboffer

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cemse/placement-service/internal/api"
)

func multipartRequest(t *testing.T, fields map[string][]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				t.Fatalf("WriteField(%s): %v", key, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/joboffer", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

// ── Content-type dispatch ──────────────────────────────────────────────────

func TestDecodeCreateRequest_JSON(t *testing.T) {
	body := `{
		"title": "Backend Developer",
		"companyId": "c1",
		"salaryMin": 1200.5,
		"skillsRequired": ["go", "sql"]
	}`
	r := httptest.NewRequest(http.MethodPost, "/api/joboffer", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	req, err := decodeCreateRequest(r)
	if err != nil {
		t.Fatalf("decodeCreateRequest error: %v", err)
	}
	if req.Title != "Backend Developer" || req.CompanyID != "c1" {
		t.Errorf("decoded request = %+v", req)
	}
	if req.SalaryMin == nil || *req.SalaryMin != 1200.5 {
		t.Errorf("SalaryMin = %v, want 1200.5", req.SalaryMin)
	}
	if len(req.SkillsRequired) != 2 {
		t.Errorf("SkillsRequired = %v, want two entries", req.SkillsRequired)
	}
}

func TestDecodeCreateRequest_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/joboffer", strings.NewReader("{"))
	r.Header.Set("Content-Type", "application/json")

	_, err := decodeCreateRequest(r)
	var valErr *api.ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "body" {
		t.Fatalf("decodeCreateRequest = %v, want ValidationError on body", err)
	}
}

// ── Multipart form decoding ────────────────────────────────────────────────

func TestDecodeCreateRequest_Multipart(t *testing.T) {
	r := multipartRequest(t, map[string][]string{
		"title":               {"Backend Developer"},
		"description":         {"Build APIs"},
		"requirements":        {"Go, SQL"},
		"location":            {"Cochabamba"},
		"contractType":        {"FULL_TIME"},
		"workSchedule":        {"9-18"},
		"workModality":        {"HYBRID"},
		"experienceLevel":     {"MID"},
		"municipality":        {"cochabamba"},
		"companyId":           {"c1"},
		"skillsRequired":      {"go, sql , "},
		"salaryMin":           {"1200.5"},
		"applicationDeadline": {"not-a-date"},
	})

	req, err := decodeCreateRequest(r)
	if err != nil {
		t.Fatalf("decodeCreateRequest error: %v", err)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate(decoded form) = %v, want nil", err)
	}

	if req.Title != "Backend Developer" || req.CompanyID != "c1" {
		t.Errorf("decoded request = %+v", req)
	}
	// One comma-separated value splits into trimmed, non-empty entries.
	if len(req.SkillsRequired) != 2 || req.SkillsRequired[0] != "go" || req.SkillsRequired[1] != "sql" {
		t.Errorf("SkillsRequired = %v, want [go sql]", req.SkillsRequired)
	}
	if req.SalaryMin == nil || *req.SalaryMin != 1200.5 {
		t.Errorf("SalaryMin = %v, want 1200.5", req.SalaryMin)
	}
	if req.SalaryMax != nil {
		t.Errorf("SalaryMax = %v, want nil (absent)", req.SalaryMax)
	}
	// The malformed deadline survives decoding as-is and is downgraded to
	// absent at parse time, so the offer still persists with NULL deadline.
	if req.ApplicationDeadline != "not-a-date" {
		t.Errorf("ApplicationDeadline = %q", req.ApplicationDeadline)
	}
	if got := ParseDeadline(req.ApplicationDeadline); got != nil {
		t.Errorf("ParseDeadline(%q) = %v, want nil", req.ApplicationDeadline, got)
	}
}

func TestDecodeCreateRequest_MultipartRepeatedListFields(t *testing.T) {
	r := multipartRequest(t, map[string][]string{
		"title":          {"Backend Developer"},
		"skillsRequired": {"go", "sql"},
		"desiredSkills":  {"docker"},
	})

	req, err := decodeCreateRequest(r)
	if err != nil {
		t.Fatalf("decodeCreateRequest error: %v", err)
	}
	if len(req.SkillsRequired) != 2 || req.SkillsRequired[0] != "go" || req.SkillsRequired[1] != "sql" {
		t.Errorf("SkillsRequired = %v, want [go sql]", req.SkillsRequired)
	}
	if len(req.DesiredSkills) != 1 || req.DesiredSkills[0] != "docker" {
		t.Errorf("DesiredSkills = %v, want [docker]", req.DesiredSkills)
	}
}

func TestDecodeCreateRequest_MultipartSalaryNotANumber(t *testing.T) {
	cases := []struct {
		field string
		raw   string
	}{
		{"salaryMin", "abc"},
		{"salaryMax", "12,50"},
	}
	for _, c := range cases {
		r := multipartRequest(t, map[string][]string{
			"title": {"Backend Developer"},
			c.field: {c.raw},
		})
		_, err := decodeCreateRequest(r)
		var valErr *api.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("%s=%q: decodeCreateRequest = %v, want ValidationError", c.field, c.raw, err)
			continue
		}
		if valErr.Field != c.field {
			t.Errorf("error reported field %q, want %q", valErr.Field, c.field)
		}
	}
}
