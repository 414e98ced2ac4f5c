package joboffer

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"cemse/placement-service/internal/api"
	"cemse/placement-service/internal/auth"
)

// maxMultipartMemory bounds in-memory parsing of multipart bodies.
const maxMultipartMemory = 10 << 20

// Handler exposes the job-offer routes:
//
//	POST /api/joboffer       → publish an offer (SUPERADMIN, COMPANIES)
//	GET  /api/joboffer       → list offers (public without companyId filter)
//	GET  /api/joboffer/{id}  → fetch one offer
type Handler struct {
	svc          *Service
	verifier     *auth.Verifier
	includeDebug bool
}

// NewHandler returns a configured Handler. includeDebug controls whether
// 500 bodies carry the debug payload (development only).
func NewHandler(svc *Service, verifier *auth.Verifier, includeDebug bool) *Handler {
	return &Handler{svc: svc, verifier: verifier, includeDebug: includeDebug}
}

// RegisterRoutes mounts all job-offer routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/joboffer", h.handleJobOffers)
	mux.HandleFunc("/api/joboffer/", h.handleJobOfferByID)
}

func (h *Handler) handleJobOffers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		api.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, err := h.verifier.FromRequest(r)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	if err := auth.Authorize(identity, auth.OpCreateJobOffer); err != nil {
		api.WriteDomainError(w, err)
		return
	}

	req, err := decodeCreateRequest(r)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}

	resp, err := h.svc.Create(r.Context(), identity, req)
	if err != nil {
		api.WriteDomainErrorDebug(w, err, h.includeDebug)
		return
	}
	api.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offers, err := h.svc.List(r.Context(), ListFilters{
		Status:       q.Get("status"),
		Category:     q.Get("category"),
		Municipality: q.Get("municipality"),
		CompanyID:    q.Get("companyId"),
	})
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, offers)
}

func (h *Handler) handleJobOfferByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/joboffer/")
	if id == "" || strings.Contains(id, "/") {
		api.Error(w, "invalid path", http.StatusNotFound)
		return
	}

	resp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, resp)
}

// decodeCreateRequest accepts application/json or multipart/form-data (the
// latter for future image attachments; uploads are currently acknowledged
// but only the empty-array placeholder is stored).
func decodeCreateRequest(r *http.Request) (*CreateRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, &api.ValidationError{Field: "body", Msg: "invalid JSON"}
		}
		return &req, nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, &api.ValidationError{Field: "body", Msg: "invalid multipart form"}
	}

	req := &CreateRequest{
		Title:               r.FormValue("title"),
		Description:         r.FormValue("description"),
		Requirements:        r.FormValue("requirements"),
		Location:            r.FormValue("location"),
		ContractType:        r.FormValue("contractType"),
		WorkSchedule:        r.FormValue("workSchedule"),
		WorkModality:        r.FormValue("workModality"),
		ExperienceLevel:     r.FormValue("experienceLevel"),
		Category:            r.FormValue("category"),
		Municipality:        r.FormValue("municipality"),
		Department:          r.FormValue("department"),
		CompanyID:           r.FormValue("companyId"),
		SkillsRequired:      formList(r, "skillsRequired"),
		DesiredSkills:       formList(r, "desiredSkills"),
		ApplicationDeadline: r.FormValue("applicationDeadline"),
	}

	var err error
	if req.SalaryMin, err = formFloat(r, "salaryMin"); err != nil {
		return nil, err
	}
	if req.SalaryMax, err = formFloat(r, "salaryMax"); err != nil {
		return nil, err
	}
	return req, nil
}

// formList accepts either repeated fields or one comma-separated value.
func formList(r *http.Request, key string) []string {
	values := r.Form[key]
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func formFloat(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &api.ValidationError{Field: key, Msg: "must be a number"}
	}
	return &v, nil
}
