package company

import (
	"encoding/json"
	"net/http"
	"strings"

	"cemse/placement-service/internal/api"
	"cemse/placement-service/internal/auth"
)

// Handler exposes the company routes:
//
//	POST /api/company       → register a company (SUPERADMIN, MUNICIPAL_GOVERNMENTS)
//	GET  /api/company       → list active companies
//	GET  /api/company/{id}  → fetch one company
type Handler struct {
	svc      *Service
	verifier *auth.Verifier
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service, verifier *auth.Verifier) *Handler {
	return &Handler{svc: svc, verifier: verifier}
}

// RegisterRoutes mounts all company routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/company", h.handleCompanies)
	mux.HandleFunc("/api/company/", h.handleCompanyByID)
}

func (h *Handler) handleCompanies(w http.ResponseWriter, r *http.Request) {
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
	if err := auth.Authorize(identity, auth.OpCreateCompany); err != nil {
		api.WriteDomainError(w, err)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	reveal, err := h.svc.Create(r.Context(), identity, &req)
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, reveal)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if _, err := h.verifier.FromRequest(r); err != nil {
		api.WriteDomainError(w, err)
		return
	}

	companies, err := h.svc.List(r.Context())
	if err != nil {
		api.WriteDomainError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, companies)
}

func (h *Handler) handleCompanyByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, err := h.verifier.FromRequest(r); err != nil {
		api.WriteDomainError(w, err)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/company/")
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
