package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"cemse/placement-service/internal/auth"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes a {"error": msg} body with the given status code.
func Error(w http.ResponseWriter, msg string, status int) {
	JSON(w, status, map[string]string{"error": msg})
}

// ErrorDebug writes {"error", "debug"}. The debug payload is a development
// aid and is dropped unless includeDebug is set.
func ErrorDebug(w http.ResponseWriter, msg string, debug string, status int, includeDebug bool) {
	body := map[string]string{"error": msg}
	if includeDebug && debug != "" {
		body["debug"] = debug
	}
	JSON(w, status, body)
}

// WriteDomainError maps a service-layer error to its HTTP response.
//
//	auth.ErrUnauthenticated, auth.ErrTokenExpired → 401
//	auth.PermissionError                          → 403 (attempted + required roles)
//	ValidationError, ConflictError                → 400
//	ErrNotFound                                   → 404
//	store unreachable                             → 503
//	anything else                                 → 500 with the operator message
func WriteDomainError(w http.ResponseWriter, err error) {
	WriteDomainErrorDebug(w, err, false)
}

// WriteDomainErrorDebug is WriteDomainError with an optional debug payload
// on the 500 branch, gated off in production builds.
func WriteDomainErrorDebug(w http.ResponseWriter, err error, includeDebug bool) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrTokenExpired):
		Error(w, err.Error(), http.StatusUnauthorized)
		return
	case errors.Is(err, ErrNotFound):
		Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var permErr *auth.PermissionError
	if errors.As(err, &permErr) {
		JSON(w, http.StatusForbidden, map[string]any{
			"error":         "insufficient role",
			"attemptedRole": permErr.Attempted,
			"requiredRoles": permErr.Required,
		})
		return
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		Error(w, valErr.Error(), http.StatusBadRequest)
		return
	}

	var confErr *ConflictError
	if errors.As(err, &confErr) {
		Error(w, confErr.Error(), http.StatusBadRequest)
		return
	}

	if isUnavailable(err) {
		Error(w, ErrUnavailable.Error(), http.StatusServiceUnavailable)
		return
	}

	log.Printf("[api] internal error: %v", err)
	// The top-level message stays operator-readable; the debug payload is a
	// development aid only.
	ErrorDebug(w, err.Error(), fmt.Sprintf("%+v", err), http.StatusInternalServerError, includeDebug)
}
