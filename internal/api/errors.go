// Package api holds the HTTP transport helpers shared by the resource
// handlers: JSON writers, the domain error taxonomy, and its mapping to
// status codes.
package api

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnavailable marks the store as unreachable. Handlers map it to 503
// rather than serving stale process-local data.
var ErrUnavailable = errors.New("service unavailable")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// ConflictError reports a uniqueness violation on a named field.
// By API convention conflicts are returned as 400, not 409.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is already taken", e.Field)
}

// IsUniqueViolation reports whether err is a PostgreSQL duplicate-key
// failure (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isUnavailable reports whether err indicates the store could not be
// reached at all, as opposed to rejecting a statement.
func isUnavailable(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
