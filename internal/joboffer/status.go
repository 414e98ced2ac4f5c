// Package joboffer implements job-offer publishing, listing, and the
// deadline sweeper.
//
// Offer lifecycle:
//
//	ACTIVE ──► PAUSED ──► ACTIVE
//	ACTIVE ──► EXPIRED (sweeper, deadline passed)
//	any    ──► CLOSED
package joboffer

import "fmt"

// Status values mirror the status column in the job_offers table.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusPaused  Status = "PAUSED"
	StatusClosed  Status = "CLOSED"
	StatusExpired Status = "EXPIRED"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusActive, StatusPaused, StatusClosed, StatusExpired:
		return st, nil
	}
	return "", fmt.Errorf("unknown job offer status %q", s)
}
