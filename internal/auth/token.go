package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"cemse/placement-service/internal/config"
	"cemse/placement-service/internal/model"
)

// CookieName is the cookie carrying the bearer credential.
const CookieName = "cemse-auth-token"

const (
	mockTokenPrefix   = "mock-dev-token"
	legacyTokenPrefix = "auth-token-"
)

// Sentinel errors returned by Verify. Callers map these to the two
// permitted 401 messages; no other verification detail is surfaced.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrTokenExpired    = errors.New("token expired")
)

// Identity is the normalized result of verifying a credential.
type Identity struct {
	ID   string
	Role Role
	Mock bool
}

// UserLookup resolves a user id to its row. Implementations return
// (nil, nil) when no active user exists, reserving errors for
// infrastructure failures.
type UserLookup interface {
	ActiveUser(ctx context.Context, id string) (*model.User, error)
}

// Claims is the JWT payload issued and accepted by this service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier resolves the cemse-auth-token cookie value to an Identity.
type Verifier struct {
	mode    config.AuthMode
	keys    map[string]string
	primary string
	users   UserLookup
}

// NewVerifier builds a Verifier from the loaded configuration.
func NewVerifier(cfg *config.Config, users UserLookup) *Verifier {
	return &Verifier{
		mode:    cfg.Mode,
		keys:    cfg.SigningKeys,
		primary: cfg.PrimaryKeyID,
		users:   users,
	}
}

// FromRequest extracts the auth cookie and verifies it.
func (v *Verifier) FromRequest(r *http.Request) (*Identity, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, ErrUnauthenticated
	}
	return v.Verify(r.Context(), c.Value)
}

// Verify dispatches on the credential format and returns an Identity, or
// ErrUnauthenticated / ErrTokenExpired. It never returns any other error:
// lookup misses, unknown formats, and bad signatures all fail closed.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Identity, error) {
	switch {
	case strings.HasPrefix(raw, mockTokenPrefix):
		// Only recognized in development mode; in production the prefix
		// falls through and fails JWT parsing.
		if v.mode == config.ModeDevelopment {
			return &Identity{ID: "dev-user", Role: RoleSuperAdmin, Mock: true}, nil
		}
		return nil, ErrUnauthenticated

	case strings.HasPrefix(raw, legacyTokenPrefix):
		return v.verifyLegacy(ctx, raw)

	default:
		return v.verifyJWT(raw)
	}
}

// verifyLegacy parses the opaque auth-token-<ROLE>-<userId>-<timestamp>
// format. The embedded role is ignored; the user row is authoritative.
func (v *Verifier) verifyLegacy(ctx context.Context, raw string) (*Identity, error) {
	rest := strings.TrimPrefix(raw, legacyTokenPrefix)

	// Roles contain no dashes, user ids may (UUIDs); the timestamp is the
	// final dash-separated segment.
	roleStr, rest, ok := strings.Cut(rest, "-")
	if !ok {
		return nil, ErrUnauthenticated
	}
	lastDash := strings.LastIndex(rest, "-")
	if lastDash <= 0 {
		return nil, ErrUnauthenticated
	}
	userID, tsStr := rest[:lastDash], rest[lastDash+1:]

	if _, err := ParseRole(roleStr); err != nil {
		return nil, ErrUnauthenticated
	}
	if _, err := strconv.ParseInt(tsStr, 10, 64); err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := v.users.ActiveUser(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUnauthenticated
	}
	role, err := ParseRole(user.Role)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return &Identity{ID: user.ID, Role: role}, nil
}

// verifyJWT validates an HS256 token. The signing key is selected by the
// "kid" header; tokens without a kid verify against the primary key only.
func (v *Verifier) verifyJWT(raw string) (*Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid := v.primary
		if k, ok := t.Header["kid"].(string); ok && k != "" {
			kid = k
		}
		secret, ok := v.keys[kid]
		if !ok {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrUnauthenticated
	}

	role, err := ParseRole(claims.Role)
	if err != nil || claims.Subject == "" {
		return nil, ErrUnauthenticated
	}
	return &Identity{ID: claims.Subject, Role: role}, nil
}
