package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cemse/placement-service/internal/config"
)

// Signer mints HS256 tokens signed with the primary key. The key id is
// embedded in the header so verification survives key rotation.
type Signer struct {
	keys    map[string]string
	primary string
}

// NewSigner builds a Signer from the loaded configuration.
func NewSigner(cfg *config.Config) *Signer {
	return &Signer{keys: cfg.SigningKeys, primary: cfg.PrimaryKeyID}
}

// Issue returns a signed token for the given subject and role.
func (s *Signer) Issue(userID string, role Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "placement-service",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = s.primary
	signed, err := token.SignedString([]byte(s.keys[s.primary]))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
