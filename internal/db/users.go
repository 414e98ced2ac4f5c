package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cemse/placement-service/internal/model"
)

// UserStore resolves login principals for credential verification.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore returns a UserStore over the given pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// ActiveUser returns the active user with the given id, or (nil, nil) when
// no such user exists. Errors are reserved for infrastructure failures.
func (s *UserStore) ActiveUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, is_active, created_at, updated_at
		 FROM users
		 WHERE id = $1 AND is_active = true`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("active user %s: %w", id, err)
	}
	return &u, nil
}
