package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/message-relay/internal/relay"
)

// UserRepo implements relay.CredentialStore against PostgreSQL.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a Postgres-backed credential store.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Register inserts a new user row. ON CONFLICT DO NOTHING keeps the insert
// atomic: a duplicate username never alters the existing row.
func (r *UserRepo) Register(ctx context.Context, username, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, username, passwordHash)
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	if n == 0 {
		return relay.ErrUserExists
	}
	return nil
}

// LookupPasswordHash returns the stored hash for username, or found=false
// when no such user exists.
func (r *UserRepo) LookupPasswordHash(ctx context.Context, username string) (string, bool, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, `
		SELECT password_hash FROM users WHERE username = $1
	`, username).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup password hash: %w", err)
	}
	return hash, true, nil
}

// Exists reports whether a user row exists.
func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}
