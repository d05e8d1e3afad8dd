package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the relay's two tables and their retrieval
// indexes. The table layout is a durable contract; other tooling reads it
// directly.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username      TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		message_id BIGSERIAL PRIMARY KEY,
		sender     TEXT   NOT NULL,
		recipient  TEXT   NOT NULL,
		body       TEXT   NOT NULL,
		sent_at    BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages (sender, message_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages (recipient, message_id)`,
}

// EnsureSchema creates the users and messages tables if absent. Called once
// at startup; cmd/migrate applies the same layout from migrations/.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
