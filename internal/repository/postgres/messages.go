package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ignite/message-relay/internal/domain"
)

// MessageRepo implements relay.MessageStore against PostgreSQL. message_id
// comes from a BIGSERIAL sequence, so ids are strictly increasing across
// the whole table and concurrent appends never collide.
type MessageRepo struct{ db *sql.DB }

// NewMessageRepo creates a Postgres-backed message store.
func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// Append inserts a message and returns the store-assigned id.
func (r *MessageRepo) Append(ctx context.Context, sender, recipient, body string, now time.Time) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (sender, recipient, body, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING message_id
	`, sender, recipient, body, now.Unix()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append message: %w", err)
	}
	return id, nil
}

// NextAfter returns the earliest message with id > cursor where user is
// sender or recipient, or (nil, nil) when no qualifying row exists.
func (r *MessageRepo) NextAfter(ctx context.Context, user string, cursor int64) (*domain.Message, error) {
	m := &domain.Message{}
	err := r.db.QueryRowContext(ctx, `
		SELECT message_id, sender, recipient, body, sent_at
		FROM messages
		WHERE (sender = $1 OR recipient = $1) AND message_id > $2
		ORDER BY message_id ASC
		LIMIT 1
	`, user, cursor).Scan(&m.ID, &m.Sender, &m.Recipient, &m.Body, &m.SentAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next message after %d: %w", cursor, err)
	}
	return m, nil
}
