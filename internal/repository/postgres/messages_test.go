package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepoAppend(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewMessageRepo(db)

	now := time.Unix(1700000000, 0)
	mock.ExpectQuery("INSERT INTO messages").
		WithArgs("alice", "bob", "hi", now.Unix()).
		WillReturnRows(sqlmock.NewRows([]string{"message_id"}).AddRow(int64(1)))

	id, err := repo.Append(context.Background(), "alice", "bob", "hi", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepoAppendFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectQuery("INSERT INTO messages").
		WillReturnError(errors.New("disk full"))

	_, err := repo.Append(context.Background(), "alice", "bob", "hi", time.Now())
	assert.Error(t, err)
}

func TestMessageRepoNextAfter(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewMessageRepo(db)

	rows := sqlmock.NewRows([]string{"message_id", "sender", "recipient", "body", "sent_at"}).
		AddRow(int64(3), "alice", "bob", "hi", int64(1700000000))
	mock.ExpectQuery("SELECT message_id, sender, recipient, body, sent_at").
		WithArgs("bob", int64(2)).
		WillReturnRows(rows)

	msg, err := repo.NextAfter(context.Background(), "bob", 2)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, int64(3), msg.ID)
	assert.Equal(t, "alice", msg.Sender)
	assert.Equal(t, "bob", msg.Recipient)
	assert.Equal(t, "hi", msg.Body)
	assert.Equal(t, int64(1700000000), msg.SentAt)
}

func TestMessageRepoNextAfterNoRows(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectQuery("SELECT message_id, sender, recipient, body, sent_at").
		WithArgs("bob", int64(99)).
		WillReturnError(sql.ErrNoRows)

	msg, err := repo.NextAfter(context.Background(), "bob", 99)
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestEnsureSchema(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS messages").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_messages_sender").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_messages_recipient").WillReturnResult(sqlmock.NewResult(0, 0))

	err := EnsureSchema(context.Background(), db)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
