package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/message-relay/internal/relay"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserRepoRegister(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "$argon2id$hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Register(context.Background(), "alice", "$argon2id$hash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoRegisterConflict(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepo(db)

	// ON CONFLICT DO NOTHING reports zero affected rows for a duplicate.
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", "other-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Register(context.Background(), "alice", "other-hash")
	assert.ErrorIs(t, err, relay.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoRegisterFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("connection reset"))

	err := repo.Register(context.Background(), "alice", "h")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, relay.ErrUserExists)
}

func TestUserRepoLookupPasswordHash(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT password_hash FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow("$argon2id$hash"))

	hash, found, err := repo.LookupPasswordHash(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "$argon2id$hash", hash)
}

func TestUserRepoLookupPasswordHashMissing(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT password_hash FROM users").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	hash, found, err := repo.LookupPasswordHash(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, hash)
}

func TestUserRepoExists(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	found, err := repo.Exists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, found)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	found, err = repo.Exists(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
}
