package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactSecret(t *testing.T) {
	assert.Equal(t, "***", RedactSecret("password", "secret1"))
	assert.Equal(t, "***", RedactSecret("pass_hash", "$argon2id$..."))
	assert.Equal(t, "***", RedactSecret("Authorization", "Basic YWxpY2U6c2VjcmV0"))
	assert.Equal(t, "***", RedactSecret("client_secret", "abc"))
	assert.Equal(t, "alice", RedactSecret("user", "alice"))
	assert.Equal(t, "42", RedactSecret("message_id", "42"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("WARNING"))
	assert.Equal(t, ERROR, ParseLevel(" error "))
	assert.Equal(t, INFO, ParseLevel("bogus"))
	assert.Equal(t, INFO, ParseLevel(""))
}
