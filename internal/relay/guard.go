package relay

import (
	"context"

	"github.com/ignite/message-relay/internal/auth"
	"github.com/ignite/message-relay/internal/pkg/logger"
)

// Guard validates inbound credentials against the credential store.
type Guard struct {
	creds CredentialStore
}

// NewGuard creates a Guard backed by the given credential store.
func NewGuard(creds CredentialStore) *Guard {
	return &Guard{creds: creds}
}

// Authenticate verifies cred and returns the authenticated username. A
// missing credential, unknown user, oversized field, or password mismatch
// all fail the same way; the guard has no side effects and no lockout.
func (g *Guard) Authenticate(ctx context.Context, cred *Credential) (identity string, ok bool) {
	if cred == nil || cred.Username == "" {
		return "", false
	}
	if len(cred.Username) > MaxUsernameLen || len(cred.Password) > MaxPasswordLen {
		return "", false
	}

	hash, found, err := g.creds.LookupPasswordHash(ctx, cred.Username)
	if err != nil {
		logger.Error("credential lookup failed", "user", cred.Username, "error", err)
		return "", false
	}
	if !found {
		return "", false
	}

	match, err := auth.VerifyPassword(cred.Password, hash)
	if err != nil {
		logger.Warn("stored password hash is malformed", "user", cred.Username)
		return "", false
	}
	if !match {
		return "", false
	}
	return cred.Username, true
}
