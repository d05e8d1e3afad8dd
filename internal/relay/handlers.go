package relay

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/ignite/message-relay/internal/pkg/logger"
)

func (d *Dispatcher) handleRegister(ctx context.Context, _ string, params url.Values) Result {
	user := params.Get("user")
	password := params.Get("password")
	if user == "" || len(user) > MaxUsernameLen {
		return badRequest()
	}
	if password == "" || len(password) > MaxPasswordLen {
		return badRequest()
	}

	hash, err := d.hash(password)
	if err != nil {
		logger.Error("password hashing failed", "error", err)
		return internalError()
	}

	if err := d.users.Register(ctx, user, hash); err != nil {
		if errors.Is(err, ErrUserExists) {
			return textResult(Conflict, reasonUserExists)
		}
		logger.Error("register failed", "user", user, "error", err)
		return internalError()
	}
	return textResult(Ok, bodyRegistered)
}

func (d *Dispatcher) handleGetUser(ctx context.Context, _ string, params url.Values) Result {
	user := params.Get("user")
	if user == "" || len(user) > MaxUsernameLen {
		return badRequest()
	}

	found, err := d.users.Exists(ctx, user)
	if err != nil {
		logger.Error("user lookup failed", "user", user, "error", err)
		return internalError()
	}
	if !found {
		return textResult(NotFound, reasonNotFound)
	}
	// The account exposes no attributes beyond the name itself.
	return textResult(Ok, user)
}

func (d *Dispatcher) handleSendMessage(ctx context.Context, identity string, params url.Values) Result {
	to := params.Get("to")
	body := params.Get("message")
	if to == "" || len(to) > MaxUsernameLen {
		return badRequest()
	}
	if body == "" || len(body) > MaxMessageLen {
		return badRequest()
	}

	// The sender is always the authenticated identity. The recipient is not
	// checked against the credential store; messages to unknown users are
	// accepted and simply never retrieved.
	if _, err := d.messages.Append(ctx, identity, to, body, d.now()); err != nil {
		logger.Error("message append failed", "from", identity, "error", err)
		return internalError()
	}
	return Result{Code: Ok}
}

func (d *Dispatcher) handleGetMessage(ctx context.Context, identity string, params url.Values) Result {
	cursor := parseCursor(params.Get("last_message"))

	msg, err := d.messages.NextAfter(ctx, identity, cursor)
	if err != nil {
		logger.Error("message lookup failed", "user", identity, "error", err)
		return internalError()
	}
	if msg == nil {
		return Result{Code: NoContent}
	}

	body, err := EncodeMessage(msg)
	if err != nil {
		logger.Error("message encoding failed", "message_id", msg.ID, "error", err)
		return internalError()
	}
	return Result{Code: Ok, ContentType: contentTypeJSON, Body: body}
}

// parseCursor parses the optional last_message parameter. Absent or
// non-numeric input means "from the beginning", cursor 0.
func parseCursor(raw string) int64 {
	if raw == "" {
		return 0
	}
	cursor, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return cursor
}
