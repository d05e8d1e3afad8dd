// Package relay implements the action-dispatch core of the message relay:
// credential verification, user registration and lookup, message append, and
// cursor-based message retrieval.
//
// The package is transport-agnostic. The HTTP layer hands it an already
// parsed Request (method marker, action, url-encoded parameters, basic
// credential) and renders the returned Result onto the wire.
package relay

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/ignite/message-relay/internal/domain"
)

// Parameter limits, in bytes. Usernames and passwords share the limits of
// the credential header; message bodies are capped independently.
const (
	MaxUsernameLen = 40
	MaxPasswordLen = 256
	MaxMessageLen  = 4096
)

// MethodPost is the only outer method marker the dispatcher accepts. Any
// other method is rejected before the action parameter is consulted.
const MethodPost = "POST"

// ErrUserExists is returned by CredentialStore.Register when the username is
// already taken.
var ErrUserExists = errors.New("relay: user already exists")

// CredentialStore persists username/password-hash pairs. Usernames are
// unique and immutable once created.
type CredentialStore interface {
	// Register inserts a new user row. It is atomic: on ErrUserExists the
	// existing row is left untouched.
	Register(ctx context.Context, username, passwordHash string) error

	// LookupPasswordHash returns the stored hash for username, with found
	// reporting whether the user exists.
	LookupPasswordHash(ctx context.Context, username string) (hash string, found bool, err error)

	// Exists reports whether a user row exists.
	Exists(ctx context.Context, username string) (bool, error)
}

// MessageStore persists messages with store-assigned strictly increasing
// identifiers and supports cursor-based lookup.
type MessageStore interface {
	// Append inserts a message and returns its assigned id. The stored
	// timestamp is now in Unix seconds.
	Append(ctx context.Context, sender, recipient, body string, now time.Time) (int64, error)

	// NextAfter returns the message with the smallest id greater than
	// cursor where user is sender or recipient, or (nil, nil) when no
	// qualifying row exists.
	NextAfter(ctx context.Context, user string, cursor int64) (*domain.Message, error)
}

// Credential is a username/password pair extracted by the transport layer
// from the request's basic auth header.
type Credential struct {
	Username string
	Password string
}

// Request carries the already-parsed fields of one inbound API request.
type Request struct {
	// Method is the outer method marker, e.g. "POST".
	Method string
	// Action is the declared action parameter, empty when absent.
	Action string
	// Params holds the url-encoded request parameters (query string when
	// non-empty, body otherwise).
	Params url.Values
	// Credential is nil when the request carried no basic auth header.
	Credential *Credential
}

// Code classifies the outcome of a dispatched request. Every handler
// resolves to exactly one code.
type Code int

const (
	Ok Code = iota
	NoContent
	BadRequest
	Unauthorized
	Conflict
	NotFound
	NotImplemented
	InternalError
)

func (c Code) String() string {
	switch c {
	case Ok:
		return "ok"
	case NoContent:
		return "no_content"
	case BadRequest:
		return "bad_request"
	case Unauthorized:
		return "unauthorized"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case NotImplemented:
		return "not_implemented"
	case InternalError:
		return "internal_error"
	}
	return "unknown"
}

// Result is the structured outcome the transport layer renders onto the
// wire: an outcome code plus the response payload. For failures Body holds
// the reason phrase.
type Result struct {
	Code        Code
	ContentType string
	Body        []byte
}

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Fixed response bodies. The reason phrases are part of the wire contract
// and match the original service, including the "User already exist" text.
const (
	bodyRegistered     = "Registration successful"
	reasonBadRequest   = "Bad request"
	reasonUnauthorized = "Unauthorized"
	reasonUserExists   = "User already exist"
	reasonNotFound     = "Not found"
	reasonNotImplement = "Not implemented"
	reasonInternal     = "Internal server error"
)

func textResult(code Code, body string) Result {
	return Result{Code: code, ContentType: contentTypeText, Body: []byte(body)}
}

func badRequest() Result     { return textResult(BadRequest, reasonBadRequest) }
func unauthorized() Result   { return textResult(Unauthorized, reasonUnauthorized) }
func notImplemented() Result { return textResult(NotImplemented, reasonNotImplement) }
func internalError() Result  { return textResult(InternalError, reasonInternal) }
