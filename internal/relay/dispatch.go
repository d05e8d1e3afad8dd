package relay

import (
	"context"
	"net/url"
	"time"

	"github.com/ignite/message-relay/internal/auth"
)

// Action is the logical operation requested within a single POST.
type Action string

const (
	ActionSendMessage Action = "send_message"
	ActionGetMessage  Action = "get_message"
	ActionRegister    Action = "register"
	ActionGetUser     Action = "get_user"
)

// handlerFunc runs one action. identity is empty for actions that do not
// require authentication.
type handlerFunc func(ctx context.Context, identity string, params url.Values) Result

type actionSpec struct {
	requiresAuth bool
	handle       handlerFunc
}

// Dispatcher maps a request's declared action to its handler and runs it.
// It holds no state across requests; the stores are the only shared
// resource.
type Dispatcher struct {
	users    CredentialStore
	messages MessageStore
	guard    *Guard
	table    map[Action]actionSpec

	// Overridable for tests.
	now  func() time.Time
	hash func(password string) (string, error)
}

// NewDispatcher wires the action table to the given stores.
func NewDispatcher(users CredentialStore, messages MessageStore) *Dispatcher {
	d := &Dispatcher{
		users:    users,
		messages: messages,
		guard:    NewGuard(users),
		now:      time.Now,
		hash:     auth.HashPassword,
	}
	d.table = map[Action]actionSpec{
		ActionRegister:    {requiresAuth: false, handle: d.handleRegister},
		ActionGetUser:     {requiresAuth: false, handle: d.handleGetUser},
		ActionSendMessage: {requiresAuth: true, handle: d.handleSendMessage},
		ActionGetMessage:  {requiresAuth: true, handle: d.handleGetMessage},
	}
	return d
}

// Dispatch processes one request to completion and returns the structured
// result the transport layer renders. Unsupported methods are rejected
// before the action parameter is consulted; unknown or missing actions
// resolve to NotImplemented.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) Result {
	if req.Method != MethodPost {
		return notImplemented()
	}

	spec, known := d.table[Action(req.Action)]
	if !known {
		return notImplemented()
	}

	var identity string
	if spec.requiresAuth {
		var ok bool
		identity, ok = d.guard.Authenticate(ctx, req.Credential)
		if !ok {
			return unauthorized()
		}
	}

	return spec.handle(ctx, identity, req.Params)
}
