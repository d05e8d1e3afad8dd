// Package domain holds the persistent entities of the relay.
package domain

// User is an account row. The username is immutable once created and the
// password hash is an opaque secret owned by the credential store.
type User struct {
	Username     string
	PasswordHash string
}

// Message is a relayed message row. ID and SentAt are assigned by the store
// on insert; IDs are strictly increasing across the whole store.
type Message struct {
	ID        int64
	Sender    string
	Recipient string
	Body      string
	SentAt    int64 // Unix seconds at insert time
}

// VisibleTo reports whether user may retrieve the message. A message is
// visible to its sender and its recipient, nobody else.
func (m *Message) VisibleTo(user string) bool {
	return m.Sender == user || m.Recipient == user
}
