package relay

import (
	"encoding/json"

	"github.com/ignite/message-relay/internal/domain"
)

// messageJSON is the wire shape of a retrieved message: message_id and time
// are numbers, the rest are strings. Field names are part of the client
// contract.
type messageJSON struct {
	MessageID int64  `json:"message_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Message   string `json:"message"`
	Time      int64  `json:"time"`
}

// EncodeMessage renders a message record as a JSON object. Going through
// encoding/json escapes embedded quotes and control characters in the
// string fields.
func EncodeMessage(m *domain.Message) ([]byte, error) {
	return json.Marshal(messageJSON{
		MessageID: m.ID,
		From:      m.Sender,
		To:        m.Recipient,
		Message:   m.Body,
		Time:      m.SentAt,
	})
}
