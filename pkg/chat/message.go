package chat

import (
	"strings"
	"time"
)

// DeleteWindow is how long the author of a message may delete it.
const DeleteWindow = 15 * time.Minute

// TempIDPrefix marks locally generated ids for optimistic messages. Temp
// ids are never sent to the server and never expected from it.
const TempIDPrefix = "temp-"

// Status is the client-only delivery state of a message. It is transient
// and never serialized.
type Status string

const (
	StatusSending Status = "sending"
	StatusError   Status = "error"
)

// Message is one chat entry as returned by the server, ordered by
// CreatedAt. The client never re-sorts.
type Message struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Body       string    `json:"message"`
	SenderType string    `json:"sender_type"`
	SenderName string    `json:"sender_name"`
	CreatedAt  time.Time `json:"created_at"`

	Status Status `json:"-"`
}

// IsTemp reports whether the message is an optimistic local entry that the
// server has not confirmed yet.
func (m *Message) IsTemp() bool {
	return strings.HasPrefix(m.ID, TempIDPrefix)
}

// CanDelete reports whether userID may still delete m at the given time:
// the author, within DeleteWindow of creation, and only once confirmed.
// Callers must re-evaluate on every render since the window closes as time
// passes.
func CanDelete(m *Message, userID string, now time.Time) bool {
	if m == nil || m.UserID == "" || userID == "" {
		return false
	}
	if m.IsTemp() || m.Status != "" {
		return false
	}
	if m.UserID != userID {
		return false
	}
	return now.Sub(m.CreatedAt) <= DeleteWindow
}

// NormalizeVolunteerID collapses the absent-volunteer sentinels into the
// empty string. The original frontend passed the literal string "null"
// through route params, so it must select the public scope too.
func NormalizeVolunteerID(volunteerID string) string {
	if volunteerID == "null" {
		return ""
	}
	return volunteerID
}
