package chat

import (
	"time"

	"github.com/rs/xid"

	"github.com/vconnect/event-chat/pkg/session"
)

// Store holds the authoritative-so-far message list for one open chat
// scope. It is owned by a single view instance; the view serializes all
// access through the UI event loop, so the store itself carries no locks.
type Store struct {
	messages []*Message
}

func NewStore() *Store {
	return &Store{messages: make([]*Message, 0)}
}

// Messages returns the list in server order.
func (s *Store) Messages() []*Message {
	return s.messages
}

func (s *Store) Len() int {
	return len(s.messages)
}

// Last returns the newest message, or nil when the list is empty.
func (s *Store) Last() *Message {
	if len(s.messages) == 0 {
		return nil
	}
	return s.messages[len(s.messages)-1]
}

// Replace swaps in a freshly fetched list wholesale. Any optimistic
// entries are implicitly discarded; the server's list is the truth after
// every reconcile.
func (s *Store) Replace(messages []*Message) {
	if messages == nil {
		messages = make([]*Message, 0)
	}
	s.messages = messages
}

// AppendOptimistic adds a local echo of a just-submitted send. The entry
// carries a temp id and StatusSending until a re-fetch replaces it or
// MarkError tags it.
func (s *Store) AppendOptimistic(sess *session.Session, eventID, text string) *Message {
	m := &Message{
		ID:         TempIDPrefix + xid.New().String(),
		EventID:    eventID,
		UserID:     sess.UserID,
		Body:       text,
		SenderType: sess.UserType,
		SenderName: "You",
		CreatedAt:  time.Now(),
		Status:     StatusSending,
	}
	s.messages = append(s.messages, m)
	return m
}

// MarkError flips an optimistic entry to the error state in place. The
// entry stays visible so the user can see which message failed; it is
// never retried or removed automatically.
func (s *Store) MarkError(id string) {
	for _, m := range s.messages {
		if m.ID == id {
			m.Status = StatusError
			return
		}
	}
}

// Remove drops a message locally after a server-confirmed delete. No
// re-fetch follows.
func (s *Store) Remove(id string) {
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}
