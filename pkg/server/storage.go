package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/vconnect/event-chat/pkg/chat"
)

var ErrMessageNotFound = errors.New("message not found")

const eventsKey = "events"

// Storage keeps messages, unread counters and the event list in redis.
// Each chat scope is a redis list of JSON-encoded messages in send order;
// a per-message index entry points back at the scope so deletes can find
// and remove the exact list element.
type Storage struct {
	client *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// ScopeKey maps an (event, volunteer) pair onto its redis list. An empty
// volunteer id selects the event-wide public thread.
func ScopeKey(eventID, volunteerID string) string {
	if volunteerID == "" {
		return fmt.Sprintf("chat:event:%s", eventID)
	}
	return fmt.Sprintf("chat:event:%s:volunteer:%s", eventID, volunteerID)
}

func messageKey(id string) string {
	return "chat:message:" + id
}

func unreadKey(eventID, volunteerID string) string {
	return fmt.Sprintf("chat:unread:event:%s:volunteer:%s", eventID, volunteerID)
}

type messageIndex struct {
	ScopeKey string `json:"scope_key"`
	Raw      string `json:"raw"`
}

// AppendMessage stores a message at the tail of its scope.
func (s *Storage) AppendMessage(ctx context.Context, scopeKey string, m *chat.Message) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("could not marshal message: %w", err)
	}
	if err := s.client.RPush(ctx, scopeKey, string(raw)).Err(); err != nil {
		return fmt.Errorf("could not append message: %w", err)
	}

	index, err := json.Marshal(messageIndex{ScopeKey: scopeKey, Raw: string(raw)})
	if err != nil {
		return fmt.Errorf("could not marshal message index: %w", err)
	}
	if err := s.client.Set(ctx, messageKey(m.ID), string(index), 0).Err(); err != nil {
		return fmt.Errorf("could not index message: %w", err)
	}
	return nil
}

// ListMessages returns a scope's messages in send order.
func (s *Storage) ListMessages(ctx context.Context, scopeKey string) ([]*chat.Message, error) {
	raws, err := s.client.LRange(ctx, scopeKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("could not list messages: %w", err)
	}

	messages := make([]*chat.Message, 0, len(raws))
	for _, raw := range raws {
		var m chat.Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			continue
		}
		messages = append(messages, &m)
	}
	return messages, nil
}

// GetMessage loads one message by id.
func (s *Storage) GetMessage(ctx context.Context, id string) (*chat.Message, error) {
	index, err := s.loadIndex(ctx, id)
	if err != nil {
		return nil, err
	}
	var m chat.Message
	if err := json.Unmarshal([]byte(index.Raw), &m); err != nil {
		return nil, fmt.Errorf("could not unmarshal message: %w", err)
	}
	return &m, nil
}

// DeleteMessage removes a message from its scope list and drops the index
// entry.
func (s *Storage) DeleteMessage(ctx context.Context, id string) error {
	index, err := s.loadIndex(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.LRem(ctx, index.ScopeKey, 1, index.Raw).Err(); err != nil {
		return fmt.Errorf("could not remove message: %w", err)
	}
	return s.client.Del(ctx, messageKey(id)).Err()
}

func (s *Storage) loadIndex(ctx context.Context, id string) (*messageIndex, error) {
	raw, err := s.client.Get(ctx, messageKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not load message index: %w", err)
	}
	var index messageIndex
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		return nil, fmt.Errorf("could not unmarshal message index: %w", err)
	}
	return &index, nil
}

func (s *Storage) IncrUnread(ctx context.Context, eventID, volunteerID string) error {
	return s.client.Incr(ctx, unreadKey(eventID, volunteerID)).Err()
}

func (s *Storage) ResetUnread(ctx context.Context, eventID, volunteerID string) error {
	return s.client.Del(ctx, unreadKey(eventID, volunteerID)).Err()
}

func (s *Storage) GetUnread(ctx context.Context, eventID, volunteerID string) (int, error) {
	count, err := s.client.Get(ctx, unreadKey(eventID, volunteerID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not load unread count: %w", err)
	}
	return count, nil
}

func (s *Storage) AddEvent(ctx context.Context, event chat.Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}
	return s.client.RPush(ctx, eventsKey, string(raw)).Err()
}

func (s *Storage) ListEvents(ctx context.Context) ([]chat.Event, error) {
	raws, err := s.client.LRange(ctx, eventsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("could not list events: %w", err)
	}
	events := make([]chat.Event, 0, len(raws))
	for _, raw := range raws {
		var event chat.Event
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}
