package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vconnect/event-chat/pkg/session"
)

var (
	// ErrNoToken means no bearer token is available. Distinct from a
	// network failure so the UI can show an auth-missing state instead of
	// a transient error banner.
	ErrNoToken = errors.New("no authentication token")

	// ErrEmptyMessage rejects whitespace-only sends before any network
	// call is made.
	ErrEmptyMessage = errors.New("message is empty")

	ErrLoadFailed   = errors.New("could not load messages")
	ErrSendFailed   = errors.New("could not send message")
	ErrDeleteFailed = errors.New("could not delete message")
)

// Transport translates chat operations into HTTP calls against the REST
// backend, attaching the session's bearer token to every request.
type Transport struct {
	baseURL string
	sess    *session.Session
	client  *http.Client
}

func NewTransport(baseURL string, sess *session.Session) *Transport {
	return &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		sess:    sess,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// scopeURL picks the endpoint family: private when a volunteer id is
// present, public otherwise.
func (t *Transport) scopeURL(eventID, volunteerID string) string {
	base := fmt.Sprintf("%s/api/chat/events/%s/messages", t.baseURL, url.PathEscape(eventID))
	if v := NormalizeVolunteerID(volunteerID); v != "" {
		return base + "/volunteer/" + url.PathEscape(v)
	}
	return base
}

// FetchMessages returns the full ordered message list for the scope.
func (t *Transport) FetchMessages(ctx context.Context, eventID, volunteerID string) ([]*Message, error) {
	if !t.sess.Authenticated() {
		return nil, ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.scopeURL(eventID, volunteerID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}
	t.authorize(req)

	res, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: server returned %s", ErrLoadFailed, res.Status)
	}

	var messages []*Message
	if err := json.NewDecoder(res.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}
	return messages, nil
}

// SendMessage posts trimmed text to the scope-selected endpoint. The
// response body is not treated as canonical; callers must re-fetch to pick
// up the server-assigned id and timestamp.
func (t *Transport) SendMessage(ctx context.Context, eventID, volunteerID, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}
	if !t.sess.Authenticated() {
		return ErrNoToken
	}

	body, err := json.Marshal(map[string]string{"message": trimmed})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.scopeURL(eventID, volunteerID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	t.authorize(req)

	res, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSendFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if msg := decodeError(res); msg != "" {
			return fmt.Errorf("%w: %s", ErrSendFailed, msg)
		}
		return fmt.Errorf("%w: server returned %s", ErrSendFailed, res.Status)
	}
	return nil
}

// DeleteMessage removes one message by id. Local delete-eligibility must
// already have been checked; the server remains the authority.
func (t *Transport) DeleteMessage(ctx context.Context, messageID string) error {
	if !t.sess.Authenticated() {
		return ErrNoToken
	}

	endpoint := fmt.Sprintf("%s/api/chat/messages/%s", t.baseURL, url.PathEscape(messageID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDeleteFailed, err)
	}
	t.authorize(req)

	res, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDeleteFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: server returned %s", ErrDeleteFailed, res.Status)
	}
	return nil
}

// FetchUnreadCount reports the unread badge count for an event/volunteer
// pair. Failures of any kind collapse to zero; the badge is cosmetic and
// must never break the surrounding view.
func (t *Transport) FetchUnreadCount(ctx context.Context, eventID, volunteerID string) int {
	endpoint := fmt.Sprintf("%s/api/chat/events/%s/messages/unread?volunteer_id=%s",
		t.baseURL, url.PathEscape(eventID), url.QueryEscape(volunteerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0
	}
	t.authorize(req)

	res, err := t.client.Do(req)
	if err != nil {
		return 0
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return 0
	}

	var payload struct {
		Unread int `json:"unread"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return 0
	}
	if payload.Unread < 0 {
		return 0
	}
	return payload.Unread
}

// FetchEvents lists the events available for chatting.
func (t *Transport) FetchEvents(ctx context.Context) ([]Event, error) {
	if !t.sess.Authenticated() {
		return nil, ErrNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/api/events", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}
	t.authorize(req)

	res, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: server returned %s", ErrLoadFailed, res.Status)
	}

	var events []Event
	if err := json.NewDecoder(res.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}
	return events, nil
}

func (t *Transport) authorize(req *http.Request) {
	if t.sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.sess.Token)
	}
}

func decodeError(res *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}
