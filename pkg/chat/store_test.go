package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vconnect/event-chat/pkg/session"
)

func testSession() *session.Session {
	return &session.Session{Token: "t", UserID: "u1", UserType: "volunteer", Name: "Amina"}
}

func TestStoreAppendOptimistic(t *testing.T) {
	store := NewStore()
	m := store.AppendOptimistic(testSession(), "e1", "Hello")

	assert.Equal(t, 1, store.Len())
	assert.True(t, m.IsTemp())
	assert.Equal(t, StatusSending, m.Status)
	assert.Equal(t, "u1", m.UserID)
	assert.Equal(t, "You", m.SenderName)
	assert.Equal(t, "Hello", m.Body)
	assert.Same(t, m, store.Last())
}

func TestStoreReplaceDiscardsOptimisticEntries(t *testing.T) {
	store := NewStore()
	store.AppendOptimistic(testSession(), "e1", "Hello")

	// The re-fetch after a successful send returns the canonical entry.
	canonical := []*Message{{ID: "srv-1", EventID: "e1", UserID: "u1", Body: "Hello"}}
	store.Replace(canonical)

	assert.Equal(t, 1, store.Len())
	assert.False(t, store.Last().IsTemp())
	assert.Equal(t, "Hello", store.Last().Body)
}

func TestStoreReplaceNilYieldsEmptyList(t *testing.T) {
	store := NewStore()
	store.AppendOptimistic(testSession(), "e1", "Hello")
	store.Replace(nil)
	assert.Equal(t, 0, store.Len())
	assert.NotNil(t, store.Messages())
}

func TestStoreMarkErrorRetainsEntry(t *testing.T) {
	store := NewStore()
	m := store.AppendOptimistic(testSession(), "e1", "Hello")

	store.MarkError(m.ID)

	assert.Equal(t, 1, store.Len(), "failed sends stay visible")
	assert.Equal(t, StatusError, store.Last().Status)
}

func TestStoreRemove(t *testing.T) {
	store := NewStore()
	store.Replace([]*Message{
		{ID: "m1", UserID: "u1"},
		{ID: "m2", UserID: "u2"},
		{ID: "m3", UserID: "u1"},
	})

	store.Remove("m2")

	assert.Equal(t, 2, store.Len())
	for _, m := range store.Messages() {
		assert.NotEqual(t, "m2", m.ID)
	}

	// Removing an unknown id is a no-op.
	store.Remove("missing")
	assert.Equal(t, 2, store.Len())
}
