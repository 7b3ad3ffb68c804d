package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanDelete(t *testing.T) {
	now := time.Now()
	own := &Message{ID: "m1", UserID: "u1", CreatedAt: now.Add(-5 * time.Minute)}

	assert.True(t, CanDelete(own, "u1", now))
	assert.False(t, CanDelete(own, "u2", now), "only the author may delete")

	// The window closes as the clock advances past 15 minutes.
	assert.True(t, CanDelete(own, "u1", now.Add(9*time.Minute)))
	assert.False(t, CanDelete(own, "u1", now.Add(11*time.Minute)))
}

func TestCanDeleteWindowBoundary(t *testing.T) {
	now := time.Now()
	m := &Message{ID: "m1", UserID: "u1", CreatedAt: now.Add(-DeleteWindow)}
	assert.True(t, CanDelete(m, "u1", now), "exactly 15 minutes is still inside the window")
	assert.False(t, CanDelete(m, "u1", now.Add(time.Second)))
}

func TestCanDeleteNeverOnOptimisticEntries(t *testing.T) {
	now := time.Now()
	sending := &Message{ID: TempIDPrefix + "abc", UserID: "u1", CreatedAt: now, Status: StatusSending}
	failed := &Message{ID: TempIDPrefix + "def", UserID: "u1", CreatedAt: now, Status: StatusError}

	assert.False(t, CanDelete(sending, "u1", now))
	assert.False(t, CanDelete(failed, "u1", now))
}

func TestCanDeleteMissingIdentity(t *testing.T) {
	now := time.Now()
	assert.False(t, CanDelete(nil, "u1", now))
	assert.False(t, CanDelete(&Message{ID: "m1", CreatedAt: now}, "u1", now))
	assert.False(t, CanDelete(&Message{ID: "m1", UserID: "u1", CreatedAt: now}, "", now))
}

func TestNormalizeVolunteerID(t *testing.T) {
	assert.Equal(t, "", NormalizeVolunteerID(""))
	assert.Equal(t, "", NormalizeVolunteerID("null"))
	assert.Equal(t, "v7", NormalizeVolunteerID("v7"))
}
