package client

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vconnect/event-chat/pkg/chat"
)

func joined(lines []string) string {
	return strings.Join(lines, "\n")
}

func TestRenderMergesSameSenderRuns(t *testing.T) {
	now := time.Now()
	messages := []*chat.Message{
		{ID: "m1", UserID: "u2", SenderName: "Amina", Body: "first", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "m2", UserID: "u2", SenderName: "Amina", Body: "second", CreatedAt: now.Add(-1 * time.Minute)},
	}

	out := joined(RenderLines(messages, "u1", now, time.UTC))

	assert.Equal(t, 1, strings.Count(out, "Amina"), "merged run repeats no sender header")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Equal(t, 1, strings.Count(out, "── "), "same-day run gets a single date chip")
}

func TestRenderDateSeparatorPerDay(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	messages := []*chat.Message{
		{ID: "m1", UserID: "u2", SenderName: "Amina", Body: "a", CreatedAt: day1},
		{ID: "m2", UserID: "u2", SenderName: "Amina", Body: "b", CreatedAt: day2},
	}

	out := joined(RenderLines(messages, "u1", day2, time.UTC))
	assert.Equal(t, 2, strings.Count(out, "── "))
}

func TestRenderDeleteHintOnlyWithinWindow(t *testing.T) {
	now := time.Now()
	fresh := []*chat.Message{
		{ID: "m1", UserID: "u1", Body: "recent", CreatedAt: now.Add(-5 * time.Minute)},
	}
	stale := []*chat.Message{
		{ID: "m2", UserID: "u1", Body: "old", CreatedAt: now.Add(-20 * time.Minute)},
	}

	assert.Contains(t, joined(RenderLines(fresh, "u1", now, time.UTC)), "/delete 1")
	assert.NotContains(t, joined(RenderLines(stale, "u1", now, time.UTC)), "/delete")
}

func TestRenderNoDeleteHintForOthersOrOptimistic(t *testing.T) {
	now := time.Now()
	messages := []*chat.Message{
		{ID: "m1", UserID: "u2", SenderName: "Amina", Body: "theirs", CreatedAt: now},
		{ID: chat.TempIDPrefix + "x", UserID: "u1", Body: "pending", CreatedAt: now, Status: chat.StatusSending},
	}

	assert.NotContains(t, joined(RenderLines(messages, "u1", now, time.UTC)), "/delete")
}

func TestRenderStatusGlyphs(t *testing.T) {
	now := time.Now()
	messages := []*chat.Message{
		{ID: chat.TempIDPrefix + "a", UserID: "u1", Body: "pending", CreatedAt: now, Status: chat.StatusSending},
		{ID: chat.TempIDPrefix + "b", UserID: "u1", Body: "failed", CreatedAt: now, Status: chat.StatusError},
		{ID: "m3", UserID: "u1", Body: "landed", CreatedAt: now},
	}

	out := joined(RenderLines(messages, "u1", now, time.UTC))
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "!")
	assert.Contains(t, out, "✓")
}

func TestRenderOwnMessagesIndented(t *testing.T) {
	now := time.Now()
	messages := []*chat.Message{
		{ID: "m1", UserID: "u1", Body: "mine", CreatedAt: now},
		{ID: "m2", UserID: "u2", SenderName: "Amina", Body: "theirs", CreatedAt: now},
	}

	lines := RenderLines(messages, "u1", now, time.UTC)
	var mine, theirs string
	for _, line := range lines {
		if strings.Contains(line, "mine") {
			mine = line
		}
		if strings.Contains(line, "theirs") {
			theirs = line
		}
	}
	assert.True(t, strings.HasPrefix(mine, ownIndent))
	assert.False(t, strings.HasPrefix(theirs, ownIndent))
	assert.Contains(t, joined(lines), "[blue::b]You")
}

func TestRenderMultilineBody(t *testing.T) {
	now := time.Now()
	messages := []*chat.Message{
		{ID: "m1", UserID: "u2", SenderName: "Amina", Body: "line one\nline two", CreatedAt: now},
	}

	out := joined(RenderLines(messages, "u1", now, time.UTC))
	assert.Contains(t, out, "line one")
	assert.Contains(t, out, "line two")
}
