package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal("bad timestamp in test: ", err)
	}
	return parsed
}

func TestFirstInRun(t *testing.T) {
	messages := []*Message{
		{ID: "m1", UserID: "u1"},
		{ID: "m2", UserID: "u1"},
		{ID: "m3", UserID: "u2"},
		{ID: "m4", UserID: "u1"},
	}

	assert.True(t, FirstInRun(messages, 0))
	assert.False(t, FirstInRun(messages, 1))
	assert.True(t, FirstInRun(messages, 2))
	assert.True(t, FirstInRun(messages, 3))
}

func TestNeedsDateSeparator(t *testing.T) {
	messages := []*Message{
		{ID: "m1", CreatedAt: at(t, "2025-03-01T22:30:00Z")},
		{ID: "m2", CreatedAt: at(t, "2025-03-01T23:10:00Z")},
		{ID: "m3", CreatedAt: at(t, "2025-03-02T00:05:00Z")},
	}

	assert.True(t, NeedsDateSeparator(messages, 0, time.UTC))
	assert.False(t, NeedsDateSeparator(messages, 1, time.UTC))
	assert.True(t, NeedsDateSeparator(messages, 2, time.UTC))
}

func TestNeedsDateSeparatorUsesLocalCalendar(t *testing.T) {
	// 23:30 and 00:30 UTC straddle midnight in UTC but fall on the same
	// calendar day two hours east of it.
	east := time.FixedZone("east", 2*60*60)
	messages := []*Message{
		{ID: "m1", CreatedAt: at(t, "2025-03-01T23:30:00Z")},
		{ID: "m2", CreatedAt: at(t, "2025-03-02T00:30:00Z")},
	}

	assert.True(t, NeedsDateSeparator(messages, 1, time.UTC))
	assert.False(t, NeedsDateSeparator(messages, 1, east))
}

func TestSameSenderSameDayMergesRun(t *testing.T) {
	// Two messages from one sender at 10:01 and 10:02: the second shows
	// neither a repeated sender header nor a date chip.
	messages := []*Message{
		{ID: "m1", UserID: "u1", CreatedAt: at(t, "2025-03-01T10:01:00Z")},
		{ID: "m2", UserID: "u1", CreatedAt: at(t, "2025-03-01T10:02:00Z")},
	}

	assert.False(t, FirstInRun(messages, 1))
	assert.False(t, NeedsDateSeparator(messages, 1, time.UTC))
}

func TestStatusGlyph(t *testing.T) {
	assert.Equal(t, "…", StatusGlyph(&Message{Status: StatusSending}))
	assert.Equal(t, "!", StatusGlyph(&Message{Status: StatusError}))
	assert.Equal(t, "✓", StatusGlyph(&Message{}))
}

func TestFormatMessageDate(t *testing.T) {
	now := at(t, "2025-03-10T18:00:00Z")

	assert.Equal(t, "09:15", FormatMessageDate(at(t, "2025-03-10T09:15:00Z"), now, time.UTC))
	assert.Equal(t, "Sat 09:15", FormatMessageDate(at(t, "2025-03-08T09:15:00Z"), now, time.UTC))
	assert.Equal(t, "Feb 1", FormatMessageDate(at(t, "2025-02-01T09:15:00Z"), now, time.UTC))
}
