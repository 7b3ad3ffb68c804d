package chat

import "time"

// The grouping helpers are pure functions of the message list, applied
// once per render. They mirror the threaded-conversation layout: avatars
// and sender names only on the first message of a same-sender run, date
// chips whenever the local calendar date changes.

// FirstInRun reports whether messages[i] starts a new same-sender run.
func FirstInRun(messages []*Message, i int) bool {
	if i == 0 {
		return true
	}
	return messages[i-1].UserID != messages[i].UserID
}

// NeedsDateSeparator reports whether a date chip belongs before
// messages[i], comparing calendar dates in loc.
func NeedsDateSeparator(messages []*Message, i int, loc *time.Location) bool {
	if i == 0 {
		return true
	}
	prev := messages[i-1].CreatedAt.In(loc)
	cur := messages[i].CreatedAt.In(loc)
	py, pm, pd := prev.Date()
	cy, cm, cd := cur.Date()
	return py != cy || pm != cm || pd != cd
}

// StatusGlyph maps the transient send state to its inline indicator.
func StatusGlyph(m *Message) string {
	switch m.Status {
	case StatusSending:
		return "…"
	case StatusError:
		return "!"
	default:
		return "✓"
	}
}

// FormatTime renders a timestamp as HH:mm.
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// FormatMessageDate renders a message timestamp the way the thread shows
// it inline: time only for today, weekday plus time within a week, date
// otherwise.
func FormatMessageDate(t, now time.Time, loc *time.Location) string {
	t = t.In(loc)
	now = now.In(loc)

	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return t.Format("15:04")
	}
	if now.Sub(t) < 7*24*time.Hour {
		return t.Format("Mon 15:04")
	}
	return t.Format("Jan 2")
}

// SeparatorLabel renders the date chip text.
func SeparatorLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon, Jan 2")
}
