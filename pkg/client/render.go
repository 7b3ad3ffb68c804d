package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/vconnect/event-chat/pkg/chat"
)

// ownIndent pushes the current user's messages toward the right edge so
// the two sides of the conversation read apart.
const ownIndent = "      "

// RenderLines lays the message list out as tview-markup lines: date chips
// when the calendar day changes, a sender header on the first message of a
// run, merged bodies for the rest. Own messages are indented, colored and
// carry a status glyph; a delete hint appears only while the message is
// still deletable. Pure function of its inputs, applied once per render.
func RenderLines(messages []*chat.Message, currentUserID string, now time.Time, loc *time.Location) []string {
	lines := make([]string, 0, len(messages)*2)

	for i, m := range messages {
		if chat.NeedsDateSeparator(messages, i, loc) {
			lines = append(lines, fmt.Sprintf("[#888888]── %s ──[-:-:-]", chat.SeparatorLabel(m.CreatedAt, loc)))
		}

		own := m.UserID == currentUserID
		if chat.FirstInRun(messages, i) {
			lines = append(lines, headerLine(m, own, now, loc))
		}

		for _, bodyLine := range strings.Split(m.Body, "\n") {
			lines = append(lines, bodyLineFor(m, own, bodyLine))
		}

		if own {
			suffix := fmt.Sprintf("%s  [#888888]%s[-:-:-]", ownIndent, chat.StatusGlyph(m))
			if chat.CanDelete(m, currentUserID, now) {
				suffix += fmt.Sprintf("  [red](/delete %d)[-:-:-]", i+1)
			}
			lines = append(lines, suffix)
		}
	}
	return lines
}

func headerLine(m *chat.Message, own bool, now time.Time, loc *time.Location) string {
	stamp := chat.FormatMessageDate(m.CreatedAt, now, loc)
	if own {
		return fmt.Sprintf("%s[blue::b]You[-:-:-] [#888888]%s[-:-:-]", ownIndent, stamp)
	}
	name := m.SenderName
	if name == "" {
		name = m.SenderType
	}
	return fmt.Sprintf("[green::b]%s[-:-:-] [#888888]%s[-:-:-]", tview.Escape(name), stamp)
}

func bodyLineFor(m *chat.Message, own bool, text string) string {
	escaped := tview.Escape(text)
	switch {
	case m.Status == chat.StatusError:
		return fmt.Sprintf("%s  [red]%s[-:-:-]", ownIndent, escaped)
	case own:
		return fmt.Sprintf("%s  [blue]%s[-:-:-]", ownIndent, escaped)
	default:
		return "  [white]" + escaped + "[-:-:-]"
	}
}
