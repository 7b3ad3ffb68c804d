package client

import (
	"context"
	"fmt"

	"github.com/rivo/tview"

	"github.com/vconnect/event-chat/pkg/chat"
)

// UnreadBadge shows the unread count for one event/volunteer pair. It owns
// its own count, never touches the message store, and treats every failure
// as zero — the badge must not be able to break the page around it.
type UnreadBadge struct {
	View *tview.TextView

	transport   *chat.Transport
	eventID     string
	volunteerID string
}

func NewUnreadBadge(transport *chat.Transport, eventID, volunteerID string) *UnreadBadge {
	view := tview.NewTextView()
	view.SetDynamicColors(true)
	badge := &UnreadBadge{
		View:        view,
		transport:   transport,
		eventID:     eventID,
		volunteerID: volunteerID,
	}
	badge.set(0)
	return badge
}

// Refresh re-polls the unread endpoint and updates the label.
func (b *UnreadBadge) Refresh(ctx context.Context) {
	b.set(b.transport.FetchUnreadCount(ctx, b.eventID, b.volunteerID))
}

func (b *UnreadBadge) set(count int) {
	if count > 0 {
		b.View.SetText(fmt.Sprintf("[red::b]✉ %d unread[-:-:-]", count))
		return
	}
	b.View.SetText("")
}
