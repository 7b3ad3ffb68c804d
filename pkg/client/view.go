package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/vconnect/event-chat/pkg/chat"
	"github.com/vconnect/event-chat/pkg/session"
)

// ChatView wires one open chat scope together: transport, store, board,
// compose input and unread badge. It owns the scope's message list
// exclusively and serializes every mutation through the UI loop.
type ChatView struct {
	Layout *tview.Flex

	app       *tview.Application
	sess      *session.Session
	transport *chat.Transport
	store     *chat.Store
	board     *MessageBoard
	input     *InputSection
	badge     *UnreadBadge

	eventID     string
	volunteerID string

	ctx    context.Context
	cancel context.CancelFunc

	sending bool
	onClose func()
}

func NewChatView(app *tview.Application, sess *session.Session, transport *chat.Transport, event chat.Event, volunteerID string, onClose func()) *ChatView {
	ctx, cancel := context.WithCancel(context.Background())

	volunteerID = chat.NormalizeVolunteerID(volunteerID)
	title := event.Title
	if volunteerID != "" {
		title = fmt.Sprintf("Private chat · %s", event.Title)
	}

	v := &ChatView{
		app:         app,
		sess:        sess,
		transport:   transport,
		store:       chat.NewStore(),
		eventID:     event.ID,
		volunteerID: volunteerID,
		ctx:         ctx,
		cancel:      cancel,
		onClose:     onClose,
	}

	v.board = NewMessageBoard(app, v.store, sess.UserID, title)
	v.input = NewInputSection(v.handleSubmit)
	v.badge = NewUnreadBadge(transport, event.ID, volunteerID)

	v.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.badge.View, 1, 0, false).
		AddItem(v.board.Frame, 0, 1, false).
		AddItem(v.input.View, 1, 0, true)

	v.Layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlB:
			v.board.ScrollToBottom()
			return nil
		case tcell.KeyEscape:
			v.Close()
			return nil
		case tcell.KeyUp, tcell.KeyDown, tcell.KeyPgUp, tcell.KeyPgDn:
			app.SetFocus(v.board.View)
		}
		return event
	})
	v.board.View.SetDoneFunc(func(key tcell.Key) {
		app.SetFocus(v.input.View)
		v.board.TrackScroll()
	})

	if !sess.Authenticated() {
		// Auth-missing is its own state, not a network error: the compose
		// surface stays closed.
		v.input.Disable()
		v.board.ShowBanner("No authentication token — sign in to chat")
	}

	return v
}

// Open performs the initial load and, for private scopes, refreshes the
// unread badge.
func (v *ChatView) Open() {
	if !v.sess.Authenticated() {
		return
	}
	go func() {
		messages, err := v.transport.FetchMessages(v.ctx, v.eventID, v.volunteerID)
		v.app.QueueUpdateDraw(func() {
			if err != nil {
				v.board.ShowBanner("Could not load messages")
				return
			}
			v.store.Replace(messages)
			v.board.Render()
			v.board.ScrollToBottom()
		})
	}()
	if v.volunteerID != "" {
		go func() {
			v.badge.Refresh(v.ctx)
			v.app.QueueUpdateDraw(func() {})
		}()
	}
}

// Close tears the view down, aborting any in-flight requests.
func (v *ChatView) Close() {
	v.cancel()
	if v.onClose != nil {
		v.onClose()
	}
}

func (v *ChatView) handleSubmit(text string) {
	switch strings.TrimSpace(text) {
	case "/help":
		v.board.ShowBanner("/refresh · /delete <n> · /unread · Esc to leave")
		v.input.Clear()
		return
	case "/refresh":
		v.input.Clear()
		v.refresh()
		return
	case "/unread":
		v.input.Clear()
		go func() {
			v.badge.Refresh(v.ctx)
			v.app.QueueUpdateDraw(func() {})
		}()
		return
	}
	if trimmed := strings.TrimSpace(text); strings.HasPrefix(trimmed, "/delete ") {
		v.input.Clear()
		v.deleteByNumber(strings.TrimPrefix(trimmed, "/delete "))
		return
	}
	v.send(text)
}

// send runs the optimistic-echo flow: append locally, persist, then
// re-fetch so the server's list replaces the temp entry. On any failure
// the temp entry stays, flipped to the error state. The input re-enables
// on every path.
func (v *ChatView) send(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || v.sending {
		// Rejected submissions leave the compose field untouched.
		return
	}

	v.sending = true
	v.input.Disable()
	v.input.Clear()
	v.board.ClearBanner()

	temp := v.store.AppendOptimistic(v.sess, v.eventID, trimmed)
	v.board.Render()
	v.board.ScrollToBottom()

	go func() {
		err := v.transport.SendMessage(v.ctx, v.eventID, v.volunteerID, trimmed)
		var messages []*chat.Message
		if err == nil {
			messages, err = v.transport.FetchMessages(v.ctx, v.eventID, v.volunteerID)
		}

		v.app.QueueUpdateDraw(func() {
			defer func() {
				v.sending = false
				v.input.Enable()
			}()

			if err != nil {
				v.store.MarkError(temp.ID)
				v.board.Render()
				if errors.Is(err, chat.ErrNoToken) {
					v.board.ShowBanner("No authentication token found")
				} else {
					v.board.ShowBanner("Could not send message")
				}
				return
			}

			v.store.Replace(messages)
			v.board.Render()
			v.board.ScrollToBottom()
		})
	}()
}

// deleteByNumber deletes the nth rendered message. Eligibility is checked
// locally first; the delete hint in the board already pre-filters, this
// re-check covers a window that closed while the command was typed.
func (v *ChatView) deleteByNumber(arg string) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > v.store.Len() {
		v.board.ShowBanner("No such message")
		return
	}
	target := v.store.Messages()[n-1]
	if !chat.CanDelete(target, v.sess.UserID, time.Now()) {
		v.board.ShowBanner("Only your own messages can be deleted, within 15 minutes")
		return
	}

	go func() {
		err := v.transport.DeleteMessage(v.ctx, target.ID)
		v.app.QueueUpdateDraw(func() {
			if err != nil {
				v.board.ShowBanner("Could not delete message")
				return
			}
			// Confirmed delete removes locally; no re-fetch.
			v.store.Remove(target.ID)
			v.board.Render()
		})
	}()
}

func (v *ChatView) refresh() {
	go func() {
		messages, err := v.transport.FetchMessages(v.ctx, v.eventID, v.volunteerID)
		v.app.QueueUpdateDraw(func() {
			if err != nil {
				v.board.ShowBanner("Could not load messages")
				return
			}
			v.store.Replace(messages)
			v.board.Render()
		})
	}()
}
