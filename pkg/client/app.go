package client

import (
	"fmt"
	"log"

	"github.com/rivo/tview"

	"github.com/vconnect/event-chat/pkg/chat"
	"github.com/vconnect/event-chat/pkg/session"
	"github.com/vconnect/event-chat/pkg/ws"
)

// Config carries the client's connection settings.
type Config struct {
	APIBaseURL string
	Token      string
	// VolunteerID scopes opened chats to a private thread when set.
	VolunteerID string
	// WSEndpoint, when set, opens the platform's websocket. Nothing in the
	// chat flow consumes it yet; it is the hook for a future push design.
	WSEndpoint string
}

// NewApp builds the terminal application: an event picker that opens chat
// views.
func NewApp(cfg Config) (*tview.Application, error) {
	sess, err := session.FromToken(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("could not read session token: %w", err)
	}

	transport := chat.NewTransport(cfg.APIBaseURL, sess)
	app := tview.NewApplication()
	pages := tview.NewPages()

	// The websocket carries only the server's delete broadcast today; no
	// chat listener is registered on it.
	if cfg.WSEndpoint != "" {
		if _, err := ws.Connect(cfg.WSEndpoint); err != nil {
			log.Printf("websocket unavailable, continuing without it: %s", err)
		}
	}

	var picker *EventPicker
	picker = NewEventPicker(app, transport, func(event chat.Event) {
		view := NewChatView(app, sess, transport, event, cfg.VolunteerID, func() {
			pages.RemovePage("chat")
			app.SetFocus(picker.List)
		})
		pages.AddPage("chat", view.Layout, true, true)
		app.SetFocus(view.Layout)
		view.Open()
	})

	pages.AddPage("events", picker.List, true, true)
	app.SetRoot(pages, true)
	return app, nil
}
