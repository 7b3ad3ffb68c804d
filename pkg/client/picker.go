package client

import (
	"context"
	"fmt"

	"github.com/rivo/tview"

	"github.com/vconnect/event-chat/pkg/chat"
)

// EventPicker lists the events the user can open a chat for.
type EventPicker struct {
	List *tview.List
}

func NewEventPicker(app *tview.Application, transport *chat.Transport, onSelect func(chat.Event)) *EventPicker {
	list := tview.NewList()
	list.SetBorder(true)
	list.SetTitle(" Events ")

	picker := &EventPicker{List: list}

	go func() {
		events, err := transport.FetchEvents(context.Background())
		app.QueueUpdateDraw(func() {
			if err != nil {
				list.AddItem("Could not load events", err.Error(), 0, nil)
				return
			}
			if len(events) == 0 {
				list.AddItem("No events yet", "", 0, nil)
				return
			}
			for i, event := range events {
				ev := event
				shortcut := rune(0)
				if i < 9 {
					shortcut = rune('1' + i)
				}
				list.AddItem(ev.Title, fmt.Sprintf("event %s", ev.ID), shortcut, func() {
					onSelect(ev)
				})
			}
		})
	}()

	return picker
}
