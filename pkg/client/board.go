package client

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/vconnect/event-chat/pkg/chat"
)

var hintColor = tcell.ColorYellow

// scrollSlack is how close to the bottom, in lines, still counts as "at
// the bottom" for the auto-scroll heuristic.
const scrollSlack = 3

// MessageBoard renders the store as a threaded conversation and owns the
// scroll position.
type MessageBoard struct {
	View  *tview.TextView
	Frame *tview.Frame

	store     *chat.Store
	userID    string
	title     string
	lineCount int
	pinned    bool
}

func NewMessageBoard(app *tview.Application, store *chat.Store, userID, title string) *MessageBoard {
	view := tview.NewTextView().SetChangedFunc(func() {
		app.Draw()
	})
	view.SetDynamicColors(true).SetScrollable(true)

	frame := tview.NewFrame(view)
	frame.SetBorder(true)
	frame.SetTitle(" " + title + " ")

	return &MessageBoard{
		View:   view,
		Frame:  frame,
		store:  store,
		userID: userID,
		title:  title,
		pinned: true,
	}
}

// Render redraws the board. The view follows new messages only while the
// user sits at (or near) the bottom, or when the newest message is their
// own; otherwise the position stays put and a new-messages hint appears.
func (b *MessageBoard) Render() {
	lines := RenderLines(b.store.Messages(), b.userID, time.Now(), time.Local)
	b.lineCount = len(lines)
	b.View.SetText(strings.Join(lines, "\n"))

	last := b.store.Last()
	ownLatest := last != nil && last.UserID == b.userID
	if b.pinned || ownLatest {
		b.ScrollToBottom()
	} else {
		b.setHint("↓ new messages · Ctrl-B to jump down")
	}
}

// ShowBanner puts a transient notice under the board.
func (b *MessageBoard) ShowBanner(text string) {
	b.setHint(text)
}

// ClearBanner removes any hint or banner.
func (b *MessageBoard) ClearBanner() {
	b.setHint("")
}

func (b *MessageBoard) setHint(text string) {
	b.Frame.Clear()
	if text != "" {
		b.Frame.AddText(text, false, tview.AlignCenter, hintColor)
	}
}

// ScrollToBottom jumps to the newest message and pins the view there.
func (b *MessageBoard) ScrollToBottom() {
	b.pinned = true
	b.View.ScrollToEnd()
	b.setHint("")
}

// TrackScroll recomputes whether the user still sits near the bottom.
// Called after every manual scroll event.
func (b *MessageBoard) TrackScroll() {
	row, _ := b.View.GetScrollOffset()
	_, _, _, height := b.View.GetInnerRect()
	b.pinned = b.lineCount-(row+height) <= scrollSlack
	if b.pinned {
		b.setHint("")
	}
}
