package client

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// InputSection hosts the compose field. Enter submits; Shift+Enter inserts
// a newline instead. While a send is in flight every key is swallowed so
// duplicate submissions cannot happen.
type InputSection struct {
	View *tview.InputField

	disabled bool
	onSubmit func(text string)
}

func NewInputSection(onSubmit func(text string)) *InputSection {
	inputView := tview.NewInputField()
	inputView.SetPlaceholder("Send a message or type /help for commands").
		SetPlaceholderTextColor(tcell.ColorDeepSkyBlue)
	inputView.SetLabel(">").SetLabelColor(tcell.ColorDeepSkyBlue).SetLabelWidth(2)
	inputView.SetFieldTextColor(tcell.ColorWhite).SetFieldBackgroundColor(tcell.ColorGrey)

	section := &InputSection{View: inputView, onSubmit: onSubmit}

	inputView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if section.disabled {
			return nil
		}
		if event.Key() == tcell.KeyEnter && event.Modifiers()&tcell.ModShift != 0 {
			inputView.SetText(inputView.GetText() + "\n")
			return nil
		}
		return event
	})

	inputView.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter || section.disabled {
			return
		}
		section.onSubmit(inputView.GetText())
	})

	return section
}

// Disable freezes the field for the duration of a send.
func (s *InputSection) Disable() {
	s.disabled = true
}

// Enable reopens the field; called on every completion path.
func (s *InputSection) Enable() {
	s.disabled = false
}

// Clear empties the field after an accepted submission. Rejected
// submissions (whitespace only) leave the text alone.
func (s *InputSection) Clear() {
	s.View.SetText("")
}
