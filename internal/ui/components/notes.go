package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// NotesPlaceholder is shown in an empty notes editor.
const NotesPlaceholder = "Write your notes here..."

// NotesEditor wraps bubbles/textarea for free-text course notes.
type NotesEditor struct {
	Model textarea.Model
}

// NewNotesEditor creates a focused editor holding value.
func NewNotesEditor(value string, width, height int) NotesEditor {
	ta := textarea.New()
	ta.Placeholder = NotesPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.SetValue(value)
	ta.Focus()
	return NotesEditor{Model: ta}
}

// Init returns the initial command.
func (n NotesEditor) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update forwards messages to the textarea.
func (n NotesEditor) Update(msg tea.Msg) (NotesEditor, tea.Cmd) {
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// SetSize resizes the editor.
func (n *NotesEditor) SetSize(width, height int) {
	n.Model.SetWidth(width)
	n.Model.SetHeight(height)
}

// View renders the editor.
func (n NotesEditor) View() string {
	return n.Model.View()
}

// Value returns the current text.
func (n NotesEditor) Value() string {
	return n.Model.Value()
}
