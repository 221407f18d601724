package notes

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lessonplay/internal/player"
	"github.com/abhisek/lessonplay/internal/screen"
	"github.com/abhisek/lessonplay/internal/ui/components"
	"github.com/abhisek/lessonplay/internal/ui/layout"
	"github.com/abhisek/lessonplay/internal/ui/theme"
)

// NotesScreen edits the course notes. Every change is saved immediately.
type NotesScreen struct {
	sess   *player.Session
	editor components.NotesEditor
	notice player.Notice
}

var _ screen.Screen = (*NotesScreen)(nil)
var _ screen.KeyHintProvider = (*NotesScreen)(nil)

// New creates a NotesScreen for sess.
func New(sess *player.Session) *NotesScreen {
	return &NotesScreen{
		sess:   sess,
		editor: components.NewNotesEditor(sess.Notes(), 60, 10),
	}
}

func (s *NotesScreen) Init() tea.Cmd {
	return s.editor.Init()
}

func (s *NotesScreen) Title() string {
	return "Notes"
}

func (s *NotesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Type", Description: "Edit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *NotesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)

	if v := s.editor.Value(); v != s.sess.Notes() {
		res := s.sess.EditNotes(context.Background(), v)
		s.notice = player.Notice{}
		if len(res.Notices) > 0 {
			s.notice = res.Notices[len(res.Notices)-1]
		}
	}
	return s, cmd
}

func (s *NotesScreen) View(width, height int) string {
	w := width - 8
	if w > 80 {
		w = 80
	}
	h := height - 8
	if h < 3 {
		h = 3
	}
	s.editor.SetSize(w, h)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("My Notes · " + s.sess.Course().Title))
	b.WriteString("\n\n")
	b.WriteString(components.Card("", s.editor.View(), w+4, true))
	if s.notice.Message != "" {
		b.WriteString("\n")
		b.WriteString(components.NoticeLine(string(s.notice.Kind), s.notice.Message))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
