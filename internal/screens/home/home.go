package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lessonplay/internal/course"
	"github.com/abhisek/lessonplay/internal/gate"
	"github.com/abhisek/lessonplay/internal/logger"
	"github.com/abhisek/lessonplay/internal/player"
	"github.com/abhisek/lessonplay/internal/router"
	"github.com/abhisek/lessonplay/internal/screen"
	"github.com/abhisek/lessonplay/internal/screens/lesson"
	"github.com/abhisek/lessonplay/internal/store"
	"github.com/abhisek/lessonplay/internal/ui/components"
	"github.com/abhisek/lessonplay/internal/ui/layout"
)

// Deps are what the home screen needs to open a course.
type Deps struct {
	Catalog *course.Catalog
	Store   player.Store
	Events  store.EventRepo
	Policy  string
	Tick    time.Duration
	Log     *logger.Logger
}

// HomeScreen lists the catalog's courses with stored progress.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	var items []components.MenuItem
	if h.deps.Catalog != nil {
		for _, c := range h.deps.Catalog.All() {
			id := c.ID
			items = append(items, components.MenuItem{
				Label:  c.Title,
				Detail: h.detail(&c),
				Action: func() tea.Cmd { return h.Open(id) },
			})
		}
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	return items
}

// detail summarizes stored progress for c, e.g. "2/4 topics · 50%".
func (h *HomeScreen) detail(c *course.Course) string {
	total := len(c.Topics)
	if h.deps.Store == nil || total == 0 {
		return fmt.Sprintf("%d topics", total)
	}
	completed := h.deps.Store.LoadCompletion(context.Background(), c.ID)
	topics := make([]course.Topic, total)
	copy(topics, c.Topics)
	for i := range topics {
		topics[i].Completed = completed[topics[i].ID]
	}
	return fmt.Sprintf("%d/%d topics · %d%%", gate.CompletedCount(topics), total, gate.OverallProgress(topics))
}

// Open loads a player session for the course and pushes the lesson screen.
func (h *HomeScreen) Open(courseID string) tea.Cmd {
	c, err := h.deps.Catalog.Get(courseID)
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	sess, err := player.Load(context.Background(), c, player.Deps{
		Store:  h.deps.Store,
		Events: h.deps.Events,
		Policy: h.deps.Policy,
		Log:    h.deps.Log,
	})
	if err != nil {
		h.deps.Log.Error("open course failed", "course", courseID, "error", err)
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	ls := lesson.New(sess, h.deps.Events, h.deps.Tick)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: ls}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Courses"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(screen.ResumeMsg); ok {
		// progress may have changed while a course was open
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		h.menu.Selected = selected
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	sections := []string{
		renderBanner(cw, height < 24 || layout.IsCompactWidth(width)),
		renderMenu(h.menu.View(), cw),
	}
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
