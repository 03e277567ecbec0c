package selectset

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mondai-quiz/mondai/internal/catalog"
	"github.com/mondai-quiz/mondai/internal/router"
	"github.com/mondai-quiz/mondai/internal/screen"
	"github.com/mondai-quiz/mondai/internal/ui/components"
	"github.com/mondai-quiz/mondai/internal/ui/layout"
	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

// Lister returns the available question sets. It never fails; an
// unreachable manifest is an empty list.
type Lister interface {
	ListSets(ctx context.Context) []catalog.SetInfo
}

// setsLoadedMsg carries the manifest once fetched.
type setsLoadedMsg struct {
	Sets []catalog.SetInfo
}

// SelectScreen lists question sets and starts a quiz on the chosen one.
type SelectScreen struct {
	lister Lister
	sets   []catalog.SetInfo
	loaded bool
	menu   components.Menu
}

var _ screen.Screen = (*SelectScreen)(nil)
var _ screen.KeyHintProvider = (*SelectScreen)(nil)

// New creates the selection screen.
func New(lister Lister) *SelectScreen {
	return &SelectScreen{lister: lister}
}

func (s *SelectScreen) Init() tea.Cmd {
	return s.loadSets()
}

func (s *SelectScreen) Title() string {
	return "Choose a set"
}

func (s *SelectScreen) KeyHints() []layout.KeyHint {
	if !s.loaded || len(s.sets) == 0 {
		return []layout.KeyHint{
			{Key: "R", Description: "Reload"},
			{Key: "H", Description: "History"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "R", Description: "Reload"},
		{Key: "H", Description: "History"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SelectScreen) loadSets() tea.Cmd {
	lister := s.lister
	return func() tea.Msg {
		return setsLoadedMsg{Sets: lister.ListSets(context.Background())}
	}
}

func (s *SelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		s.sets = msg.Sets
		s.loaded = true
		s.menu = components.NewMenu(buildItems(msg.Sets))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "r":
			s.loaded = false
			return s, s.loadSets()
		case "h":
			return s, router.Navigate(HistoryPath)
		}
		if s.loaded && len(s.sets) > 0 {
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
	}
	return s, nil
}

// HistoryPath is the navigation path of the play history screen.
const HistoryPath = "/history"

// QuizPath returns the navigation path that starts setID.
func QuizPath(setID string) string {
	return "/quiz/" + url.PathEscape(setID)
}

func buildItems(sets []catalog.SetInfo) []components.MenuItem {
	items := make([]components.MenuItem, 0, len(sets))
	for _, set := range sets {
		path := QuizPath(set.ID)
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s  %s", set.DisplayIcon(), set.Title),
			Detail: cardDetail(set),
			Action: func() tea.Cmd { return router.Navigate(path) },
		})
	}
	return items
}

func cardDetail(set catalog.SetInfo) string {
	parts := make([]string, 0, 3)
	if set.Description != "" {
		parts = append(parts, set.Description)
	}
	parts = append(parts,
		fmt.Sprintf("📋 %d questions", set.QuestionCount),
		fmt.Sprintf("🏷️ v%d", set.Version),
	)
	return strings.Join(parts, "  ·  ")
}

// listTop is the number of lines above the set list.
const listTop = 5

func (s *SelectScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title, width, "Pick a question set"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Subtitle, width, "Answer against the clock and see how you compare 🚀"))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Loading sets..."))
	case len(s.sets) == 0:
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "No question sets found."))
	default:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View(height-listTop)))
	}
	return b.String()
}
