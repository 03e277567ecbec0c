package history

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mondai-quiz/mondai/internal/results"
	"github.com/mondai-quiz/mondai/internal/router"
	"github.com/mondai-quiz/mondai/internal/screen"
	"github.com/mondai-quiz/mondai/internal/ui/layout"
	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

// pageSize bounds how many plays are loaded.
const pageSize = 50

// Lister returns locally recorded plays, newest first.
type Lister interface {
	RecentPlays(ctx context.Context, limit int) ([]results.Play, error)
}

type historyLoadedMsg struct {
	Plays []results.Play
	Err   error
}

// HistoryScreen displays quizzes played on this machine.
type HistoryScreen struct {
	lister   Lister
	plays    []results.Play
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(lister Lister) *HistoryScreen {
	return &HistoryScreen{
		lister:   lister,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	lister := s.lister
	return func() tea.Msg {
		plays, err := lister.RecentPlays(context.Background(), pageSize)
		return historyLoadedMsg{Plays: plays, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	if len(s.plays) == 0 {
		return hints
	}
	return append([]layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "P", Description: "Play again"},
		{Key: "↑↓", Description: "Navigate"},
	}, hints...)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.plays = msg.Plays
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Navigate("/select")
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.plays)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "p":
			if s.selected < len(s.plays) {
				return s, router.Navigate("/quiz/" + url.PathEscape(s.plays[s.selected].SetID))
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.errMsg != "" {
		return "\n\n" + layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "Error: "+s.errMsg)
	}
	if !s.loaded {
		return "\n\n" + layout.Centered(dim, width, "Loading history...")
	}
	if len(s.plays) == 0 {
		return "\n\n" + layout.Centered(dim.Italic(true), width, "No quizzes played yet. Pick a set to start!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, p := range s.plays {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Centered(style, width, prefix+summaryLine(p)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, line := range detailLines(p) {
				b.WriteString(layout.Centered(dim, width, line))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func summaryLine(p results.Play) string {
	return fmt.Sprintf("%s  %s v%d  %d/%d correct  %s",
		p.FinishedAt.Local().Format("Jan 02 15:04"),
		p.SetID, p.SetVersion, p.Correct, p.Total,
		results.FormatMs(float64(p.ElapsedMs)))
}

func detailLines(p results.Play) []string {
	lines := []string{
		"    Started  " + p.StartedAt.Local().Format(time.DateTime),
		"    Finished " + p.FinishedAt.Local().Format(time.DateTime),
	}
	if p.ResultID != "" {
		lines = append(lines, "    Result   "+p.ResultID)
	} else {
		lines = append(lines, "    Result   not submitted")
	}
	return lines
}
