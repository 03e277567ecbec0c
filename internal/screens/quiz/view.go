package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/mondai-quiz/mondai/internal/quiz"
	"github.com/mondai-quiz/mondai/internal/ui/components"
	"github.com/mondai-quiz/mondai/internal/ui/layout"
	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.engine.Set() == nil:
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n\nLoading questions...")
	case s.confirmQuit:
		return renderQuitConfirm(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	e := s.engine
	q := e.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	// Progress counts completed questions.
	total := e.Total()
	progress := components.NewProgressBar(
		float64(e.Index())/float64(total),
		fmt.Sprintf("%d / %d", e.Index()+1, total),
		min(width-8, 60),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, progress.View()))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), width,
		formatElapsed(e.Elapsed().Seconds()),
	))
	b.WriteString("\n\n")

	card := q.Text
	if q.Image != "" {
		card = lipgloss.NewStyle().Foreground(theme.TextDim).Render("[image: "+q.Image+"]") + "\n\n" + card
	}
	cardView := theme.Card.
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(card)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, cardView))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle(), width, "Answer: "+s.input.View()))
	b.WriteString("\n\n")

	if e.Phase() == qz.PhaseFeedback {
		if e.LastCorrect() {
			b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
		} else {
			b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite, try again"))
		}
	}
	return b.String()
}

func formatElapsed(sec float64) string {
	return fmt.Sprintf("%.1fs", sec)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Answers so far will be discarded."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "[Y] Yes, back to sets"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return layout.Centered(
		lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\nError: %s\n\nPress any key to return to the set list.", errMsg),
	)
}
