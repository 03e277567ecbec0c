package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional
// trailing label such as "3 / 10".
type ProgressBar struct {
	Percent float64
	Label   string
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(percent float64, label string, width int) ProgressBar {
	return ProgressBar{
		Percent: percent,
		Label:   label,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Label)
	}

	barWidth := max(p.Width-lipgloss.Width(label), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		label
}
