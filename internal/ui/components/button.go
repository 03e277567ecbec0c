package components

import (
	"charm.land/lipgloss/v2"

	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

// Button is a styled action label.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{
		Label:  label,
		Active: active,
	}
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow renders buttons side by side with the selected one active.
func ButtonRow(labels []string, selected int) string {
	parts := make([]string, 0, 2*len(labels))
	for i, l := range labels {
		if i > 0 {
			parts = append(parts, "   ")
		}
		parts = append(parts, NewButton(l, i == selected).View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
