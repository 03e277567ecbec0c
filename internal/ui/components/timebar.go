package components

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
)

// TimeBar is a thin horizontal bar showing a fraction of a shared scale.
type TimeBar struct {
	Fraction float64
	Width    int
	Style    lipgloss.Style
}

// Filled returns the number of solid cells the bar draws.
func (t TimeBar) Filled() int {
	w := max(t.Width, 1)
	return min(max(int(math.Round(t.Fraction*float64(w))), 0), w)
}

// View renders the bar: solid blocks for the filled part, a dotted track
// for the rest.
func (t TimeBar) View() string {
	w := max(t.Width, 1)
	n := t.Filled()
	return t.Style.Render(strings.Repeat("█", n)) +
		lipgloss.NewStyle().Faint(true).Render(strings.Repeat("·", w-n))
}
