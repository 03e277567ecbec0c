package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

const (
	ringFilledGlyph = "██"
	ringEmptyGlyph  = "░░"
)

// ScoreRing draws a circular gauge filled clockwise from twelve o'clock,
// with the score in the middle. Each cell is two columns wide so the ring
// looks round in a terminal.
type ScoreRing struct {
	Fill    float64 // 0..1
	Percent int
	Radius  int
}

// NewScoreRing creates a ring for a score percentage and fill fraction.
func NewScoreRing(percent int, fill float64) ScoreRing {
	return ScoreRing{Fill: fill, Percent: percent, Radius: 4}
}

// Cells returns the number of filled and total ring cells.
func (r ScoreRing) Cells() (filled, total int) {
	rad := r.radius()
	for y := -rad; y <= rad; y++ {
		for x := -rad; x <= rad; x++ {
			if on, frac := ringCell(x, y, rad); on {
				total++
				if frac < r.Fill {
					filled++
				}
			}
		}
	}
	return filled, total
}

func (r ScoreRing) radius() int {
	if r.Radius < 2 {
		return 2
	}
	return r.Radius
}

// ringCell reports whether (x, y) lies on the ring and its clockwise
// position as a fraction of a full turn, starting at the top.
func ringCell(x, y, rad int) (bool, float64) {
	d := math.Hypot(float64(x), float64(y))
	if math.Abs(d-float64(rad)) >= 0.5 {
		return false, 0
	}
	angle := math.Atan2(float64(x), float64(-y))
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return true, angle / (2 * math.Pi)
}

// View renders the ring.
func (r ScoreRing) View() string {
	rad := r.radius()
	filledStyle := lipgloss.NewStyle().Foreground(theme.Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(theme.Border)
	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%d%%", r.Percent))

	var b strings.Builder
	for y := -rad; y <= rad; y++ {
		if y == 0 {
			// The middle row only has ring cells at both ends.
			inner := (2*rad - 1) * 2
			b.WriteString(r.cell(-rad, 0, rad, filledStyle, emptyStyle))
			b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, label))
			b.WriteString(r.cell(rad, 0, rad, filledStyle, emptyStyle))
			b.WriteString("\n")
			continue
		}
		for x := -rad; x <= rad; x++ {
			b.WriteString(r.cell(x, y, rad, filledStyle, emptyStyle))
		}
		if y < rad {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r ScoreRing) cell(x, y, rad int, filled, empty lipgloss.Style) string {
	on, frac := ringCell(x, y, rad)
	switch {
	case !on:
		return "  "
	case frac < r.Fill:
		return filled.Render(ringFilledGlyph)
	default:
		return empty.Render(ringEmptyGlyph)
	}
}
