package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

// Smallest window the quiz screens are laid out for.
const (
	MinWidth  = 60
	MinHeight = 20
)

// compactWidth is the width below which the header drops its status.
const compactWidth = 90

// barChrome is the horizontal space taken by a bar's border and padding.
const barChrome = 4

const hintSep = "   "

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return theme.KeyName.Render(h.Key) + " " + theme.KeyDesc.Render(h.Description)
}

// IsTooSmall reports whether the window is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the window.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Window too small\n\nmondai needs %d×%d,\nthis one is %d×%d.",
		MinWidth, MinHeight, width, height)
	body := lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// RenderHeader draws the brand on the left, the screen title centered and
// status on the right. Compact windows omit the status.
func RenderHeader(title, status string, width int) string {
	if width < compactWidth {
		status = ""
	}
	brand := theme.Brand.Render("mondai")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := theme.KeyDesc.Render(status)

	inner := max(width-barChrome, 0)
	bw, tw, sw := lipgloss.Width(brand), lipgloss.Width(center), lipgloss.Width(right)
	side := (inner - tw) / 2
	row := brand + gap(side-bw) + center + gap(inner-side-tw-sw) + right

	return theme.Bar.Width(width).Padding(0, 1).Render(row)
}

// RenderFooter draws the key hints that fit on one line, in order. The
// last hint is always shown.
func RenderFooter(hints []KeyHint, width int) string {
	parts := fitHints(hints, max(width-barChrome, 0))
	return theme.Bar.Width(width).Padding(0, 1).Render(strings.Join(parts, hintSep))
}

func fitHints(hints []KeyHint, avail int) []string {
	if len(hints) == 0 {
		return nil
	}
	last := hints[len(hints)-1].render()
	used := lipgloss.Width(last)

	parts := make([]string, 0, len(hints))
	for _, h := range hints[:len(hints)-1] {
		s := h.render()
		w := lipgloss.Width(s) + len(hintSep)
		if used+w > avail {
			break
		}
		parts = append(parts, s)
		used += w
	}
	return append(parts, last)
}

func gap(n int) string {
	return strings.Repeat(" ", max(n, 1))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the window.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Centered renders s centered across width in the given style.
func Centered(style lipgloss.Style, width int, s string) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}
