package result

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mondai-quiz/mondai/internal/results"
	"github.com/mondai-quiz/mondai/internal/ui/components"
	"github.com/mondai-quiz/mondai/internal/ui/layout"
	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

const barWidth = 24

func (s *ResultScreen) View(width, height int) string {
	if s.report == nil {
		return renderNoResult(width)
	}

	rep := s.report
	sum := rep.Summary()

	var top strings.Builder
	top.WriteString(layout.Centered(theme.Title, width, "Quiz complete!"))
	top.WriteString("\n\n")
	ring := components.NewScoreRing(sum.ScorePercent, results.RingFill(sum))
	top.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, ring.View()))
	top.WriteString("\n\n")
	top.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), width,
		fmt.Sprintf("Correct %d / %d    Total time %s",
			sum.CorrectCount, sum.TotalQuestions, results.FormatMs(float64(sum.TotalElapsedMs)))))
	top.WriteString("\n\n")

	var bottom strings.Builder
	bottom.WriteString("\n")
	bottom.WriteString(layout.Centered(lipgloss.NewStyle(), width, renderStatus(rep)))
	bottom.WriteString("\n\n")
	bottom.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ButtonRow(actionLabels, s.action)))

	// Rows get whatever height is left.
	avail := height - lipgloss.Height(top.String()) - lipgloss.Height(bottom.String())
	rows := renderRows(rep.Rows(), s.rowOffset, avail)

	return top.String() + lipgloss.PlaceHorizontal(width, lipgloss.Center, rows) + bottom.String()
}

func renderStatus(rep *results.Report) string {
	switch rep.Status() {
	case results.StatusSent:
		return theme.Correct.Render("✅ Result sent!")
	case results.StatusFailed:
		return theme.Incorrect.Render("❌ Failed to send: "+rep.Err().Error()) +
			"  " + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("[R] Retry")
	default:
		label := "⏳ Sending result..."
		if rep.Attempts() > 1 {
			label = "⏳ Resending..."
		}
		return theme.Pending.Render(label)
	}
}

// rowHeight is the number of lines one comparison row takes.
const rowHeight = 3

func renderRows(rows []results.Row, offset, avail int) string {
	if len(rows) == 0 {
		return ""
	}
	visible := max(avail/rowHeight, 1)
	offset = min(offset, max(len(rows)-visible, 0))
	end := min(offset+visible, len(rows))

	var b strings.Builder
	for i, r := range rows[offset:end] {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRow(r))
	}
	return b.String()
}

func renderRow(r results.Row) string {
	mark := theme.Correct.Render("✓")
	if !r.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Q%d: %s", r.Number, r.QuestionID))

	you := components.TimeBar{Fraction: r.UserFrac, Width: barWidth, Style: theme.BarYou}
	yourLine := fmt.Sprintf("   ⏱ You  %s %s", you.View(), results.FormatMs(float64(r.UserMs)))

	avgLine := ""
	if r.HasStat {
		avg := components.TimeBar{Fraction: r.AvgFrac, Width: barWidth, Style: theme.BarAvg}
		avgLine = fmt.Sprintf("   📊 Avg  %s %s (%d players)", avg.View(), results.FormatMs(r.AvgMs), r.Samples)
	}

	return mark + " " + title + "\n" + yourLine + "\n" + avgLine
}

func renderNoResult(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(theme.Title, width, "No result yet"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Subtitle, width, "Take a quiz first."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "Press Enter to choose a set"))
	return b.String()
}
