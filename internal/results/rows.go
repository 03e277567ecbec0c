package results

import (
	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/quiz"
)

// scaleHeadroom stretches the shared bar scale past the longer of the two
// times when population data exists.
const scaleHeadroom = 1.3

// Row is one per-question comparison line on the result screen.
type Row struct {
	Number     int // 1-based
	QuestionID string
	Correct    bool
	UserMs     int64

	// HasStat is set when the service returned a stat for this question.
	HasStat bool
	AvgMs   float64
	Samples int

	// MaxMs is the shared scale for both bars.
	MaxMs    float64
	UserFrac float64
	AvgFrac  float64
}

// Rows builds one comparison row per answer. Stats are matched by question
// id; answers without a stat get a single bar scaled to the user's own time.
func Rows(answers []quiz.Answer, stats []api.QuestionStat) []Row {
	byID := make(map[string]api.QuestionStat, len(stats))
	for _, s := range stats {
		byID[s.QuestionID] = s
	}

	rows := make([]Row, 0, len(answers))
	for i, a := range answers {
		row := Row{
			Number:     i + 1,
			QuestionID: a.QuestionID,
			Correct:    a.IsCorrect,
			UserMs:     a.ElapsedMs,
		}
		stat, ok := byID[a.QuestionID]
		if ok {
			row.HasStat = true
			row.AvgMs = stat.AvgElapsedMs
			row.Samples = stat.Samples
		}
		user := float64(a.ElapsedMs)
		row.MaxMs = user
		if ok && stat.AvgElapsedMs > 0 {
			row.MaxMs = max(user, stat.AvgElapsedMs) * scaleHeadroom
		}
		if row.MaxMs > 0 {
			row.UserFrac = user / row.MaxMs
			if ok && stat.AvgElapsedMs > 0 {
				row.AvgFrac = stat.AvgElapsedMs / row.MaxMs
			}
		}
		rows = append(rows, row)
	}
	return rows
}
