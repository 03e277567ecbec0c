package results

import (
	"fmt"
	"math"
	"time"

	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/quiz"
)

// Summary is the headline score of a completed session.
type Summary struct {
	CorrectCount   int
	TotalQuestions int
	ScorePercent   int
	TotalElapsedMs int64
}

// Summarize scores a result. Only correct answers are ever recorded, so
// CorrectCount equals the number of answers.
func Summarize(r *quiz.Result) Summary {
	var s Summary
	if r == nil {
		return s
	}
	for _, a := range r.Answers {
		if a.IsCorrect {
			s.CorrectCount++
		}
		s.TotalElapsedMs += a.ElapsedMs
	}
	s.TotalQuestions = len(r.Answers)
	s.ScorePercent = scorePercent(s.CorrectCount, s.TotalQuestions)
	return s
}

func scorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// RingFill returns the fraction of the score ring to fill, in [0, 1].
func RingFill(s Summary) float64 {
	f := float64(s.ScorePercent) / 100
	return math.Max(0, math.Min(1, f))
}

// FormatMs renders a duration in milliseconds: "850ms" below one second,
// otherwise seconds with one decimal ("2.4s").
func FormatMs(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", int64(math.Round(ms)))
	}
	return fmt.Sprintf("%.1fs", ms/1000)
}

// timestampLayout is UTC ISO-8601 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the wire timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Payload converts a completed result into the submission body.
func Payload(r *quiz.Result) api.ResultPayload {
	answers := make([]api.AnswerPayload, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, api.AnswerPayload{
			QuestionID: a.QuestionID,
			Entered:    a.Entered,
			IsCorrect:  a.IsCorrect,
			ElapsedMs:  a.ElapsedMs,
		})
	}
	return api.ResultPayload{
		ClientID:   r.ClientID,
		SetID:      r.SetID,
		SetVersion: r.SetVersion,
		StartedAt:  FormatTimestamp(r.StartedAt),
		FinishedAt: FormatTimestamp(r.FinishedAt),
		Answers:    answers,
		Meta:       api.MetaPayload{Timezone: r.Meta.Timezone},
	}
}
