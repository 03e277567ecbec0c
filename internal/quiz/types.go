package quiz

import (
	"context"
	"time"
)

// MaxElapsedMs caps the recorded time for a single question (30 minutes).
const MaxElapsedMs = 1_800_000

// MinElapsedMs is the smallest recorded time for a single question.
const MinElapsedMs = 1

// QuestionSet is a versioned, ordered collection of questions.
type QuestionSet struct {
	ID          string     `json:"id"`
	Version     int        `json:"version"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Questions   []Question `json:"questions"`
}

// Question is a single prompt with its canonical answer.
type Question struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Image  string `json:"image,omitempty"`
	Answer string `json:"answer"`
}

// Answer is recorded once per question, when the learner gets it right.
// IsCorrect is therefore always true; scoring counts questions eventually
// answered correctly, not first-attempt successes.
type Answer struct {
	QuestionID string `json:"questionId"`
	Entered    string `json:"entered"`
	IsCorrect  bool   `json:"isCorrect"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// Meta carries client context sent along with a result.
type Meta struct {
	Timezone string `json:"timezone"`
}

// Result is a completed session, ready to be scored and submitted.
type Result struct {
	ClientID   string
	SetID      string
	SetVersion int
	StartedAt  time.Time
	FinishedAt time.Time
	Answers    []Answer
	Meta       Meta
}

// Loader fetches a question set by id.
type Loader interface {
	LoadSet(ctx context.Context, setID string) (*QuestionSet, error)
}

// Clock abstracts time so timing can be tested without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now. Values carry a monotonic
// reading, so differences are immune to wall-clock jumps.
func SystemClock() Clock { return systemClock{} }
