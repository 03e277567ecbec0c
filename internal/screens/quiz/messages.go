package quiz

import (
	qz "github.com/mondai-quiz/mondai/internal/quiz"
)

// setLoadedMsg is sent when the question set fetch completes.
type setLoadedMsg struct {
	Set *qz.QuestionSet
	Err error
}

// timerTickMsg drives the elapsed-time display. Ticks from an older
// generation are dropped, which ends their loop.
type timerTickMsg struct {
	gen int
}

// feedbackDoneMsg ends the verdict pause for submission seq.
type feedbackDoneMsg struct {
	seq int
}
