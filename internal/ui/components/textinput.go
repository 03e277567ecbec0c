package components

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/mondai-quiz/mondai/internal/ui/theme"
)

// Verdict is the judgement shown next to a submitted answer.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

// AnswerInput is the single-line answer field. It locks while a verdict
// is displayed and counts the wrong tries on the current question.
type AnswerInput struct {
	field   textinput.Model
	verdict Verdict
	misses  int
}

// NewAnswerInput creates a focused answer field. A limit of 0 means no
// character limit.
func NewAnswerInput(placeholder string, limit int) AnswerInput {
	f := textinput.New()
	f.Placeholder = placeholder
	f.CharLimit = limit
	f.Focus()
	return AnswerInput{field: f}
}

// Focus returns the cursor blink command.
func (a AnswerInput) Focus() tea.Cmd {
	return a.field.Focus()
}

func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.verdict != VerdictNone {
		return a, nil
	}
	var cmd tea.Cmd
	a.field, cmd = a.field.Update(msg)
	return a, cmd
}

func (a AnswerInput) View() string {
	view := a.field.View()
	switch a.verdict {
	case VerdictCorrect:
		return view + " " + theme.Correct.Render("✓")
	case VerdictIncorrect:
		view += " " + theme.Incorrect.Render("✗")
	}
	if a.misses > 0 {
		view += " " + theme.KeyDesc.Render(triesLabel(a.misses))
	}
	return view
}

func triesLabel(n int) string {
	if n == 1 {
		return "(1 wrong try)"
	}
	return fmt.Sprintf("(%d wrong tries)", n)
}

func (a AnswerInput) Value() string { return a.field.Value() }

// Verdict returns the judgement on display.
func (a AnswerInput) Verdict() Verdict { return a.verdict }

// Misses is the number of wrong tries on the current question.
func (a AnswerInput) Misses() int { return a.misses }

// Judge locks the field and shows the verdict.
func (a *AnswerInput) Judge(correct bool) {
	if correct {
		a.verdict = VerdictCorrect
		return
	}
	a.verdict = VerdictIncorrect
	a.misses++
}

// Retry clears the text for another try at the same question.
func (a *AnswerInput) Retry() {
	a.field.Reset()
	a.verdict = VerdictNone
}

// Next clears the field for a new question.
func (a *AnswerInput) Next() {
	a.Retry()
	a.misses = 0
}
