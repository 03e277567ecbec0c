package results

import (
	"context"

	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/quiz"
)

// Submitter delivers a result payload, retrying as it sees fit.
type Submitter interface {
	SubmitWithRetry(ctx context.Context, payload api.ResultPayload) (*api.SubmitResponse, error)
}

// Status is the submission state of a report.
type Status int

const (
	StatusSending Status = iota
	StatusSent
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSending:
		return "sending"
	case StatusSent:
		return "sent"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Report tracks one completed result through submission. The result and
// its payload never change, so a failed submission can be retried as-is.
// Begin and Complete are split from Submit so a UI can run the network
// call off its event loop and apply the outcome on it.
type Report struct {
	result  *quiz.Result
	payload api.ResultPayload
	summary Summary

	status   Status
	err      error
	stats    []api.QuestionStat
	id       string
	attempts int
}

// NewReport prepares a report for r. The report starts in StatusSending.
func NewReport(r *quiz.Result) *Report {
	return &Report{
		result:  r,
		payload: Payload(r),
		summary: Summarize(r),
		status:  StatusSending,
	}
}

func (r *Report) Result() *quiz.Result       { return r.result }
func (r *Report) Payload() api.ResultPayload { return r.payload }
func (r *Report) Summary() Summary           { return r.summary }
func (r *Report) Status() Status             { return r.status }
func (r *Report) Err() error                 { return r.err }
func (r *Report) Stats() []api.QuestionStat  { return r.stats }
func (r *Report) ResultID() string           { return r.id }
func (r *Report) Attempts() int              { return r.attempts }
func (r *Report) Rows() []Row                { return Rows(r.result.Answers, r.stats) }
func (r *Report) CanRetry() bool             { return r.status == StatusFailed }

// Begin marks a submission as in flight.
func (r *Report) Begin() {
	r.status = StatusSending
	r.err = nil
	r.attempts++
}

// Complete applies the outcome of a submission. Stats from a successful
// response replace any shown before; a response without stats keeps them.
func (r *Report) Complete(resp *api.SubmitResponse, err error) {
	if err != nil {
		r.status = StatusFailed
		r.err = err
		return
	}
	r.status = StatusSent
	r.err = nil
	if resp == nil {
		return
	}
	if resp.ID != "" {
		r.id = resp.ID
	}
	if len(resp.QuestionStats) > 0 {
		r.stats = resp.QuestionStats
	}
}

// Submit runs Begin, the submission and Complete in one call.
func (r *Report) Submit(ctx context.Context, s Submitter) error {
	r.Begin()
	resp, err := s.SubmitWithRetry(ctx, r.payload)
	r.Complete(resp, err)
	return err
}
