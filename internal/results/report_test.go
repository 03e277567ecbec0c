package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/quiz"
)

type mockSubmitter struct {
	resp     *api.SubmitResponse
	err      error
	payloads []api.ResultPayload
}

func (m *mockSubmitter) SubmitWithRetry(_ context.Context, p api.ResultPayload) (*api.SubmitResponse, error) {
	m.payloads = append(m.payloads, p)
	return m.resp, m.err
}

func TestReport_SubmitSuccessAttachesStats(t *testing.T) {
	rep := NewReport(&quiz.Result{SetID: "set-001", Answers: answers(1000)})
	if rep.Status() != StatusSending {
		t.Fatalf("initial status = %v", rep.Status())
	}

	m := &mockSubmitter{resp: &api.SubmitResponse{
		ID:            "r-9",
		QuestionStats: []api.QuestionStat{{QuestionID: "q1", AvgElapsedMs: 1500, Samples: 3}},
	}}
	if err := rep.Submit(context.Background(), m); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rep.Status() != StatusSent {
		t.Errorf("status = %v, want sent", rep.Status())
	}
	if rep.ResultID() != "r-9" {
		t.Errorf("ResultID = %q", rep.ResultID())
	}
	rows := rep.Rows()
	if !rows[0].HasStat || rows[0].AvgMs != 1500 {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestReport_FailureThenRetrySendsSamePayload(t *testing.T) {
	rep := NewReport(&quiz.Result{SetID: "set-001", Answers: answers(1000, 2000)})
	m := &mockSubmitter{err: &api.HTTPError{Status: 500, Message: "boom"}}

	if err := rep.Submit(context.Background(), m); err == nil {
		t.Fatal("expected error")
	}
	if rep.Status() != StatusFailed || !rep.CanRetry() {
		t.Fatalf("status = %v, CanRetry = %v", rep.Status(), rep.CanRetry())
	}
	var he *api.HTTPError
	if !errors.As(rep.Err(), &he) || he.Status != 500 {
		t.Errorf("Err = %v", rep.Err())
	}
	if got := rep.Summary().CorrectCount; got != 2 {
		t.Errorf("result lost after failure: CorrectCount = %d", got)
	}

	m.err = nil
	m.resp = &api.SubmitResponse{}
	if err := rep.Submit(context.Background(), m); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if rep.Status() != StatusSent || rep.Err() != nil {
		t.Errorf("after retry status = %v err = %v", rep.Status(), rep.Err())
	}
	if rep.Attempts() != 2 {
		t.Errorf("Attempts = %d, want 2", rep.Attempts())
	}
	if len(m.payloads) != 2 {
		t.Fatalf("payloads = %d", len(m.payloads))
	}
	if m.payloads[0].StartedAt != m.payloads[1].StartedAt || len(m.payloads[1].Answers) != 2 {
		t.Error("retry did not resend the same payload")
	}
}

func TestReport_CompleteWithoutStatsKeepsRows(t *testing.T) {
	rep := NewReport(&quiz.Result{Answers: answers(1000)})
	rep.Begin()
	rep.Complete(&api.SubmitResponse{QuestionStats: []api.QuestionStat{{QuestionID: "q1", AvgElapsedMs: 900}}}, nil)
	rep.Begin()
	rep.Complete(&api.SubmitResponse{}, nil)

	if len(rep.Stats()) != 1 {
		t.Errorf("stats dropped: %+v", rep.Stats())
	}
}

func TestReport_PlayCarriesResultID(t *testing.T) {
	started := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	rep := NewReport(&quiz.Result{
		SetID:      "set-001",
		SetVersion: 2,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Answers:    answers(1000, 2000),
	})

	p := rep.Play()
	if p.ResultID != "" {
		t.Errorf("ResultID before submit = %q", p.ResultID)
	}
	if p.SetVersion != 2 || p.Correct != 2 || p.Total != 2 || p.ElapsedMs != 3000 {
		t.Errorf("unexpected play: %+v", p)
	}
	if !p.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v", p.StartedAt)
	}

	rep.Begin()
	rep.Complete(&api.SubmitResponse{ID: "r-5"}, nil)
	if got := rep.Play().ResultID; got != "r-5" {
		t.Errorf("ResultID after submit = %q, want r-5", got)
	}
}
