package results

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Play is one finished quiz run.
type Play struct {
	SetID      string
	SetVersion int
	Correct    int
	Total      int
	ElapsedMs  int64
	// ResultID is the server's id once the submission succeeded.
	ResultID   string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Recorder remembers finished runs.
type Recorder interface {
	RecordPlay(ctx context.Context, p Play) error
}

// Play is the history entry for the report, including the server's
// result id once one is known.
func (r *Report) Play() Play {
	return Play{
		SetID:      r.result.SetID,
		SetVersion: r.result.SetVersion,
		Correct:    r.summary.CorrectCount,
		Total:      r.summary.TotalQuestions,
		ElapsedMs:  r.summary.TotalElapsedMs,
		ResultID:   r.id,
		StartedAt:  r.result.StartedAt,
		FinishedAt: r.result.FinishedAt,
	}
}

// History keeps the runs finished during this process. Nothing is
// written to disk.
type History struct {
	mu    sync.Mutex
	plays []Play
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// RecordPlay adds p. A run is identified by its set and start time, so
// recording the same run again only fills in a result id that was missing.
func (h *History) RecordPlay(_ context.Context, p Play) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.plays {
		existing := &h.plays[i]
		if existing.SetID == p.SetID && existing.StartedAt.Equal(p.StartedAt) {
			if p.ResultID != "" {
				existing.ResultID = p.ResultID
			}
			return nil
		}
	}
	h.plays = append(h.plays, p)
	return nil
}

// RecentPlays returns up to limit plays, newest first. A limit of 0 or
// less returns every play.
func (h *History) RecentPlays(_ context.Context, limit int) ([]Play, error) {
	h.mu.Lock()
	out := slices.Clone(h.plays)
	h.mu.Unlock()

	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b Play) int {
		return b.FinishedAt.Compare(a.FinishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
