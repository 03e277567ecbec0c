// Package devserver is a local stand-in for the result aggregation
// service. It accepts submitted results, keeps per-question timing
// averages for each set version, and serves the built-in question sets.
package devserver

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mondai-quiz/mondai/internal/api"
)

// ErrNotFound is returned when a stored result does not exist.
var ErrNotFound = errors.New("not found")

// Store persists results and their aggregates.
type Store interface {
	// Save stores res and folds its answers into the set version's stats.
	Save(ctx context.Context, res api.StoredResult) error

	// Get returns a stored result or ErrNotFound.
	Get(ctx context.Context, id string) (*api.StoredResult, error)

	// Stats returns the aggregate for one set version. An unknown set
	// version yields zero submissions, not an error.
	Stats(ctx context.Context, setID string, version int) (*api.SetStats, error)
}

type statKey struct {
	setID   string
	version int
}

type timing struct {
	sum     float64
	samples int
}

type aggregate struct {
	submissions int
	questions   map[string]*timing
}

func (a *aggregate) add(answers []api.AnswerPayload) {
	a.submissions++
	for _, ans := range answers {
		t, ok := a.questions[ans.QuestionID]
		if !ok {
			t = &timing{}
			a.questions[ans.QuestionID] = t
		}
		t.sum += float64(ans.ElapsedMs)
		t.samples++
	}
}

// questionStats returns averages sorted by question id.
func questionStats(questions map[string]*timing) []api.QuestionStat {
	out := make([]api.QuestionStat, 0, len(questions))
	for id, t := range questions {
		if t.samples == 0 {
			continue
		}
		out = append(out, api.QuestionStat{
			QuestionID:   id,
			AvgElapsedMs: t.sum / float64(t.samples),
			Samples:      t.samples,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]api.StoredResult
	stats   map[statKey]*aggregate
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results: make(map[string]api.StoredResult),
		stats:   make(map[statKey]*aggregate),
	}
}

func (s *MemoryStore) Save(_ context.Context, res api.StoredResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results[res.ID] = res
	key := statKey{res.SetID, res.SetVersion}
	agg, ok := s.stats[key]
	if !ok {
		agg = &aggregate{questions: make(map[string]*timing)}
		s.stats[key] = agg
	}
	agg.add(res.Answers)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*api.StoredResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (s *MemoryStore) Stats(_ context.Context, setID string, version int) (*api.SetStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &api.SetStats{SetID: setID, Version: version, QuestionStats: []api.QuestionStat{}}
	agg, ok := s.stats[statKey{setID, version}]
	if !ok {
		return out, nil
	}
	out.Submissions = agg.submissions
	out.QuestionStats = questionStats(agg.questions)
	return out, nil
}
