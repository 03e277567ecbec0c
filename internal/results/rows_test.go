package results

import (
	"math"
	"testing"

	"github.com/mondai-quiz/mondai/internal/api"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRows_WithoutStats(t *testing.T) {
	rows := Rows(answers(1200, 300), nil)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.HasStat {
			t.Errorf("row %d has stat", r.Number)
		}
		if r.MaxMs != float64(r.UserMs) {
			t.Errorf("row %d MaxMs = %v, want %d", r.Number, r.MaxMs, r.UserMs)
		}
		if r.UserFrac != 1 {
			t.Errorf("row %d UserFrac = %v, want 1", r.Number, r.UserFrac)
		}
	}
	if rows[0].Number != 1 || rows[1].Number != 2 {
		t.Errorf("numbers = %d, %d", rows[0].Number, rows[1].Number)
	}
}

func TestRows_WithStats(t *testing.T) {
	stats := []api.QuestionStat{
		{QuestionID: "q1", AvgElapsedMs: 2000, Samples: 10},
		{QuestionID: "q2", AvgElapsedMs: 500, Samples: 4},
	}
	rows := Rows(answers(1000, 1000, 700), stats)

	// q1: user 1000, avg 2000 → scale 2600
	r := rows[0]
	if !r.HasStat || r.Samples != 10 {
		t.Fatalf("row 1 = %+v", r)
	}
	if !approx(r.MaxMs, 2600) {
		t.Errorf("row 1 MaxMs = %v, want 2600", r.MaxMs)
	}
	if !approx(r.UserFrac, 1000.0/2600) || !approx(r.AvgFrac, 2000.0/2600) {
		t.Errorf("row 1 fracs = %v, %v", r.UserFrac, r.AvgFrac)
	}

	// q2: user 1000 dominates → scale 1300
	if !approx(rows[1].MaxMs, 1300) {
		t.Errorf("row 2 MaxMs = %v, want 1300", rows[1].MaxMs)
	}

	// q3: no stat
	if rows[2].HasStat || rows[2].UserFrac != 1 || rows[2].AvgFrac != 0 {
		t.Errorf("row 3 = %+v", rows[2])
	}
}

func TestRows_ZeroAverageUsesUserScale(t *testing.T) {
	stats := []api.QuestionStat{{QuestionID: "q1", AvgElapsedMs: 0, Samples: 1}}
	rows := Rows(answers(800), stats)
	r := rows[0]
	if !r.HasStat {
		t.Fatal("expected stat to be attached")
	}
	if r.MaxMs != 800 || r.UserFrac != 1 || r.AvgFrac != 0 {
		t.Errorf("row = %+v", r)
	}
}
