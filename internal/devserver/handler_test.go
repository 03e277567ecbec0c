package devserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/catalog"
)

var fixedNow = time.Date(2025, 4, 1, 9, 2, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	n := 0
	h := NewHandler(NewMemoryStore(),
		WithSets(catalog.Builtin()),
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string {
			n++
			return "r-" + string(rune('0'+n))
		}),
	)
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func payload(setID string, elapsed ...int64) api.ResultPayload {
	p := api.ResultPayload{
		ClientID:   "c0ffee00-0000-4000-8000-000000000001",
		SetID:      setID,
		SetVersion: 1,
		StartedAt:  "2025-04-01T09:00:00.000Z",
		FinishedAt: "2025-04-01T09:01:00.000Z",
		Meta:       api.MetaPayload{Timezone: "UTC"},
	}
	for i, ms := range elapsed {
		p.Answers = append(p.Answers, api.AnswerPayload{
			QuestionID: []string{"q1", "q2"}[i],
			Entered:    "a",
			IsCorrect:  true,
			ElapsedMs:  ms,
		})
	}
	return p
}

func TestHandler_SubmitThroughClient(t *testing.T) {
	srv := newTestServer(t)
	c := api.NewClient(srv.URL)
	ctx := context.Background()

	first, err := c.SubmitWithRetry(ctx, payload("world-capitals", 1000, 4000))
	require.NoError(t, err)
	assert.Equal(t, "r-1", first.ID)
	require.Len(t, first.QuestionStats, 2)
	assert.Equal(t, api.QuestionStat{QuestionID: "q1", AvgElapsedMs: 1000, Samples: 1}, first.QuestionStats[0])

	second, err := c.Submit(ctx, payload("world-capitals", 3000, 2000))
	require.NoError(t, err)
	assert.Equal(t, api.QuestionStat{QuestionID: "q1", AvgElapsedMs: 2000, Samples: 2}, second.QuestionStats[0])
	assert.Equal(t, api.QuestionStat{QuestionID: "q2", AvgElapsedMs: 3000, Samples: 2}, second.QuestionStats[1])

	stored, err := c.FetchResult(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "world-capitals", stored.SetID)
	assert.Equal(t, "2025-04-01T09:02:00.000Z", stored.ReceivedAt)
	assert.Len(t, stored.Answers, 2)

	stats, err := c.FetchStats(ctx, "world-capitals", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Submissions)

	empty, err := c.FetchStats(ctx, "world-capitals", 9)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Submissions)
}

func TestHandler_FetchMissingResult(t *testing.T) {
	srv := newTestServer(t)
	_, err := api.NewClient(srv.URL).FetchResult(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, api.IsHTTPStatus(err, http.StatusNotFound))
	assert.EqualError(t, err, "result not found")
}

func TestHandler_SubmitValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", `{`, "invalid request body"},
		{"missing client", `{"setId":"s","setVersion":1,"answers":[{"questionId":"q1"}]}`, "clientId is required"},
		{"missing set", `{"clientId":"c","setVersion":1,"answers":[{"questionId":"q1"}]}`, "setId is required"},
		{"zero version", `{"clientId":"c","setId":"s","answers":[{"questionId":"q1"}]}`, "setVersion must be at least 1"},
		{"no answers", `{"clientId":"c","setId":"s","setVersion":1,"answers":[]}`, "answers must not be empty"},
		{"negative time", `{"clientId":"c","setId":"s","setVersion":1,"answers":[{"questionId":"q1","elapsedMs":-5}]}`, "answers[0].elapsedMs must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/results", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestHandler_StatsRequiresVersion(t *testing.T) {
	srv := newTestServer(t)
	for _, q := range []string{"", "?version=abc", "?version=0"} {
		resp, err := http.Get(srv.URL + "/api/sets/world-capitals/stats" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %q", q)
	}
}

func TestHandler_ServesBuiltinSets(t *testing.T) {
	srv := newTestServer(t)

	src := catalog.NewHTTPSource(srv.URL+"/sets", srv.Client())
	cat := catalog.New(src)
	sets := cat.ListSets(context.Background())
	require.NotEmpty(t, sets)

	set, err := cat.LoadSet(context.Background(), sets[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, set.Questions)

	resp, err := http.Get(srv.URL + "/sets/does-not-exist.json")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Healthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestServer_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewServer(ln.Addr().String(), NewHandler(NewMemoryStore()), log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
