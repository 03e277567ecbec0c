package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/devserver"
	"github.com/mondai-quiz/mondai/internal/store"
)

// execute runs the root command with an isolated config dir and database.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"MONDAI_API_URL", "MONDAI_SETS", "MONDAI_DB", "MONDAI_LOG_LEVEL", "MONDAI_LOG_FILE", "MONDAI_TIMEZONE", "MONDAI_RETRY_ATTEMPTS"} {
		t.Setenv(k, "")
	}

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", dbPath, "--sets", "builtin", "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func tempDB(t *testing.T) string {
	return filepath.Join(t.TempDir(), "mondai.db")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, tempDB(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "mondai (devel)\n", out)
}

func TestSetsCmd_ListsBuiltinSets(t *testing.T) {
	out, err := execute(t, tempDB(t), "sets")
	require.NoError(t, err)
	assert.Contains(t, out, "world-capitals")
	assert.Contains(t, out, "Element Symbols")
	assert.Contains(t, out, "quick-math")
}

func TestSetsShowCmd(t *testing.T) {
	out, err := execute(t, tempDB(t), "sets", "show", "world-capitals")
	require.NoError(t, err)
	assert.Contains(t, out, "World Capitals (v1, ")
	assert.Contains(t, out, "What is the capital of Japan?")
	assert.NotContains(t, out, "Tokyo")

	out, err = execute(t, tempDB(t), "sets", "show", "world-capitals", "--answers")
	require.NoError(t, err)
	assert.Contains(t, out, "Tokyo")
}

func TestSetsShowCmd_UnknownSet(t *testing.T) {
	_, err := execute(t, tempDB(t), "sets", "show", "no-such-set")
	assert.Error(t, err)
}

func TestPlayCmd_RejectsBadSetID(t *testing.T) {
	_, err := execute(t, tempDB(t), "play", "../etc")
	assert.Error(t, err)
}

func TestResetCmd(t *testing.T) {
	dbPath := tempDB(t)
	ctx := context.Background()

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	firstID, err := st.ClientID(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, dbPath, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Client id reset.")

	st, err = store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	secondID, err := st.ClientID(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)
}

func TestStatsAndResultCmds(t *testing.T) {
	mem := devserver.NewMemoryStore()
	require.NoError(t, mem.Save(context.Background(), api.StoredResult{
		ID: "r-1",
		ResultPayload: api.ResultPayload{
			ClientID:   "c-1",
			SetID:      "world-capitals",
			SetVersion: 1,
			StartedAt:  "2026-01-02T03:04:05.000Z",
			FinishedAt: "2026-01-02T03:04:09.000Z",
			Answers: []api.AnswerPayload{
				{QuestionID: "wc-japan", Entered: "tokyo", IsCorrect: true, ElapsedMs: 1500},
				{QuestionID: "wc-canada", Entered: "ottawa", IsCorrect: true, ElapsedMs: 2500},
			},
		},
	}))
	srv := httptest.NewServer(devserver.NewHandler(mem).Routes())
	defer srv.Close()

	out, err := execute(t, tempDB(t), "--api", srv.URL, "stats", "world-capitals")
	require.NoError(t, err)
	assert.Contains(t, out, "world-capitals v1: 1 submissions")
	assert.Contains(t, out, "wc-japan")
	assert.Contains(t, out, "1.5s")

	out, err = execute(t, tempDB(t), "--api", srv.URL, "stats", "world-capitals", "--version", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "No answers recorded yet.")

	out, err = execute(t, tempDB(t), "--api", srv.URL, "result", "r-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Result r-1: world-capitals v1")
	assert.Contains(t, out, "ottawa")
	assert.Contains(t, out, "Total time 4.0s")

	_, err = execute(t, tempDB(t), "--api", srv.URL, "result", "missing")
	assert.Error(t, err)
}
