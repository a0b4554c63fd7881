package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels/formats"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Levels == nil {
		lvls, err := levels.Embedded().LoadAll()
		require.NoError(t, err)
		opts.Levels = lvls
	}
	if opts.Config == (config.Config{}) {
		opts.Config = config.DefaultConfig()
	}
	ts := httptest.NewServer(New(opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createSession(t *testing.T, ts *httptest.Server, req createRequest) sessionView {
	t.Helper()
	var v sessionView
	require.Equal(t, http.StatusCreated, do(t, ts, http.MethodPost, "/v1/sessions", req, &v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})

	var body map[string]any
	assert.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/healthz", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListLevels(t *testing.T) {
	ts := newTestServer(t, Options{})

	var lvls []levelView
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/v1/levels", nil, &lvls))
	require.NotEmpty(t, lvls)
	assert.Equal(t, "first-steps", lvls[0].ID)
	assert.NotEmpty(t, lvls[0].Goals)
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t, Options{})

	v := createSession(t, ts, createRequest{LevelID: "first-steps", Seed: 3})
	assert.Equal(t, "first-steps", v.Level)
	assert.Equal(t, "match3", v.Mode)
	require.Len(t, v.Rows, v.Height)
	for _, row := range v.Rows {
		assert.Len(t, row, 2*v.Width-1)
	}
	assert.False(t, v.Over)

	var got sessionView
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/v1/sessions/"+v.ID, nil, &got))
	assert.Equal(t, v, got)
}

func TestCreateSessionErrors(t *testing.T) {
	ts := newTestServer(t, Options{})

	var e errorView
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodPost, "/v1/sessions", createRequest{LevelID: "nope"}, &e))
	assert.Contains(t, e.Error, "nope")

	assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodPost, "/v1/sessions", createRequest{Mode: "tetris"}, &e))
	assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodPost, "/v1/sessions", map[string]any{"bogus": 1}, &e))
}

func TestEndlessSession(t *testing.T) {
	ts := newTestServer(t, Options{})

	v := createSession(t, ts, createRequest{Mode: "match3_endless", Seed: 5})
	assert.Equal(t, "endless", v.Level)
	assert.Equal(t, "match3_endless", v.Mode)
	assert.Equal(t, 8, v.Width)
	assert.Empty(t, v.Goals)
}

func TestHintAndSwap(t *testing.T) {
	ts := newTestServer(t, Options{})
	v := createSession(t, ts, createRequest{LevelID: "first-steps", Seed: 11})

	var h hintView
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/v1/sessions/"+v.ID+"/hint", nil, &h))
	require.True(t, h.Found)

	var sw swapView
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/v1/sessions/"+v.ID+"/swap", swapRequest{A: *h.A, B: *h.B}, &sw))
	assert.True(t, sw.Valid)
	assert.Empty(t, sw.Reason)
	assert.Greater(t, sw.Points, 0)
	require.NotEmpty(t, sw.Steps)
	assert.Equal(t, 1, sw.Steps[0].Index)
	assert.GreaterOrEqual(t, len(sw.Steps[0].Cleared), 3)
	assert.Equal(t, v.MovesLeft-1, sw.Session.MovesLeft)
	assert.Equal(t, sw.Points+sw.Bonus, sw.Session.Score)
}

func TestSwapRejected(t *testing.T) {
	ts := newTestServer(t, Options{})
	v := createSession(t, ts, createRequest{LevelID: "first-steps", Seed: 11})
	path := "/v1/sessions/" + v.ID + "/swap"

	var sw swapView
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, path, swapRequest{A: coordJSON{0, 0}, B: coordJSON{2, 2}}, &sw))
	assert.False(t, sw.Valid)
	assert.Equal(t, "not_adjacent", sw.Reason)
	assert.Equal(t, v.MovesLeft, sw.Session.MovesLeft, "invalid swaps are free")

	var e errorView
	assert.Equal(t, http.StatusBadRequest, do(t, ts, http.MethodPost, path, swapRequest{A: coordJSON{0, 0}, B: coordJSON{-1, 0}}, &e))
	assert.Contains(t, e.Error, "out of bounds")
}

func TestUnknownSession(t *testing.T) {
	ts := newTestServer(t, Options{})

	var e errorView
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/v1/sessions/not-a-uuid", nil, &e))
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/v1/sessions/0190f3a8-0000-7000-8000-000000000000", nil, &e))
}

func TestDeleteSession(t *testing.T) {
	ts := newTestServer(t, Options{})
	v := createSession(t, ts, createRequest{LevelID: "first-steps", Seed: 1})

	assert.Equal(t, http.StatusNoContent, do(t, ts, http.MethodDelete, "/v1/sessions/"+v.ID, nil, nil))

	var e errorView
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodGet, "/v1/sessions/"+v.ID, nil, &e))
	assert.Equal(t, http.StatusNotFound, do(t, ts, http.MethodDelete, "/v1/sessions/"+v.ID, nil, &e))
}

func TestGameOverSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	oneMove := levels.Level{
		ID:         "one-move",
		Number:     1,
		Name:       "One Move",
		Width:      6,
		Height:     6,
		Moves:      1,
		Objectives: []formats.Objective{{Tile: core.Red, Name: "red", Target: 999, Known: true}},
	}
	ts := newTestServer(t, Options{Levels: []levels.Level{oneMove}, Store: store})
	v := createSession(t, ts, createRequest{Seed: 2})
	assert.Equal(t, "one-move", v.Level, "an empty level id starts the first level")

	var h hintView
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodGet, "/v1/sessions/"+v.ID+"/hint", nil, &h))
	require.True(t, h.Found)

	var sw swapView
	require.Equal(t, http.StatusOK, do(t, ts, http.MethodPost, "/v1/sessions/"+v.ID+"/swap", swapRequest{A: *h.A, B: *h.B}, &sw))
	assert.True(t, sw.Session.Over)
	assert.False(t, sw.Session.Won)

	var e errorView
	assert.Equal(t, http.StatusConflict, do(t, ts, http.MethodPost, "/v1/sessions/"+v.ID+"/swap", swapRequest{A: *h.A, B: *h.B}, &e))

	runs, err := store.RecentRuns("one-move", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, v.ID, runs[0].RunID)
	assert.Equal(t, 1, runs[0].MovesUsed)
}

func TestGzipResponses(t *testing.T) {
	ts := newTestServer(t, Options{})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/levels", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := http.DefaultTransport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "["))
}

func TestSweepDropsIdleSessions(t *testing.T) {
	s := New(Options{Config: config.DefaultConfig()})
	lvls, err := levels.Embedded().LoadAll()
	require.NoError(t, err)
	s.opts.Levels = lvls

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	createSession(t, ts, createRequest{Seed: 1})
	createSession(t, ts, createRequest{Seed: 2})
	require.Equal(t, 2, s.sessions.len())

	assert.Equal(t, 0, s.sessions.sweep(time.Now().Add(-time.Hour)))
	assert.Equal(t, 2, s.sessions.sweep(time.Now().Add(time.Second)))
	assert.Equal(t, 0, s.sessions.len())
}
