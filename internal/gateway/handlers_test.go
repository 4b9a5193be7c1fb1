package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkmar1192/FoundryLite/internal/orchestrator"
	"github.com/bkmar1192/FoundryLite/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	sceneDir := t.TempDir()
	store, err := storage.New(filepath.Join(sceneDir, ".fow"))
	require.NoError(t, err)

	hub := NewConnectionManager(DefaultConnectionConfig())
	orch := orchestrator.New(store, hub, clockwork.NewFakeClock(),
		filepath.Join(sceneDir, "current-scene.webp"),
		filepath.Join(sceneDir, "combat.json"))
	svc := NewServiceWithHub(hub, orch)

	r := chi.NewRouter()
	r.Route("/scenes", func(r chi.Router) {
		svc.RegisterRoutes(r)
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, sceneDir
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestGetHashEmptyWithoutImage(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/scenes/hash", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", body["hash"])
}

func TestStateToggleRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)
	put := map[string]any{
		"ops": []map[string]any{{"type": "toggle", "mode": "hidden", "key": "A1"}},
	}

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/scenes/state", put)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])

	_, state := doJSON(t, http.MethodGet, ts.URL+"/scenes/state", nil)
	assert.Equal(t, []any{"A1"}, state["hidden"])

	// Second identical toggle reverses the first.
	doJSON(t, http.MethodPut, ts.URL+"/scenes/state", put)
	_, state = doJSON(t, http.MethodGet, ts.URL+"/scenes/state", nil)
	assert.Equal(t, []any{}, state["hidden"])
}

func TestGetStateIncludesHashAndNote(t *testing.T) {
	ts, _ := newTestServer(t)

	_, state := doJSON(t, http.MethodGet, ts.URL+"/scenes/state", nil)
	assert.Contains(t, state, "hash")
	assert.Contains(t, state, "hidden")
	assert.Contains(t, state, "highlight")
	assert.Contains(t, state, "note")
}

func TestGridPutReplacesShow(t *testing.T) {
	ts, _ := newTestServer(t)

	_, grid := doJSON(t, http.MethodGet, ts.URL+"/scenes/grid", nil)
	assert.Equal(t, true, grid["show"])

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/scenes/grid", map[string]any{"show": false})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])

	_, grid = doJSON(t, http.MethodGet, ts.URL+"/scenes/grid", nil)
	assert.Equal(t, false, grid["show"])
}

func TestConfigPartialUpdate(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/scenes/config", map[string]any{"cols": 25})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])

	cfg, ok := body["config"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(25), cfg["cols"])
	assert.Equal(t, float64(10), cfg["rows"])
}

func TestConfigRejectsNonPositiveDimension(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPut, ts.URL+"/scenes/config", map[string]any{"rows": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, cfg := doJSON(t, http.MethodGet, ts.URL+"/scenes/config", nil)
	assert.Equal(t, float64(10), cfg["rows"])
}

func TestClockActionAndUnknownAction(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/scenes/clock", map[string]any{"action": "pause"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "clock", body["type"])
	assert.Contains(t, body, "serverTime")

	clock, ok := body["clock"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, clock["running"])

	resp, errBody := doJSON(t, http.MethodPut, ts.URL+"/scenes/clock", map[string]any{"action": "frobnicate"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errBody, "error")

	// The rejected action must not have disturbed the clock.
	_, after := doJSON(t, http.MethodGet, ts.URL+"/scenes/clock", nil)
	afterClock, ok := after["clock"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, clock, afterClock)
}

func TestClockPrefsRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)

	_, prefs := doJSON(t, http.MethodGet, ts.URL+"/scenes/clockprefs", nil)
	assert.Equal(t, true, prefs["resetRuns"])

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/scenes/clockprefs", map[string]any{"resetRuns": false})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, false, body["resetRuns"])
}

func TestCombatReflectsDocumentOnDisk(t *testing.T) {
	ts, sceneDir := newTestServer(t)

	_, snap := doJSON(t, http.MethodGet, ts.URL+"/scenes/combat", nil)
	assert.Equal(t, []any{}, snap["list"])
	assert.Nil(t, snap["activeId"])

	doc := `{"round":1,"turn":0,"turns":[{"id":"goblin","order":0,"initiative":12}]}`
	require.NoError(t, os.WriteFile(filepath.Join(sceneDir, "combat.json"), []byte(doc), 0o644))

	// The HTTP surface serves the snapshot held in memory; the watcher is
	// what refreshes it, so without a watcher running the GET still shows
	// the empty snapshot.
	_, snap = doJSON(t, http.MethodGet, ts.URL+"/scenes/combat", nil)
	assert.Equal(t, []any{}, snap["list"])
}

func TestInvalidJSONBodyRejected(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/scenes/state", bytes.NewBufferString("{nope"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
