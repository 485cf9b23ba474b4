package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartdebruin-tp/matchmaker/internal/api"
	"github.com/bartdebruin-tp/matchmaker/internal/api/response"
	"github.com/bartdebruin-tp/matchmaker/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{
		SnapshotPath: filepath.Join(t.TempDir(), "snapshot.json"),
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Players:     app.Players,
		Groups:      app.Groups,
		SubPages:    app.SubPages,
		Matches:     app.Matches,
		Snapshot:    app.Snapshot,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its session token
func (ts *testServer) register(t *testing.T, email string) string {
	t.Helper()

	rec := ts.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": "secret",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionToken)
	return resp.SessionToken
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	token := ts.register(t, "coach@example.com")

	// Duplicate registration conflicts
	rec := ts.request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "coach@example.com",
		"password": "other",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Wrong password is rejected
	rec = ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "coach@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Me echoes the session
	rec = ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[response.AuthResponse](t, rec)
	assert.Equal(t, "coach@example.com", me.Email)

	// Logout invalidates the token
	rec = ts.request(http.MethodPost, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/players", "/api/v1/groups", "/api/v1/subpages", "/api/v1/active-players"} {
		rec := ts.request(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := ts.request(http.MethodPost, "/api/v1/sync", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlayerCRUD(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "coach@example.com")

	// Create
	rec := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": "Alice"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[response.Player](t, rec)
	assert.Equal(t, "Alice", created.Name)
	require.NotEmpty(t, created.ID)

	// Missing name is rejected
	rec = ts.request(http.MethodPost, "/api/v1/players", map[string]string{}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// List
	rec = ts.request(http.MethodGet, "/api/v1/players", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	players := decode[[]response.Player](t, rec)
	require.Len(t, players, 1)

	// Rename
	rec = ts.request(http.MethodPatch, "/api/v1/players/"+created.ID, map[string]string{"name": "Alicia"}, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/players", nil, token)
	players = decode[[]response.Player](t, rec)
	require.Len(t, players, 1)
	assert.Equal(t, "Alicia", players[0].Name)

	// Delete
	rec = ts.request(http.MethodDelete, "/api/v1/players/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/players", nil, token)
	players = decode[[]response.Player](t, rec)
	assert.Empty(t, players)
}

func TestGroupMembershipAndSubPages(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "coach@example.com")

	rec := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": "Alice"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	alice := decode[response.Player](t, rec)

	rec = ts.request(http.MethodPost, "/api/v1/groups", map[string]string{"name": "Red", "color": "#ff0000"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	red := decode[response.Group](t, rec)
	assert.Equal(t, "random", red.MatchType)
	assert.Empty(t, red.PlayerIDs)

	// Membership
	rec = ts.request(http.MethodPost, "/api/v1/groups/"+red.ID+"/players/"+alice.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/groups", nil, token)
	groups := decode[[]response.Group](t, rec)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{alice.ID}, groups[0].PlayerIDs)

	// Sub-pages, newest first under the group
	rec = ts.request(http.MethodPost, "/api/v1/subpages", map[string]string{"group_id": red.ID, "name": "Monday"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	monday := decode[response.SubPage](t, rec)

	rec = ts.request(http.MethodPost, "/api/v1/subpages", map[string]string{"group_id": red.ID, "name": "Tuesday"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/groups/"+red.ID+"/subpages", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	subPages := decode[[]response.SubPage](t, rec)
	require.Len(t, subPages, 2)

	// Attendance toggle
	rec = ts.request(http.MethodPost, "/api/v1/subpages/"+monday.ID+"/players/"+alice.ID+"/toggle", nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/subpages/"+monday.ID, nil, token)
	got := decode[response.SubPage](t, rec)
	assert.Equal(t, []string{alice.ID}, got.PresentPlayerIDs)

	// Toggle on an unknown sub-page is a 404
	rec = ts.request(http.MethodPost, "/api/v1/subpages/sp-unknown/players/"+alice.ID+"/toggle", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Membership removal
	rec = ts.request(http.MethodDelete, "/api/v1/groups/"+red.ID+"/players/"+alice.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/groups", nil, token)
	groups = decode[[]response.Group](t, rec)
	assert.Empty(t, groups[0].PlayerIDs)
}

func TestActivePlayersAndMatchGeneration(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "coach@example.com")

	var ids []string
	for _, name := range []string{"Alice", "Bob", "Cara", "Dan"} {
		rec := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": name}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[response.Player](t, rec).ID)
	}

	// Too few players named explicitly
	rec := ts.request(http.MethodPost, "/api/v1/matches/generate", map[string]any{"player_ids": ids[:2]}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Activate everyone
	for _, id := range ids {
		rec = ts.request(http.MethodPost, "/api/v1/active-players/"+id+"/toggle", nil, token)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec = ts.request(http.MethodGet, "/api/v1/active-players", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	active := decode[[]string](t, rec)
	assert.Equal(t, ids, active)

	// Empty player_ids falls back to the active set
	rec = ts.request(http.MethodPost, "/api/v1/matches/generate", map[string]any{"player_ids": []string{}}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	matches := decode[[]response.Match](t, rec)
	require.Len(t, matches, 1)

	paired := map[string]bool{
		matches[0].Team1.Player1ID: true,
		matches[0].Team1.Player2ID: true,
		matches[0].Team2.Player1ID: true,
		matches[0].Team2.Player2ID: true,
	}
	assert.Len(t, paired, 4)
	for _, id := range ids {
		assert.True(t, paired[id])
	}

	// Explicit PUT deactivation
	rec = ts.request(http.MethodPut, "/api/v1/active-players/"+ids[0], map[string]bool{"active": false}, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/active-players", nil, token)
	active = decode[[]string](t, rec)
	assert.Equal(t, ids[1:], active)

	// Clear
	rec = ts.request(http.MethodDelete, "/api/v1/active-players", nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/active-players", nil, token)
	active = decode[[]string](t, rec)
	assert.Empty(t, active)
}

func TestSyncAndSnapshot(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "coach@example.com")

	rec := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"name": "Alice"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Sync refetches and returns the exported state
	rec = ts.request(http.MethodPost, "/api/v1/sync", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var synced struct {
		Players []response.Player `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &synced))
	assert.Len(t, synced.Players, 1)

	// No snapshot saved yet
	rec = ts.request(http.MethodGet, "/api/v1/snapshot", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Save, read back, clear
	rec = ts.request(http.MethodPost, "/api/v1/snapshot", nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/snapshot", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &synced))
	assert.Len(t, synced.Players, 1)

	rec = ts.request(http.MethodDelete, "/api/v1/snapshot", nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/snapshot", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownIDsReturnNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "coach@example.com")

	rec := ts.request(http.MethodPatch, "/api/v1/players/p-unknown", map[string]string{"name": "Nobody"}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PLAYER_NOT_FOUND")

	rec = ts.request(http.MethodDelete, "/api/v1/players/p-unknown", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PLAYER_NOT_FOUND")

	rec = ts.request(http.MethodPatch, "/api/v1/groups/g-unknown", map[string]string{"name": "Nowhere"}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "GROUP_NOT_FOUND")

	rec = ts.request(http.MethodDelete, "/api/v1/groups/g-unknown", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "GROUP_NOT_FOUND")
}
