package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/quartiles-solver/assets"
	"github.com/robalobadob/quartiles-solver/internal/config"
	"github.com/robalobadob/quartiles-solver/internal/dict"
	"github.com/robalobadob/quartiles-solver/internal/store"
)

const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE solves (
    id TEXT PRIMARY KEY,
    user_id TEXT REFERENCES users(id),
    anonymous_id TEXT,
    board TEXT NOT NULL,
    words INTEGER NOT NULL,
    solved INTEGER NOT NULL DEFAULT 0,
    elapsed_ms INTEGER NOT NULL,
    finished_at TEXT NOT NULL
);`

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{
			Port:         "0",
			StepBudget:   25 * time.Millisecond,
			DailySalt:    "test-salt",
			ClientOrigin: "http://localhost:5173",
		},
		Auth: config.Auth{
			JWTSecret:  "test_secret",
			ExpireDays: 1,
			CookieName: "quartiles_token",
		},
		Log: config.Log{Level: "warn"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // one shared in-memory database
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	words, err := assets.WordList()
	require.NoError(t, err)
	d := dict.New()
	d.Populate(words)

	boards, err := assets.SampleBoards()
	require.NoError(t, err)

	return New(store.NewMemoryStore(), db, d, testConfig(), boards)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestDebugDict(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/debug/dict", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var out map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Greater(t, out["words"], 0)
}

func TestSolveFlow(t *testing.T) {
	s := newTestServer(t)
	boards, err := assets.SampleBoards()
	require.NoError(t, err)

	rec := doJSON(t, s, http.MethodPost, "/solve/new",
		map[string]any{"fragments": boards[0]}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created struct {
		SessionID string   `json:"sessionId"`
		Board     []string `json:"board"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)
	assert.Len(t, created.Board, 20)

	var last struct {
		Word     string   `json:"word"`
		Words    []string `json:"words"`
		Finished bool     `json:"finished"`
		Solved   bool     `json:"solved"`
	}
	for i := 0; i < 10000 && !last.Finished; i++ {
		rec = doJSON(t, s, http.MethodPost, "/solve/step",
			map[string]any{"sessionId": created.SessionID, "budgetMs": 50}, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &last))
	}
	require.True(t, last.Finished, "solver did not finish")
	assert.True(t, last.Solved)
	assert.Contains(t, last.Words, "crosswords")
	assert.Contains(t, last.Words, "truthfully")

	// Snapshot matches the final step.
	rec = doJSON(t, s, http.MethodGet, "/solve/"+created.SessionID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap struct {
		Words    []string `json:"words"`
		Finished bool     `json:"finished"`
		Solved   bool     `json:"solved"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.True(t, snap.Finished)
	assert.True(t, snap.Solved)
	assert.Equal(t, last.Words, snap.Words)

	// The completed run went to the history table exactly once.
	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(1) FROM solves`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSolveNewRejectsBadBoard(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/solve/new",
		map[string]any{"board": "just,a,few"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStepUnknownSession(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/solve/step",
		map[string]any{"sessionId": "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDailyBoardDeterministic(t *testing.T) {
	s := newTestServer(t)
	rec1 := doJSON(t, s, http.MethodGet, "/daily/board", nil, nil)
	rec2 := doJSON(t, s, http.MethodGet, "/daily/board", nil, nil)
	require.Equal(t, http.StatusOK, rec1.Code)
	assert.JSONEq(t, rec1.Body.String(), rec2.Body.String())

	var out struct {
		Date  string   `json:"date"`
		Board []string `json:"board"`
	}
	require.NoError(t, json.Unmarshal(rec1.Body.Bytes(), &out))
	assert.Len(t, out.Board, 20)
	assert.NotEmpty(t, out.Date)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	// Unauthenticated /auth/me is rejected.
	rec := doJSON(t, s, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Signup sets the auth cookie.
	rec = doJSON(t, s, http.MethodPost, "/auth/signup",
		map[string]string{"username": "solver_fan", "password": "hunter2hunter2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = doJSON(t, s, http.MethodGet, "/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "solver_fan", me.Username)

	// Duplicate username is a conflict.
	rec = doJSON(t, s, http.MethodPost, "/auth/signup",
		map[string]string{"username": "solver_fan", "password": "hunter2hunter2"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Wrong password is rejected.
	rec = doJSON(t, s, http.MethodPost, "/auth/login",
		map[string]string{"username": "solver_fan", "password": "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct login succeeds.
	rec = doJSON(t, s, http.MethodPost, "/auth/login",
		map[string]string{"username": "solver_fan", "password": "hunter2hunter2"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// History starts empty.
	rec = doJSON(t, s, http.MethodGet, "/history/mine", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "hunter2hunter2"},
		{"bad characters", "not ok!", "hunter2hunter2"},
		{"short password", "good_name", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/auth/signup",
				map[string]string{"username": tt.username, "password": tt.password}, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
