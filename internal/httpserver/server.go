// internal/httpserver/server.go
//
// HTTP wiring for the Quartiles solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/dict", "/daily/board".
//   - Solve endpoints (optional auth): POST /solve/new, POST /solve/step,
//     GET /solve/{id}.
//   - Auth + history endpoints: /auth/*, /history/mine (require auth).
//   - SQLite persistence of completed solve runs.
//
// Notes:
//   - The dictionary is loaded once at startup and shared read-only by every
//     session's solver; sessions live in the in-memory store.
//   - A step call runs the solver for a bounded time budget and returns any
//     newly found word, so clients can render discoveries incrementally and
//     keep the connection snappy regardless of board pathology.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quartiles-solver/internal/config"
	"github.com/robalobadob/quartiles-solver/internal/dict"
	"github.com/robalobadob/quartiles-solver/internal/puzzle"
	"github.com/robalobadob/quartiles-solver/internal/solver"
	"github.com/robalobadob/quartiles-solver/internal/store"
)

// Server bundles router, session store, dictionary, and DB handle.
type Server struct {
	r      *chi.Mux
	store  store.Store
	db     *sql.DB
	dict   *dict.Dictionary
	cfg    *config.Config
	boards [][]string // packaged boards for /daily/board
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, d *dict.Dictionary, cfg *config.Config, boards [][]string) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, dict: d, cfg: cfg, boards: boards}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromConfig(cfg))             // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"quartiles-solver","endpoints":["/health","POST /solve/new","POST /solve/step","GET /solve/{id}","GET /daily/board","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/dict", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": s.dict.Len()})
	})

	// Solve endpoints, optional auth (guests can solve)
	s.r.With(s.withOptionalAuth()).Post("/solve/new", s.handleNewSolve)
	s.r.With(s.withOptionalAuth()).Post("/solve/step", s.handleStep)
	s.r.Get("/solve/{id}", s.handleGetSolve)

	// Daily board
	s.r.Get("/daily/board", s.handleDailyBoard)

	// Auth + history (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromConfig enables credentialed CORS for a single origin.
func corsFromConfig(cfg *config.Config) func(http.Handler) http.Handler {
	origin := cfg.Server.ClientOrigin
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ SOLVE --------------------------------------

// newSolveReq/Res payloads for POST /solve/new.
type newSolveReq struct {
	Fragments []string `json:"fragments"` // 20 fragments, row-major
	Board     string   `json:"board"`     // alternative: comma/space separated
}
type newSolveRes struct {
	SessionID string   `json:"sessionId"`
	Board     []string `json:"board"`
}

// handleNewSolve validates a board, creates a session with a fresh solver,
// and returns the session ID.
func (s *Server) handleNewSolve(w http.ResponseWriter, r *http.Request) {
	var req newSolveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	var board puzzle.Board
	var err error
	if len(req.Fragments) > 0 {
		board, err = puzzle.ParseLines(req.Fragments)
	} else {
		board, err = puzzle.Parse(req.Board)
	}
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	sv, err := solver.New(s.dict, board)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	sess := store.NewSession(board, sv)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("sessionId", sess.ID).Msg("new solve session")
	_ = json.NewEncoder(w).Encode(newSolveRes{SessionID: sess.ID, Board: board})
}

// stepReq/Res payloads for POST /solve/step.
type stepReq struct {
	SessionID string `json:"sessionId"`
	BudgetMs  int    `json:"budgetMs"` // optional; server default applies
}
type stepRes struct {
	Word     string   `json:"word,omitempty"`    // newly found word, if any
	Indices  []int    `json:"indices,omitempty"` // its fragment indices
	Words    []string `json:"words"`             // all words so far, discovery order
	Finished bool     `json:"finished"`
	Solved   bool     `json:"solved"`
}

// handleStep advances a session's solver by one time slice. At most one new
// word is reported per step; clients poll until finished.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req stepReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.SessionID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	budget := s.cfg.Server.StepBudget
	if req.BudgetMs > 0 {
		budget = time.Duration(req.BudgetMs) * time.Millisecond
	}

	sess.Mu.Lock()
	start := time.Now()
	path, found := sess.Solver.Advance(budget)
	sess.Elapsed += time.Since(start)

	res := stepRes{
		Words:    sess.Solver.Solution(),
		Finished: sess.Solver.IsFinished(),
		Solved:   sess.Solver.IsSolved(),
	}
	if found {
		res.Word = sess.Solver.Word(path)
		res.Indices = path.Indices()
	}
	record := res.Finished && !sess.Recorded
	if record {
		sess.Recorded = true
	}
	elapsed := sess.Elapsed
	sess.Mu.Unlock()

	if record {
		s.recordSolve(w, r, sess, elapsed)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleGetSolve returns a snapshot of a session without advancing it.
func (s *Server) handleGetSolve(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	sess.Mu.Lock()
	res := stepRes{
		Words:    sess.Solver.Solution(),
		Finished: sess.Solver.IsFinished(),
		Solved:   sess.Solver.IsSolved(),
	}
	sess.Mu.Unlock()
	_ = json.NewEncoder(w).Encode(res)
}

// recordSolve persists a completed run to the history DB (best effort,
// non-fatal if it fails). The owner is the authenticated user or the
// anonymous cookie ID.
func (s *Server) recordSolve(w http.ResponseWriter, r *http.Request, sess *store.Session, elapsed time.Duration) {
	ownerCol := "anonymous_id"
	owner := s.ensureAnonID(w, r)
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		ownerCol = "user_id"
		owner = me.ID
	}
	now := time.Now().UTC().Format(time.RFC3339)
	solved := 0
	if sess.Solver.IsSolved() {
		solved = 1
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO solves (id, `+ownerCol+`, board, words, solved, elapsed_ms, finished_at)
	                     VALUES (?,?,?,?,?,?,?)`,
		sess.ID, owner, puzzle.Board(sess.Board).String(), len(sess.Solver.Solution()),
		solved, elapsed.Milliseconds(), now)
	if err != nil {
		log.Warn().Err(err).Str("sessionId", sess.ID).Msg("insert solve row")
	}
}

// ------------------------------ DAILY --------------------------------------

// handleDailyBoard returns the deterministic board for today's date.
func (s *Server) handleDailyBoard(w http.ResponseWriter, r *http.Request) {
	if len(s.boards) == 0 {
		http.Error(w, `{"error":"no_boards"}`, http.StatusServiceUnavailable)
		return
	}
	now := time.Now()
	idx := puzzle.DailyIndex(now, s.cfg.Server.DailySalt, len(s.boards))
	_ = json.NewEncoder(w).Encode(map[string]any{
		"date":  puzzle.DateKey(now),
		"index": idx,
		"board": s.boards[idx],
	})
}
