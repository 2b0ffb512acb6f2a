// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Solve sessions are ephemeral server state: a session holds a live solver
// between /solve/step calls and dies with the process. Durable output (the
// completed run) goes to the history database instead.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes
//     exclusive). Each individual solver is still exclusively owned: the
//     HTTP layer serializes Advance calls per session.
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/quartiles-solver/internal/solver"
)

// Session is one in-flight solving run, created by POST /solve/new and
// advanced by POST /solve/step.
type Session struct {
	ID        string         // unique session identifier (random hex string)
	Board     []string       // the 20 fragments, row-major
	Solver    *solver.Solver // live solver state
	CreatedAt time.Time      // session creation time (UTC)
	Elapsed   time.Duration  // total solver time consumed across steps
	Recorded  bool           // true once written to the history DB

	// Mu serializes steps: a solver admits at most one Advance at a time.
	Mu sync.Mutex
}

// NewSession wraps a solver in a session with a fresh random ID.
func NewSession(board []string, s *solver.Solver) *Session {
	return &Session{
		ID:        randomID(),
		Board:     board,
		Solver:    s,
		CreatedAt: time.Now().UTC(),
	}
}

// Store defines the persistence interface for solve sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns an error if the session is not found.
	Get(ctx context.Context, id string) (*Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
