package game

import "sync"

// Manager keeps the live sessions for the process, keyed by session id.
// Handlers resolve the id from the browser session cookie and look the
// Session up here.
type Manager struct {
	solver Solver

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(solver Solver) *Manager {
	return &Manager{
		solver:   solver,
		sessions: make(map[string]*Session),
	}
}

// New creates and registers a fresh session.
func (m *Manager) New() (*Session, error) {
	session, err := NewSession(m.solver)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.id] = session
	return session, nil
}

// Get returns the session with the given id, or ok=false when the id is
// unknown, e.g. after a server restart with a stale cookie.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Evict drops the session with the given id. Sessions whose backend start
// failed and sessions replaced by a restart are evicted so the map does not
// grow for the process lifetime. Unknown ids are a no-op.
func (m *Manager) Evict(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
