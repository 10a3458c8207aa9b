// Package game holds the client-side view of a running investigation.
//
// Every game view owns an explicit Session whose snapshot only advances
// when the response belongs to the newest issued request, so a slow
// response can never overwrite state a later request already committed.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mkjarl/gumshoe/internal/backend"
	"github.com/mkjarl/gumshoe/internal/errors"
	"github.com/mkjarl/gumshoe/internal/models"
	"github.com/mkjarl/gumshoe/internal/random"
)

// ErrStale marks a response that resolved after a newer request already
// committed its snapshot. The caller should drop the result; the state has
// moved on without it.
var ErrStale = errors.NewSentinel("stale response discarded")

// ErrNotStarted marks operations that need an in-flight game.
var ErrNotStarted = errors.NewSentinel("game has not been started")

// Solver is the remote detective backend surface the session needs.
// *backend.Client implements it.
type Solver interface {
	Start(ctx context.Context, sessionID string) (*models.GameState, error)
	TakeAction(ctx context.Context, sessionID, evidenceID string) (*backend.ActionResult, error)
	Suggest(ctx context.Context, sessionID string) (*backend.SuggestResult, error)
	Minimax(ctx context.Context) (*backend.MinimaxResult, error)
	Ask(ctx context.Context, questionID string) (*models.InterrogationResult, error)
	Accuse(ctx context.Context, sessionID string, guess models.Guess) (*models.Verdict, error)
}

// Session correlates one game view with one server-side game instance.
// The id is immutable after creation; the snapshot is replaced wholesale on
// every successful mutating response, never merged.
type Session struct {
	id     string
	solver Solver

	mu      sync.Mutex
	state   *models.GameState
	issued  uint64
	applied uint64
}

const idSuffixLength uint = 8

// NewSession creates a session with a fresh timestamp-based opaque id.
// The random suffix keeps ids unique across views started in the same
// millisecond.
func NewSession(solver Solver) (*Session, error) {
	suffix, err := random.Letters(idSuffixLength)
	if err != nil {
		return nil, errors.Wrap(err, "generate session id suffix")
	}
	return &Session{
		id:     fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix),
		solver: solver,
	}, nil
}

// ID returns the opaque identifier sent with every correlated request.
func (s *Session) ID() string {
	return s.id
}

// Started reports whether a game snapshot has been received.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != nil
}

// Snapshot returns a copy of the latest game state. ok is false before the
// game has started.
func (s *Session) Snapshot() (models.GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return models.GameState{}, false
	}
	return *s.state, true
}

// begin issues a ticket for a snapshot-mutating round trip. Tickets are
// monotonic; a response commits only if no later ticket committed first.
func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

func (s *Session) commit(ticket uint64, state models.GameState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.applied {
		return false
	}
	s.applied = ticket
	s.state = &state
	return true
}

// Start begins the game on the backend and stores the initial snapshot.
func (s *Session) Start(ctx context.Context) (models.GameState, error) {
	ticket := s.begin()
	state, err := s.solver.Start(ctx, s.id)
	if err != nil {
		return models.GameState{}, errors.Wrap(err, "start session")
	}
	if !s.commit(ticket, *state) {
		return models.GameState{}, ErrStale
	}
	return *state, nil
}

// TakeAction spends an evidence action and advances the snapshot. On any
// failure the snapshot is left untouched and the caller may simply retry.
func (s *Session) TakeAction(ctx context.Context, evidenceID string) (*backend.ActionResult, error) {
	if !s.Started() {
		return nil, ErrNotStarted
	}
	ticket := s.begin()
	result, err := s.solver.TakeAction(ctx, s.id, evidenceID)
	if err != nil {
		return nil, errors.Wrap(err, "take action")
	}
	if !s.commit(ticket, result.GameState) {
		return nil, ErrStale
	}
	return result, nil
}

// Suggest fetches the heuristic recommendation. Game state is not mutated.
func (s *Session) Suggest(ctx context.Context) (*backend.SuggestResult, error) {
	if !s.Started() {
		return nil, ErrNotStarted
	}
	result, err := s.solver.Suggest(ctx, s.id)
	if err != nil {
		return nil, errors.Wrap(err, "suggest")
	}
	return result, nil
}

// Minimax fetches the adversarial question recommendation. Game state is not
// mutated. The backend call carries no session id, see [backend.Client.Minimax].
func (s *Session) Minimax(ctx context.Context) (*backend.MinimaxResult, error) {
	if !s.Started() {
		return nil, ErrNotStarted
	}
	result, err := s.solver.Minimax(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "minimax")
	}
	return result, nil
}

// Ask poses an interrogation question. Game state is not mutated.
func (s *Session) Ask(ctx context.Context, questionID string) (*models.InterrogationResult, error) {
	if !s.Started() {
		return nil, ErrNotStarted
	}
	result, err := s.solver.Ask(ctx, questionID)
	if err != nil {
		return nil, errors.Wrap(err, "ask")
	}
	return result, nil
}

// Accuse submits the three-field guess and returns the verdict.
func (s *Session) Accuse(ctx context.Context, guess models.Guess) (*models.Verdict, error) {
	if !s.Started() {
		return nil, ErrNotStarted
	}
	verdict, err := s.solver.Accuse(ctx, s.id, guess)
	if err != nil {
		return nil, errors.Wrap(err, "accuse")
	}
	return verdict, nil
}
