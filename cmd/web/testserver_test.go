package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mkjarl/gumshoe/internal/models"
)

// solverStub fakes the remote solver service. It scripts a three-action
// investigation that narrows 27 possible solutions down to 1, with
// Miss Scarlet, the Rope and the Ballroom as the answer.
type solverStub struct {
	t *testing.T

	mu          sync.Mutex
	failNext    bool
	sessionID   string
	actionsDone int
	lastMinimax json.RawMessage
}

func newSolverStub(t *testing.T) (*solverStub, *httptest.Server) {
	t.Helper()
	stub := &solverStub{t: t}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/game/start", stub.handleStart)
	mux.HandleFunc("POST /api/game/action", stub.handleAction)
	mux.HandleFunc("POST /api/ai/suggest", stub.handleSuggest)
	mux.HandleFunc("POST /api/ai/minimax", stub.handleMinimax)
	mux.HandleFunc("POST /api/interrogation/ask", stub.handleAsk)
	mux.HandleFunc("POST /api/game/accuse", stub.handleAccuse)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return stub, server
}

// FailNext makes the next endpoint hit report an application-level failure.
func (s *solverStub) FailNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

// LastMinimaxBody returns the raw request body of the latest minimax call.
func (s *solverStub) LastMinimaxBody() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMinimax
}

func (s *solverStub) takeFailure(w http.ResponseWriter) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.failNext {
		return false
	}
	s.failNext = false
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "No active game found",
	})
	return true
}

func writeJSON(w http.ResponseWriter, payload map[string]any) {
	payload["success"] = true
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

var stubActions = []models.Evidence{
	{ID: "ev-study", Action: "Search the study", Clue: "Mud on the carpet", Cost: 2},
	{ID: "ev-prints", Action: "Examine the fingerprints", Clue: "Prints match Miss Scarlet", Cost: 3},
	{ID: "ev-alibis", Action: "Check the alibis", Clue: "The ballroom was unlocked", Cost: 1},
}

// state returns the scripted snapshot after n actions.
func (s *solverStub) state(n int) models.GameState {
	domains := models.Domains{
		Suspect:  []string{"Professor Plum", "Miss Scarlet", "Colonel Mustard"},
		Weapon:   []string{"Knife", "Rope", "Revolver"},
		Location: []string{"Library", "Kitchen", "Ballroom"},
	}
	possible := 27
	totalCost := 0
	switch {
	case n >= 2:
		domains = models.Domains{
			Suspect:  []string{"Miss Scarlet"},
			Weapon:   []string{"Rope"},
			Location: []string{"Ballroom"},
		}
		possible = 1
		totalCost = 5
	case n == 1:
		domains.Suspect = []string{"Miss Scarlet"}
		possible = 9
		totalCost = 2
	}
	return models.GameState{
		SessionID:         s.sessionID,
		TotalCost:         totalCost,
		ActionsTaken:      stubActions[:n],
		PossibleSolutions: possible,
		ConstraintCount:   n,
		CurrentDomains:    domains,
		AvailableActions:  stubActions[n:],
	}
}

func (s *solverStub) handleStart(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w) {
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		s.t.Errorf("start request missing session_id: %v", err)
	}
	s.mu.Lock()
	s.sessionID = req.SessionID
	s.actionsDone = 0
	state := s.state(0)
	s.mu.Unlock()
	writeJSON(w, map[string]any{"game_state": state})
}

func (s *solverStub) handleAction(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w) {
		return
	}
	var req struct {
		SessionID  string `json:"session_id"`
		EvidenceID string `json:"evidence_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Errorf("decode action request: %v", err)
	}
	s.mu.Lock()
	evidence := stubActions[s.actionsDone]
	if req.EvidenceID != evidence.ID {
		s.t.Errorf("unexpected evidence id %q, want %q", req.EvidenceID, evidence.ID)
	}
	s.actionsDone++
	state := s.state(s.actionsDone)
	s.mu.Unlock()
	writeJSON(w, map[string]any{
		"game_state": state,
		"evidence":   evidence,
		"csp_result": map[string]any{
			"steps": []models.Step{
				{Type: "elimination", Algorithm: "AC-3", Message: "Removed inconsistent values"},
			},
		},
	})
}

func (s *solverStub) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w) {
		return
	}
	writeJSON(w, map[string]any{
		"suggestion": models.Suggestion{
			Action:    "Check the alibis",
			ActionID:  "ev-alibis",
			Reasoning: "Cheapest action with the highest information gain",
		},
		"all_evaluations": []models.Evaluation{
			{Action: "Check the alibis", ActionID: "ev-alibis", GCost: 1, HCost: 2, InfoGain: 1.58, FCost: 3},
			{Action: "Search the study", ActionID: "ev-study", GCost: 2, HCost: 3, InfoGain: 1.0, FCost: 5},
		},
	})
}

func (s *solverStub) handleMinimax(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w) {
		return
	}
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.t.Errorf("decode minimax request: %v", err)
	}
	s.mu.Lock()
	s.lastMinimax = body
	s.mu.Unlock()
	writeJSON(w, map[string]any{
		"best_question": models.QuestionSuggestion{
			Question:   "Where were you at midnight?",
			QuestionID: "q-midnight",
			Reasoning:  "Maximizes worst-case information",
		},
		"all_evaluations": []models.QuestionEvaluation{
			{Question: "Where were you at midnight?", QuestionID: "q-midnight", Score: 4.2},
			{Question: "Who locked the ballroom?", QuestionID: "q-ballroom", Score: 1.7},
		},
		"game_tree": json.RawMessage(`{"root":{"question":"q-midnight"}}`),
	})
}

func (s *solverStub) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w) {
		return
	}
	var req struct {
		QuestionID string `json:"question_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID == "" {
		s.t.Errorf("ask request missing question_id: %v", err)
	}
	writeJSON(w, map[string]any{
		"result": models.InterrogationResult{
			Response:     "I was in the library all evening",
			ResponseType: models.ResponseLie,
			Utility:      -4.5,
		},
	})
}

func (s *solverStub) handleAccuse(w http.ResponseWriter, r *http.Request) {
	if s.takeFailure(w) {
		return
	}
	var req struct {
		SessionID string       `json:"session_id"`
		Guess     models.Guess `json:"guess"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Errorf("decode accuse request: %v", err)
	}
	solution := models.Guess{Suspect: "Miss Scarlet", Weapon: "Rope", Location: "Ballroom"}
	if req.Guess == solution {
		writeJSON(w, map[string]any{"correct": true, "solution": solution})
		return
	}
	writeJSON(w, map[string]any{"correct": false})
}

// testLookupEnv binds the application to a free port, an in-memory database
// and the given stub solver URL.
func testLookupEnv(backendURL string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		switch key {
		case "GUMSHOE_ADDR":
			return "localhost:0", true
		case "GUMSHOE_BACKEND_URL":
			return backendURL + "/api", true
		case "GUMSHOE_SQLITE_URL":
			return ":memory:", true
		default:
			return "", false
		}
	}
}
