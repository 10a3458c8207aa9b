package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkjarl/gumshoe/internal/backend"
	"github.com/mkjarl/gumshoe/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Start(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/game/start", r.URL.Path)

		var reqBody map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		require.Equal(t, "session_123", reqBody["session_id"])

		_, _ = w.Write([]byte(`{
			"success": true,
			"game_state": {
				"session_id": "session_123",
				"total_cost": 0,
				"possible_solutions": 27,
				"current_domains": {
					"suspect": ["Professor Plum", "Miss Scarlet", "Colonel Mustard"],
					"weapon": ["Knife", "Rope", "Revolver"],
					"location": ["Library", "Kitchen", "Ballroom"]
				}
			}
		}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	state, err := client.Start(context.Background(), "session_123")
	require.NoError(t, err)
	require.Equal(t, 27, state.PossibleSolutions)
	require.Len(t, state.CurrentDomains.Suspect, 3)
	require.False(t, state.Solved())
}

func TestClient_TakeAction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/game/action", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"game_state": {"total_cost": 15, "possible_solutions": 1},
			"evidence": {"id": "ev-1", "action": "Examine the study", "clue": "It wasn't the Knife", "cost": 15},
			"csp_result": {"steps": [
				{"type": "elimination", "algorithm": "CSP - Arc Consistency", "message": "Eliminated Knife from weapon", "details": "Clue indicated"}
			]}
		}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	result, err := client.TakeAction(context.Background(), "session_123", "ev-1")
	require.NoError(t, err)
	require.Equal(t, "ev-1", result.Evidence.ID)
	require.Equal(t, 15, result.GameState.TotalCost)
	require.True(t, result.GameState.Solved())
	require.Len(t, result.Steps, 1)
	require.Equal(t, "elimination", result.Steps[0].Type)
}

func TestClient_Minimax_omitsSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ai/minimax", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		// The adversarial endpoint takes an empty object, no session_id.
		assert.JSONEq(t, `{}`, string(body))

		_, _ = w.Write([]byte(`{
			"success": true,
			"best_question": {"question": "Where were you?", "question_id": "q-2"},
			"all_evaluations": [
				{"question": "Where were you?", "question_id": "q-2", "score": 0.9},
				{"question": "Did you know the victim?", "question_id": "q-1", "score": 0.4}
			],
			"game_tree": {"depth": 2}
		}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	result, err := client.Minimax(context.Background())
	require.NoError(t, err)
	require.Equal(t, "q-2", result.BestQuestion.QuestionID)
	require.Len(t, result.Evaluations, 2)
	require.JSONEq(t, `{"depth": 2}`, string(result.GameTree))
}

func TestClient_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/interrogation/ask", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"result": {"response": "I was in the Library all night.", "response_type": "lie", "utility": 0.75}
		}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	result, err := client.Ask(context.Background(), "q-1")
	require.NoError(t, err)
	require.Equal(t, models.ResponseLie, result.ResponseType)
	require.InDelta(t, 0.75, result.Utility, 0.001)
}

func TestClient_Accuse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/game/accuse", r.URL.Path)

		var reqBody struct {
			SessionID string       `json:"session_id"`
			Guess     models.Guess `json:"guess"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		require.Equal(t, "Miss Scarlet", reqBody.Guess.Suspect)

		_, _ = w.Write([]byte(`{
			"success": true,
			"correct": true,
			"solution": {"suspect": "Miss Scarlet", "weapon": "Rope", "location": "Ballroom"}
		}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	verdict, err := client.Accuse(context.Background(), "session_123", models.Guess{
		Suspect:  "Miss Scarlet",
		Weapon:   "Rope",
		Location: "Ballroom",
	})
	require.NoError(t, err)
	require.True(t, verdict.Correct)
	require.NotNil(t, verdict.Solution)
	require.Equal(t, "Ballroom", verdict.Solution.Location)
}

func TestClient_backendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success": false, "message": "No active game found"}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	_, err := client.Start(context.Background(), "session_123")
	require.ErrorIs(t, err, backend.ErrBackend)
	require.Contains(t, err.Error(), "No active game found")

	var failure *backend.FailureError
	require.ErrorAs(t, err, &failure)
	require.Equal(t, "No active game found", failure.Message)
}

func TestClient_transportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // refuse connections

	client := backend.NewClient(srv.URL)
	_, err := client.Suggest(context.Background(), "session_123")
	require.Error(t, err)
	require.NotErrorIs(t, err, backend.ErrBackend)
}
