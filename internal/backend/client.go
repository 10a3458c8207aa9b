// Package backend implements the JSON-over-POST client for the remote
// detective-game solver service. The CSP propagation, A* search and minimax
// reasoning all live on the server side; this client only carries requests
// and decodes the reported results.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkjarl/gumshoe/internal/errors"
	"github.com/mkjarl/gumshoe/internal/models"
)

// ErrBackend marks an application-level failure: the backend answered with
// success=false. Transport errors do not match it.
var ErrBackend = errors.NewSentinel("backend reported failure")

// FailureError carries the message field of a success=false payload for
// user-visible notices. It matches ErrBackend with errors.Is.
type FailureError struct {
	Message string
}

func (e *FailureError) Error() string {
	if e.Message == "" {
		return "backend reported failure"
	}
	return e.Message
}

func (e *FailureError) Unwrap() error {
	return ErrBackend
}

const defaultTimeout = 30 * time.Second

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a solver client for the given base URL, e.g.
// "http://localhost:5002/api".
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
	}
}

// envelope is the top-level discriminant every backend response carries.
// message is only populated on failure and may be empty.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) failure() (bool, string) {
	return !e.Success, e.Message
}

type response interface {
	failure() (bool, string)
}

// post performs one round trip: encode reqBody, POST it, decode the JSON
// payload into out and translate success=false into ErrBackend.
func (c *Client) post(ctx context.Context, path string, reqBody any, out response) error {
	var (
		err     error
		encoded []byte
	)
	if encoded, err = json.Marshal(reqBody); err != nil {
		return errors.Wrap(err, "marshal request", slog.String("path", path))
	}
	var req *http.Request
	if req, err = http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(encoded),
	); err != nil {
		return errors.Wrap(err, "create request", slog.String("path", path))
	}
	req.Header.Set("Content-Type", "application/json")

	var resp *http.Response
	if resp, err = c.httpClient.Do(req); err != nil {
		return errors.Wrap(err, "do request", slog.String("path", path))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var body []byte
	if body, err = io.ReadAll(resp.Body); err != nil {
		return errors.Wrap(err, "read response body", slog.String("path", path))
	}
	// The backend pairs failure payloads with non-2xx statuses, so decode
	// before checking the status to get at the message field.
	if err = json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decode response",
			slog.String("path", path), slog.Int("status", resp.StatusCode))
	}
	if failed, message := out.failure(); failed {
		return errors.Wrap(&FailureError{Message: message}, "backend failure",
			slog.String("path", path), slog.Int("status", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status code",
			slog.String("path", path), slog.Int("status", resp.StatusCode))
	}
	return nil
}

type startResponse struct {
	envelope
	GameState models.GameState `json:"game_state"`
}

// Start begins a new game session on the backend.
func (c *Client) Start(ctx context.Context, sessionID string) (*models.GameState, error) {
	reqBody := struct {
		SessionID string `json:"session_id"`
	}{SessionID: sessionID}
	var resp startResponse
	if err := c.post(ctx, "/game/start", reqBody, &resp); err != nil {
		return nil, errors.Wrap(err, "start game")
	}
	return &resp.GameState, nil
}

// ActionResult is the outcome of one investigative action: the fresh
// snapshot, the revealed evidence and the constraint-propagation steps
// when the backend reports them.
type ActionResult struct {
	GameState models.GameState
	Evidence  models.Evidence
	Steps     []models.Step
}

type actionResponse struct {
	envelope
	GameState models.GameState `json:"game_state"`
	Evidence  models.Evidence  `json:"evidence"`
	CSPResult struct {
		Steps []models.Step `json:"steps"`
	} `json:"csp_result"`
}

// TakeAction spends the given evidence action and returns the updated state.
func (c *Client) TakeAction(ctx context.Context, sessionID, evidenceID string) (*ActionResult, error) {
	reqBody := struct {
		SessionID  string `json:"session_id"`
		EvidenceID string `json:"evidence_id"`
	}{SessionID: sessionID, EvidenceID: evidenceID}
	var resp actionResponse
	if err := c.post(ctx, "/game/action", reqBody, &resp); err != nil {
		return nil, errors.Wrap(err, "take action", slog.String("evidence_id", evidenceID))
	}
	return &ActionResult{
		GameState: resp.GameState,
		Evidence:  resp.Evidence,
		Steps:     resp.CSPResult.Steps,
	}, nil
}

// SuggestResult is the heuristic recommendation plus the ranked candidate
// evaluations. It never mutates game state.
type SuggestResult struct {
	Suggestion  models.Suggestion
	Evaluations []models.Evaluation
}

type suggestResponse struct {
	envelope
	Suggestion     models.Suggestion   `json:"suggestion"`
	AllEvaluations []models.Evaluation `json:"all_evaluations"`
}

// Suggest asks the backend's heuristic search for the best next action.
func (c *Client) Suggest(ctx context.Context, sessionID string) (*SuggestResult, error) {
	reqBody := struct {
		SessionID string `json:"session_id"`
	}{SessionID: sessionID}
	var resp suggestResponse
	if err := c.post(ctx, "/ai/suggest", reqBody, &resp); err != nil {
		return nil, errors.Wrap(err, "suggest action")
	}
	return &SuggestResult{
		Suggestion:  resp.Suggestion,
		Evaluations: resp.AllEvaluations,
	}, nil
}

// MinimaxResult is the adversarial recommendation for the next interrogation
// question with its ranked alternatives and the explored game tree.
type MinimaxResult struct {
	BestQuestion models.QuestionSuggestion
	Evaluations  []models.QuestionEvaluation
	GameTree     models.GameTree
}

type minimaxResponse struct {
	envelope
	BestQuestion   models.QuestionSuggestion   `json:"best_question"`
	AllEvaluations []models.QuestionEvaluation `json:"all_evaluations"`
	GameTree       models.GameTree             `json:"game_tree"`
}

// Minimax asks the backend's adversarial search for the best question.
//
// The request body is an empty object: unlike every other endpoint, the
// server keys its adversary state without a session_id. Known asymmetry in
// the server contract, do not add the field without confirming server
// expectations.
func (c *Client) Minimax(ctx context.Context) (*MinimaxResult, error) {
	var resp minimaxResponse
	if err := c.post(ctx, "/ai/minimax", struct{}{}, &resp); err != nil {
		return nil, errors.Wrap(err, "minimax question")
	}
	return &MinimaxResult{
		BestQuestion: resp.BestQuestion,
		Evaluations:  resp.AllEvaluations,
		GameTree:     resp.GameTree,
	}, nil
}

type askResponse struct {
	envelope
	Result models.InterrogationResult `json:"result"`
}

// Ask poses an interrogation question and returns the witness response with
// its truth/lie/uncertain classification and utility value.
func (c *Client) Ask(ctx context.Context, questionID string) (*models.InterrogationResult, error) {
	reqBody := struct {
		QuestionID string `json:"question_id"`
	}{QuestionID: questionID}
	var resp askResponse
	if err := c.post(ctx, "/interrogation/ask", reqBody, &resp); err != nil {
		return nil, errors.Wrap(err, "ask question", slog.String("question_id", questionID))
	}
	return &resp.Result, nil
}

type accuseResponse struct {
	envelope
	Correct  bool          `json:"correct"`
	Solution *models.Guess `json:"solution"`
}

// Accuse submits a three-field guess and returns the verdict. The true
// solution is only reported when the guess is correct.
func (c *Client) Accuse(ctx context.Context, sessionID string, guess models.Guess) (*models.Verdict, error) {
	reqBody := struct {
		SessionID string       `json:"session_id"`
		Guess     models.Guess `json:"guess"`
	}{SessionID: sessionID, Guess: guess}
	var resp accuseResponse
	if err := c.post(ctx, "/game/accuse", reqBody, &resp); err != nil {
		return nil, errors.Wrap(err, "accuse")
	}
	return &models.Verdict{
		Correct:  resp.Correct,
		Solution: resp.Solution,
	}, nil
}
