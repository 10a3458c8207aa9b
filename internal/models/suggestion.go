package models

import "encoding/json"

// Suggestion is the heuristic search recommendation for the next action.
type Suggestion struct {
	Action    string `json:"action"`
	ActionID  string `json:"action_id"`
	Reasoning string `json:"reasoning"`
}

// Evaluation is the per-candidate scoring of the heuristic search. FCost is
// the combined score the candidates are ranked by, lower is better.
type Evaluation struct {
	Action   string  `json:"action"`
	ActionID string  `json:"action_id"`
	GCost    float64 `json:"g_cost"`
	HCost    float64 `json:"h_cost"`
	InfoGain float64 `json:"info_gain"`
	FCost    float64 `json:"f_cost"`
}

// QuestionSuggestion is the adversarial search recommendation for the next
// interrogation question.
type QuestionSuggestion struct {
	Question   string `json:"question"`
	QuestionID string `json:"question_id"`
	Reasoning  string `json:"reasoning"`
}

// QuestionEvaluation scores one candidate question in the adversarial search.
type QuestionEvaluation struct {
	Question   string  `json:"question"`
	QuestionID string  `json:"question_id"`
	Score      float64 `json:"score"`
}

// GameTree is the backend's rendering of the explored adversarial tree.
// The client displays it without interpreting its structure.
type GameTree = json.RawMessage

// Interrogation response classifications reported by the backend.
const (
	ResponseTruth     = "truth"
	ResponseLie       = "lie"
	ResponseUncertain = "uncertain"
)

// InterrogationResult is the witness response to one question.
type InterrogationResult struct {
	Response     string  `json:"response"`
	ResponseType string  `json:"response_type"`
	Utility      float64 `json:"utility"`
}

// Transcript is one asked question together with the witness response,
// as stored in the casefile.
type Transcript struct {
	ID           int64   `db:"id"`
	QuestionID   string  `db:"question_id"`
	Response     string  `db:"response"`
	ResponseType string  `db:"response_type"`
	Utility      float64 `db:"utility"`
}
