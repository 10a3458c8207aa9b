package models

// GameState is the most recent snapshot reported by the solver backend.
// The backend owns it entirely: every successful round trip replaces the
// whole snapshot, nothing is merged field by field.
type GameState struct {
	SessionID         string     `json:"session_id"`
	TotalCost         int        `json:"total_cost"`
	ActionsTaken      []Evidence `json:"actions_taken"`
	PossibleSolutions int        `json:"possible_solutions"`
	ConstraintCount   int        `json:"constraint_count"`
	CurrentDomains    Domains    `json:"current_domains"`
	AvailableActions  []Evidence `json:"available_actions"`
}

// Solved reports the advisory solved condition: exactly one possible solution
// remains. Nothing is enforced based on it, the player can keep investigating
// or accuse at any time.
func (s GameState) Solved() bool {
	return s.PossibleSolutions == 1
}

// Evidence is a discrete investigative action with an associated cost and a
// resulting clue. Beyond these display fields it is opaque to the client.
type Evidence struct {
	ID     string `json:"id" db:"evidence_id"`
	Action string `json:"action" db:"action"`
	Clue   string `json:"clue" db:"clue"`
	Cost   int    `json:"cost" db:"cost"`
}

// Domains holds the remaining possible values for each solution category.
// A category with a single remaining value is solved.
type Domains struct {
	Suspect  []string `json:"suspect"`
	Weapon   []string `json:"weapon"`
	Location []string `json:"location"`
}

// Solved reports whether every category has been narrowed down to one value.
func (d Domains) Solved() bool {
	return len(d.Suspect) == 1 && len(d.Weapon) == 1 && len(d.Location) == 1
}

// Step is one constraint-propagation step reported by the backend for
// visualization, e.g. an AC-3 elimination or a forward-checking deduction.
type Step struct {
	Type      string `json:"type"`
	Algorithm string `json:"algorithm"`
	Message   string `json:"message"`
	Details   string `json:"details"`
}

// Guess is a three-field accusation.
type Guess struct {
	Suspect  string `json:"suspect"`
	Weapon   string `json:"weapon"`
	Location string `json:"location"`
}

// Verdict is the backend's judgement of an accusation. Solution is only
// reported for a correct guess.
type Verdict struct {
	Correct  bool   `json:"correct"`
	Solution *Guess `json:"solution,omitempty"`
}

// Case is the fixed enumeration of candidate values that populates the
// accusation form once a game has started.
type Case struct {
	Suspects  []string
	Weapons   []string
	Locations []string
}

// DefaultCase matches the backend's three-by-three-by-three setup, 27
// possible solutions at the start of a game.
func DefaultCase() Case {
	return Case{
		Suspects:  []string{"Professor Plum", "Miss Scarlet", "Colonel Mustard"},
		Weapons:   []string{"Knife", "Rope", "Revolver"},
		Locations: []string{"Library", "Kitchen", "Ballroom"},
	}
}
