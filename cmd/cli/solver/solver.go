// Package solver exposes the solver service endpoints as CLI commands for
// poking at a running backend without the web UI.
package solver

import (
	"context"
	"fmt"
	"os"

	"github.com/mkjarl/gumshoe/internal/backend"
	"github.com/mkjarl/gumshoe/internal/models"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "solver",
	Title: "Solver operations",
}

func init() {
	for _, cmd := range []*cobra.Command{Start, Action, Suggest, Minimax, Ask, Accuse} {
		cmd.Flags().String("backend-url", defaultBackendURL(), "base URL of the solver service")
	}
	Action.Flags().String("session", "", "game session id from a previous start")
	Suggest.Flags().String("session", "", "game session id from a previous start")
	Accuse.Flags().String("session", "", "game session id from a previous start")
}

func defaultBackendURL() string {
	if url, ok := os.LookupEnv("GUMSHOE_BACKEND_URL"); ok {
		return url
	}
	return "http://localhost:5002/api"
}

func newClient(cmd *cobra.Command) *backend.Client {
	url, err := cmd.Flags().GetString("backend-url")
	if err != nil {
		url = defaultBackendURL()
	}
	return backend.NewClient(url)
}

func sessionID(cmd *cobra.Command) (string, bool) {
	id, err := cmd.Flags().GetString("session")
	if err != nil || id == "" {
		_, _ = fmt.Fprintln(os.Stderr, "missing --session, run the start command first")
		return "", false
	}
	return id, true
}

func printState(state models.GameState) {
	fmt.Printf("session:            %s\n", state.SessionID)
	fmt.Printf("total cost:         %d\n", state.TotalCost)
	fmt.Printf("actions taken:      %d\n", len(state.ActionsTaken))
	fmt.Printf("possible solutions: %d\n", state.PossibleSolutions)
	fmt.Printf("constraints:        %d\n", state.ConstraintCount)
	fmt.Printf("suspects:           %v\n", state.CurrentDomains.Suspect)
	fmt.Printf("weapons:            %v\n", state.CurrentDomains.Weapon)
	fmt.Printf("locations:          %v\n", state.CurrentDomains.Location)
	for _, action := range state.AvailableActions {
		fmt.Printf("  %s: %s (cost %d)\n", action.ID, action.Action, action.Cost)
	}
}

var Start = &cobra.Command{
	Use:     "start [session-id]",
	GroupID: "solver",
	Short:   "Start a game",
	Long:    `Starts a new game session on the solver service`,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := fmt.Sprintf("cli_%d", os.Getpid())
		if len(args) == 1 {
			id = args[0]
		}
		state, err := newClient(cmd).Start(context.Background(), id)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "start error: %v\n", err)
			return
		}
		printState(*state)
	},
}

var Action = &cobra.Command{
	Use:     "action [evidence-id]",
	GroupID: "solver",
	Short:   "Take an evidence action",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, ok := sessionID(cmd)
		if !ok {
			return
		}
		result, err := newClient(cmd).TakeAction(context.Background(), id, args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "action error: %v\n", err)
			return
		}
		fmt.Printf("%s: %s\n", result.Evidence.Action, result.Evidence.Clue)
		for _, step := range result.Steps {
			fmt.Printf("  [%s] %s\n", step.Algorithm, step.Message)
		}
		printState(result.GameState)
	},
}

var Suggest = &cobra.Command{
	Use:     "suggest",
	GroupID: "solver",
	Short:   "Suggest the next action",
	Long:    `Asks the solver's heuristic search for the best next evidence action`,
	Run: func(cmd *cobra.Command, _ []string) {
		id, ok := sessionID(cmd)
		if !ok {
			return
		}
		result, err := newClient(cmd).Suggest(context.Background(), id)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "suggest error: %v\n", err)
			return
		}
		fmt.Printf("%s (%s)\n%s\n", result.Suggestion.Action, result.Suggestion.ActionID, result.Suggestion.Reasoning)
		for _, eval := range result.Evaluations {
			fmt.Printf("  %s: f=%.2f g=%.2f h=%.2f gain=%.2f\n",
				eval.Action, eval.FCost, eval.GCost, eval.HCost, eval.InfoGain)
		}
	},
}

var Minimax = &cobra.Command{
	Use:     "minimax",
	GroupID: "solver",
	Short:   "Suggest the best question",
	Long:    `Asks the solver's adversarial search for the best interrogation question`,
	Run: func(cmd *cobra.Command, _ []string) {
		result, err := newClient(cmd).Minimax(context.Background())
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "minimax error: %v\n", err)
			return
		}
		fmt.Printf("%s (%s)\n%s\n", result.BestQuestion.Question, result.BestQuestion.QuestionID,
			result.BestQuestion.Reasoning)
		for _, eval := range result.Evaluations {
			fmt.Printf("  %s: %.2f\n", eval.Question, eval.Score)
		}
		if len(result.GameTree) > 0 {
			fmt.Printf("%s\n", result.GameTree)
		}
	},
}

var Ask = &cobra.Command{
	Use:     "ask [question-id]",
	GroupID: "solver",
	Short:   "Interrogate the witness",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result, err := newClient(cmd).Ask(context.Background(), args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "ask error: %v\n", err)
			return
		}
		fmt.Printf("%s\n(%s, utility %.2f)\n", result.Response, result.ResponseType, result.Utility)
	},
}

var Accuse = &cobra.Command{
	Use:     "accuse [suspect] [weapon] [location]",
	GroupID: "solver",
	Short:   "Make an accusation",
	Args:    cobra.ExactArgs(3), //nolint:mnd // suspect, weapon, location
	Run: func(cmd *cobra.Command, args []string) {
		id, ok := sessionID(cmd)
		if !ok {
			return
		}
		guess := models.Guess{Suspect: args[0], Weapon: args[1], Location: args[2]}
		verdict, err := newClient(cmd).Accuse(context.Background(), id, guess)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "accuse error: %v\n", err)
			return
		}
		if verdict.Correct {
			fmt.Println("Correct! Case closed.")
			if verdict.Solution != nil {
				fmt.Printf("It was %s with the %s in the %s.\n",
					verdict.Solution.Suspect, verdict.Solution.Weapon, verdict.Solution.Location)
			}
			return
		}
		fmt.Println("Wrong accusation. The investigation continues.")
	},
}
