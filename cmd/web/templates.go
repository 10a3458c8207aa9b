package main

import (
	"log/slog"
	"net/http"

	"github.com/mkjarl/gumshoe/internal/backend"
	"github.com/mkjarl/gumshoe/internal/errors"
	"github.com/mkjarl/gumshoe/internal/game"
	"github.com/mkjarl/gumshoe/internal/models"
)

type BaseTemplateData struct {
	CurrentPath string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: currentPath(r.Context()),
	}
}

// domainView flattens one solution category for rendering.
type domainView struct {
	Name   string
	Values []string
	Solved bool
}

// gamePageData carries everything the game page renders. The per-operation
// result panels (Suggestion, Minimax, Interrogation, Verdict) are only set
// by the handler whose operation produced them.
type gamePageData struct {
	BaseTemplateData
	Started       bool
	State         models.GameState
	Case          models.Case
	Domains       []domainView
	History       []models.Evidence
	Transcripts   []models.Transcript
	Steps         []models.Step
	Suggestion    *backend.SuggestResult
	Minimax       *backend.MinimaxResult
	Interrogation *models.InterrogationResult
	Verdict       *models.Verdict
	Notice        string
}

func domainViews(domains models.Domains) []domainView {
	return []domainView{
		{Name: "Suspect", Values: domains.Suspect, Solved: len(domains.Suspect) == 1},
		{Name: "Weapon", Values: domains.Weapon, Solved: len(domains.Weapon) == 1},
		{Name: "Location", Values: domains.Location, Solved: len(domains.Location) == 1},
	}
}

// currentSession resolves the game session stored in the browser session
// cookie. ok is false when no game has been started or the server has
// restarted since.
func (app *application) currentSession(r *http.Request) (*game.Session, bool) {
	id := app.sessionManager.GetString(r.Context(), gameSessionKey)
	if id == "" {
		return nil, false
	}
	return app.games.Get(id)
}

// newGamePageData builds the page data from the latest session snapshot and
// the persisted casefile. A missing or unstarted session renders the
// pre-game briefing.
func (app *application) newGamePageData(r *http.Request) gamePageData {
	data := gamePageData{
		BaseTemplateData: newBaseTemplateData(r),
		Case:             models.DefaultCase(),
	}

	session, ok := app.currentSession(r)
	if !ok {
		return data
	}
	state, ok := session.Snapshot()
	if !ok {
		return data
	}
	data.Started = true
	data.State = state
	data.Domains = domainViews(state.CurrentDomains)

	// Casefile reads are best effort, a read failure should not take down
	// the whole page render.
	ctx := r.Context()
	history, err := app.casefiles.Evidence(ctx, session.ID())
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "load evidence history", errors.SlogError(err))
	}
	data.History = history

	transcripts, err := app.casefiles.Transcripts(ctx, session.ID())
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "load transcripts", errors.SlogError(err))
	}
	data.Transcripts = transcripts

	return data
}
