package main

import (
	"net/http"
)

// playStart creates a fresh game session and begins the game on the solver.
// Starting over replaces any previous session for this browser; the old
// session is evicted and its casefile rows stay keyed to the old session id,
// dropping out of view. A session whose backend start fails is evicted too,
// it can never be resolved from a cookie.
func (app *application) playStart(w http.ResponseWriter, r *http.Request) {
	previousID := app.sessionManager.GetString(r.Context(), gameSessionKey)

	session, err := app.games.New()
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if _, err = session.Start(r.Context()); err != nil {
		app.games.Evict(session.ID())
		data := app.newGamePageData(r)
		data.Notice = app.noticeForError(r, err)
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	app.sessionManager.Put(r.Context(), gameSessionKey, session.ID())
	if previousID != "" {
		app.games.Evict(previousID)
	}

	data := app.newGamePageData(r)
	app.render(w, r, http.StatusOK, "game", data)
}
