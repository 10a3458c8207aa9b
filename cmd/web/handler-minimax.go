package main

import (
	"net/http"
)

// playMinimax asks the solver's adversarial search for the best
// interrogation question. Display only, the game snapshot is untouched.
func (app *application) playMinimax(w http.ResponseWriter, r *http.Request) {
	data := app.newGamePageData(r)

	session, ok := app.currentSession(r)
	if !ok {
		data.Notice = "Start an investigation first."
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	result, err := session.Minimax(r.Context())
	if err != nil {
		data.Notice = app.noticeForError(r, err)
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	data.Minimax = result
	app.render(w, r, http.StatusOK, "game", data)
}
