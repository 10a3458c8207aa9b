package main

import (
	"net/http"
)

// playSuggest asks the solver's heuristic search for the best next action.
// The result is display only, the game snapshot is untouched.
func (app *application) playSuggest(w http.ResponseWriter, r *http.Request) {
	data := app.newGamePageData(r)

	session, ok := app.currentSession(r)
	if !ok {
		data.Notice = "Start an investigation first."
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	result, err := session.Suggest(r.Context())
	if err != nil {
		data.Notice = app.noticeForError(r, err)
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	data.Suggestion = result
	app.render(w, r, http.StatusOK, "game", data)
}
