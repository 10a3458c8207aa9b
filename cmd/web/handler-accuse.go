package main

import (
	"net/http"

	"github.com/mkjarl/gumshoe/internal/models"
)

// playAccuse submits the three-field guess and renders the verdict. An
// accusation is allowed at any point in a started game, there is no
// solved-state gate.
func (app *application) playAccuse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	guess := models.Guess{
		Suspect:  r.PostForm.Get("suspect"),
		Weapon:   r.PostForm.Get("weapon"),
		Location: r.PostForm.Get("location"),
	}
	if guess.Suspect == "" || guess.Weapon == "" || guess.Location == "" {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	data := app.newGamePageData(r)

	session, ok := app.currentSession(r)
	if !ok {
		data.Notice = "Start an investigation first."
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	verdict, err := session.Accuse(r.Context(), guess)
	if err != nil {
		data.Notice = app.noticeForError(r, err)
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	data.Verdict = verdict
	app.render(w, r, http.StatusOK, "game", data)
}
