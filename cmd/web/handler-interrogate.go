package main

import (
	"log/slog"
	"net/http"

	"github.com/mkjarl/gumshoe/internal/errors"
)

// playInterrogate poses a question to the witness and records the response
// in the casefile transcript. The solver keys its witness state outside the
// game session, so only the question id goes over the wire; the session is
// still needed here to file the transcript under it.
func (app *application) playInterrogate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	questionID := r.PostForm.Get("question_id")
	if questionID == "" {
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

	result, err := session.Ask(r.Context(), questionID)
	if err != nil {
		data.Notice = app.noticeForError(r, err)
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	if err = app.casefiles.AppendTranscript(r.Context(), session.ID(), questionID, *result); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "record transcript", errors.SlogError(err))
	}

	// Rebuild so the fresh transcript row shows up in the log.
	data = app.newGamePageData(r)
	data.Interrogation = result
	app.render(w, r, http.StatusOK, "game", data)
}
