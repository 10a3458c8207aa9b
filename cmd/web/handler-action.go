package main

import (
	"log/slog"
	"net/http"

	"github.com/mkjarl/gumshoe/internal/errors"
)

// playAction spends one evidence action. The snapshot only advances on a
// successful, non-stale response; any failure keeps the previous view and
// surfaces a notice so the player can retry.
func (app *application) playAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	evidenceID := r.PostForm.Get("evidence_id")
	if evidenceID == "" {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	session, ok := app.currentSession(r)
	if !ok {
		data := app.newGamePageData(r)
		data.Notice = "Start an investigation first."
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	result, err := session.TakeAction(r.Context(), evidenceID)
	if err != nil {
		data := app.newGamePageData(r)
		data.Notice = app.noticeForError(r, err)
		app.render(w, r, http.StatusOK, "game", data)
		return
	}

	if err = app.casefiles.AppendEvidence(r.Context(), session.ID(), result.Evidence); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "record evidence", errors.SlogError(err))
	}

	data := app.newGamePageData(r)
	data.Steps = result.Steps
	app.render(w, r, http.StatusOK, "game", data)
}
