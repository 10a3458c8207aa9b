package main

import (
	"log/slog"
	"net/http"

	"github.com/mkjarl/gumshoe/internal/backend"
	"github.com/mkjarl/gumshoe/internal/errors"
	"github.com/mkjarl/gumshoe/internal/game"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(http.StatusText(status), "method", method, "uri", uri, slog.Any("formdata", r.Form))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// noticeForError translates an operation error into a notice the page can
// show without losing the current game view. Every failing round trip is
// surfaced this way; the snapshot itself is never touched on failure.
func (app *application) noticeForError(r *http.Request, err error) string {
	var failure *backend.FailureError
	switch {
	case errors.As(err, &failure):
		if failure.Message != "" {
			return failure.Message
		}
		return "The solver could not complete that request."
	case errors.Is(err, game.ErrStale):
		return "A newer update already arrived. Showing the latest state."
	case errors.Is(err, game.ErrNotStarted):
		return "Start an investigation first."
	default:
		app.logger.LogAttrs(r.Context(), slog.LevelError, "operation failed",
			slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
		return "Could not reach the solver. Please try again."
	}
}
