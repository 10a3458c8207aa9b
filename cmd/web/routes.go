package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/mkjarl/gumshoe/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	staticFS, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(staticFS))
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", fileServer)))

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)

	mux.Handle("/", http.HandlerFunc(app.notFound))
	mux.Handle("GET /{$}", session.ThenFunc(app.home))

	mux.Handle("POST /play/start", session.ThenFunc(app.playStart))
	mux.Handle("POST /play/action", session.ThenFunc(app.playAction))
	mux.Handle("POST /play/suggest", session.ThenFunc(app.playSuggest))
	mux.Handle("POST /play/minimax", session.ThenFunc(app.playMinimax))
	mux.Handle("POST /play/interrogate", session.ThenFunc(app.playInterrogate))
	mux.Handle("POST /play/accuse", session.ThenFunc(app.playAccuse))

	mux.Handle("GET /api/healthy", http.HandlerFunc(app.healthy))

	return app.recoverPanic(app.logRequest(app.secureHeaders(mux)))
}
