package main

import (
	"net/http"
)

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := app.newGamePageData(r)

	app.render(w, r, http.StatusOK, "game", data)
}
