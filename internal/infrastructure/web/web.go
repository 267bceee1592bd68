// Package web serves the landing, onboarding and dashboard pages. The pages are
// plain HTML and script embedded in the binary. The learner profile lives only
// in the browser's localStorage.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
)

//go:embed static
var static embed.FS

var pages = map[string]string{
	"/":           "index.html",
	"/onboarding": "onboarding.html",
	"/dashboard":  "dashboard.html",
}

func RegisterRoutes(r *mux.Router) {
	assets, err := fs.Sub(static, "static")
	if err != nil {
		panic(err) // embed layout is fixed at compile time
	}

	for path, name := range pages {
		r.HandleFunc(path, servePage(assets, name)).Methods(http.MethodGet, http.MethodHead)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(assets))))
}

func servePage(assets fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFileFS(w, r, assets, name)
	}
}
