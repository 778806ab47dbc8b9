package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/groupshare/groupshare/pkg/groupshare"
)

// NewRouter mounts the album and media handlers under /api and adds the
// health routes.
func NewRouter(service groupshare.Service) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", healthz)
	r.Get("/healthz/ready", healthz)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/albums", NewAlbumHandler(service).Routes())
		r.Mount("/media", NewMediaHandler(service).Routes())
	})

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, http.StatusText(http.StatusOK))
}
