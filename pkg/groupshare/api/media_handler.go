package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groupshare/groupshare/pkg/groupshare"
)

// MediaHandler handles HTTP requests addressing media directly by id.
type MediaHandler struct {
	service groupshare.Service
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(service groupshare.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// Routes returns the routes for media.
func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Delete("/{mediaID}", h.DeleteMedia)
	r.Get("/{mediaID}/download", h.DownloadMedia)

	return r
}

// DeleteMedia removes one media blob and its metadata row.
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := parseID(w, r, "mediaID")
	if !ok {
		return
	}

	if err := h.service.DeleteMedia(r.Context(), mediaID); err != nil {
		if errors.Is(err, groupshare.ErrMediaNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		slog.Error("Failed to delete media", "media_id", mediaID, "err", err)
		http.Error(w, "failed to delete media", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadMedia streams the media bytes back with an attachment
// disposition carrying the original file name.
func (h *MediaHandler) DownloadMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := parseID(w, r, "mediaID")
	if !ok {
		return
	}

	media, body, err := h.service.DownloadMedia(r.Context(), mediaID)
	if err != nil {
		if errors.Is(err, groupshare.ErrMediaNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		slog.Error("Failed to download media", "media_id", mediaID, "err", err)
		http.Error(w, "failed to download media", http.StatusInternalServerError)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", media.FileName))
	w.Header().Set("Content-Type", media.FileType)
	if _, err := io.Copy(w, body); err != nil {
		// Headers are already written; nothing left but to log.
		slog.Error("Failed to stream media", "media_id", mediaID, "err", err)
	}
}
