package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/groupshare/groupshare/pkg/groupshare"
)

// AlbumHandler handles HTTP requests for albums and their media.
type AlbumHandler struct {
	service groupshare.Service
}

// NewAlbumHandler creates a new album handler.
func NewAlbumHandler(service groupshare.Service) *AlbumHandler {
	return &AlbumHandler{service: service}
}

// Routes returns the routes for albums.
func (h *AlbumHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateAlbum)
	r.Delete("/{albumID}", h.DeleteAlbum)
	r.Post("/{albumID}/media", h.UploadMedia)
	r.Get("/{albumID}/media", h.ListMedia)

	return r
}

// CreateAlbumRequest is the request body for creating an album.
type CreateAlbumRequest struct {
	Name string `json:"name"`
}

// AlbumResponse is the response body for a created album.
type AlbumResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// MediaResponse is the response body for one media entry.
type MediaResponse struct {
	MediaID    string    `json:"mediaId"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	FileSize   int64     `json:"fileSize"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ListMediaResponse is the response body for listing an album's media.
type ListMediaResponse struct {
	AlbumID string          `json:"albumId"`
	Media   []MediaResponse `json:"media"`
}

func newMediaResponse(m *groupshare.Media) MediaResponse {
	return MediaResponse{
		MediaID:    m.ID.String(),
		FileName:   m.FileName,
		FileType:   m.FileType,
		FileSize:   m.FileSize,
		UploadedAt: m.UploadedAt,
	}
}

// CreateAlbum creates a new album.
func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var req CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	album, err := h.service.CreateAlbum(r.Context(), groupshare.CreateAlbumRequest{Name: req.Name})
	if err != nil {
		switch {
		case errors.Is(err, groupshare.ErrInvalidAlbumName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, groupshare.ErrAlbumExists):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			slog.Error("Failed to create album", "err", err)
			http.Error(w, "failed to create album", http.StatusInternalServerError)
		}
		return
	}

	slog.Info("Album created", "album_id", album.ID, "name", album.Name)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, AlbumResponse{ID: album.ID.String(), CreatedAt: album.CreatedAt})
}

// DeleteAlbum deletes an album, its media rows and its storage namespace.
func (h *AlbumHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	albumID, ok := parseID(w, r, "albumID")
	if !ok {
		return
	}

	if err := h.service.DeleteAlbum(r.Context(), albumID); err != nil {
		var storageErr *groupshare.StorageError
		switch {
		case errors.Is(err, groupshare.ErrAlbumNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &storageErr):
			slog.Error("Failed to remove album storage", "album_id", albumID, "err", err)
			http.Error(w, "failed to delete album", http.StatusInternalServerError)
		default:
			slog.Error("Failed to delete album", "album_id", albumID, "err", err)
			http.Error(w, "failed to delete album", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadMedia stores one multipart file into an album.
func (h *AlbumHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	albumID, ok := parseID(w, r, "albumID")
	if !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	media, err := h.service.UploadMedia(r.Context(), groupshare.UploadMediaRequest{
		AlbumID:     albumID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	})
	if err != nil {
		switch {
		case errors.Is(err, groupshare.ErrAlbumNotFound), errors.Is(err, groupshare.ErrAlbumBucketMissing):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, groupshare.ErrMediaExists):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, groupshare.ErrUnsupportedMediaType):
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		default:
			slog.Error("Failed to upload media", "album_id", albumID, "file_name", header.Filename, "err", err)
			http.Error(w, "failed to upload media", http.StatusInternalServerError)
		}
		return
	}

	slog.Info("Media uploaded", "media_id", media.ID, "album_id", albumID, "file_name", media.FileName)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newMediaResponse(media))
}

// ListMedia lists an album's media, reconstructed from the blob store.
// Unknown albums yield an empty list, not an error.
func (h *AlbumHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	albumID, ok := parseID(w, r, "albumID")
	if !ok {
		return
	}

	list, err := h.service.ListMedia(r.Context(), albumID)
	if err != nil {
		slog.Error("Failed to list media", "album_id", albumID, "err", err)
		http.Error(w, "failed to list media", http.StatusInternalServerError)
		return
	}

	resp := ListMediaResponse{AlbumID: albumID.String(), Media: make([]MediaResponse, 0, len(list))}
	for _, media := range list {
		resp.Media = append(resp.Media, newMediaResponse(media))
	}
	render.JSON(w, r, resp)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, param)
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid "+param, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
