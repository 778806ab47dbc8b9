// Package memory provides an in-memory repository implementation,
// intended for tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/groupshare/groupshare/pkg/groupshare"
)

// Repository is an in-memory implementation of groupshare.Repository.
type Repository struct {
	mu     sync.RWMutex
	albums map[uuid.UUID]*groupshare.Album
	media  map[uuid.UUID]*groupshare.Media
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{
		albums: make(map[uuid.UUID]*groupshare.Album),
		media:  make(map[uuid.UUID]*groupshare.Media),
	}
}

func (r *Repository) CreateAlbum(ctx context.Context, album *groupshare.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.albums {
		if a.Name == album.Name {
			return groupshare.ErrAlbumExists
		}
	}

	copied := *album
	r.albums[album.ID] = &copied
	return nil
}

func (r *Repository) GetAlbum(ctx context.Context, id uuid.UUID) (*groupshare.Album, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	album, ok := r.albums[id]
	if !ok {
		return nil, groupshare.ErrAlbumNotFound
	}
	copied := *album
	return &copied, nil
}

func (r *Repository) GetAlbumByName(ctx context.Context, name string) (*groupshare.Album, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, album := range r.albums {
		if album.Name == name {
			copied := *album
			return &copied, nil
		}
	}
	return nil, groupshare.ErrAlbumNotFound
}

func (r *Repository) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.albums[id]; !ok {
		return groupshare.ErrAlbumNotFound
	}
	delete(r.albums, id)
	return nil
}

func (r *Repository) CreateMedia(ctx context.Context, media *groupshare.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.media {
		if m.AlbumID == media.AlbumID && m.FileName == media.FileName {
			return groupshare.ErrMediaExists
		}
	}

	copied := *media
	r.media[media.ID] = &copied
	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id uuid.UUID) (*groupshare.Media, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	media, ok := r.media[id]
	if !ok {
		return nil, groupshare.ErrMediaNotFound
	}
	copied := *media
	return &copied, nil
}

func (r *Repository) GetMediaByAlbumAndFileName(ctx context.Context, albumID uuid.UUID, fileName string) (*groupshare.Media, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, media := range r.media {
		if media.AlbumID == albumID && media.FileName == fileName {
			copied := *media
			return &copied, nil
		}
	}
	return nil, groupshare.ErrMediaNotFound
}

func (r *Repository) SetMediaHash(ctx context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	media, ok := r.media[id]
	if !ok {
		return groupshare.ErrMediaNotFound
	}
	media.Hash = hash
	return nil
}

func (r *Repository) ListMediaByAlbum(ctx context.Context, albumID uuid.UUID) ([]*groupshare.Media, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*groupshare.Media
	for _, media := range r.media {
		if media.AlbumID == albumID {
			copied := *media
			list = append(list, &copied)
		}
	}
	return list, nil
}

func (r *Repository) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.media[id]; !ok {
		return groupshare.ErrMediaNotFound
	}
	delete(r.media, id)
	return nil
}

func (r *Repository) DeleteMediaByAlbum(ctx context.Context, albumID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, media := range r.media {
		if media.AlbumID == albumID {
			delete(r.media, id)
		}
	}
	return nil
}
