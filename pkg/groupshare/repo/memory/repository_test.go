package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupshare/groupshare/pkg/groupshare"
	"github.com/groupshare/groupshare/pkg/groupshare/repo/memory"
)

func newAlbum(name string) *groupshare.Album {
	return &groupshare.Album{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func newMedia(albumID uuid.UUID, fileName string) *groupshare.Media {
	return &groupshare.Media{
		ID:         uuid.New(),
		AlbumID:    albumID,
		FileName:   fileName,
		FileType:   "text/plain",
		FileSize:   1,
		UploadedAt: time.Now().UTC(),
	}
}

func TestAlbumUniqueness(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	require.NoError(t, repo.CreateAlbum(ctx, newAlbum("holiday")))
	assert.ErrorIs(t, repo.CreateAlbum(ctx, newAlbum("holiday")), groupshare.ErrAlbumExists)
}

func TestAlbumLookup(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	album := newAlbum("lookup")
	require.NoError(t, repo.CreateAlbum(ctx, album))

	got, err := repo.GetAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, album.Name, got.Name)

	got, err = repo.GetAlbumByName(ctx, "lookup")
	require.NoError(t, err)
	assert.Equal(t, album.ID, got.ID)

	_, err = repo.GetAlbum(ctx, uuid.New())
	assert.ErrorIs(t, err, groupshare.ErrAlbumNotFound)
	_, err = repo.GetAlbumByName(ctx, "absent")
	assert.ErrorIs(t, err, groupshare.ErrAlbumNotFound)
}

func TestMediaUniquenessPerAlbum(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	first := newAlbum("one")
	second := newAlbum("two")
	require.NoError(t, repo.CreateAlbum(ctx, first))
	require.NoError(t, repo.CreateAlbum(ctx, second))

	require.NoError(t, repo.CreateMedia(ctx, newMedia(first.ID, "photo.jpg")))
	assert.ErrorIs(t, repo.CreateMedia(ctx, newMedia(first.ID, "photo.jpg")), groupshare.ErrMediaExists)

	// Same file name in a different album is fine.
	require.NoError(t, repo.CreateMedia(ctx, newMedia(second.ID, "photo.jpg")))
}

func TestSetMediaHash(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	album := newAlbum("hashed")
	require.NoError(t, repo.CreateAlbum(ctx, album))

	media := newMedia(album.ID, "f.txt")
	require.NoError(t, repo.CreateMedia(ctx, media))
	require.NoError(t, repo.SetMediaHash(ctx, media.ID, "abc123"))

	got, err := repo.GetMedia(ctx, media.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.Hash)

	assert.ErrorIs(t, repo.SetMediaHash(ctx, uuid.New(), "x"), groupshare.ErrMediaNotFound)
}

func TestDeleteMediaByAlbum(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	album := newAlbum("cascade")
	other := newAlbum("kept")
	require.NoError(t, repo.CreateAlbum(ctx, album))
	require.NoError(t, repo.CreateAlbum(ctx, other))

	require.NoError(t, repo.CreateMedia(ctx, newMedia(album.ID, "a.txt")))
	require.NoError(t, repo.CreateMedia(ctx, newMedia(album.ID, "b.txt")))
	kept := newMedia(other.ID, "c.txt")
	require.NoError(t, repo.CreateMedia(ctx, kept))

	require.NoError(t, repo.DeleteMediaByAlbum(ctx, album.ID))

	list, err := repo.ListMediaByAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.ListMediaByAlbum(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)
}

func TestDeleteAlbum(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	album := newAlbum("deleted")
	require.NoError(t, repo.CreateAlbum(ctx, album))
	require.NoError(t, repo.DeleteAlbum(ctx, album.ID))
	assert.ErrorIs(t, repo.DeleteAlbum(ctx, album.ID), groupshare.ErrAlbumNotFound)
}
