package groupshare

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Service is the album and media lifecycle manager. It keeps the
// relational metadata store and the blob store aligned: the metadata
// store is the system of record for identity, the blob store for
// existence and byte content.
type Service interface {
	// CreateAlbum persists the album row and then creates its blob-store
	// namespace. Returns ErrInvalidAlbumName for a blank name and
	// ErrAlbumExists for a duplicate one.
	CreateAlbum(ctx context.Context, req CreateAlbumRequest) (*Album, error)

	// GetAlbum returns the album row or ErrAlbumNotFound.
	GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error)

	// DeleteAlbum removes the album's namespace and every object in it,
	// then the media rows, then the album row. A namespace-removal
	// failure aborts with a StorageError and leaves all rows intact, so
	// the rows remain as evidence of undeleted content and the call is
	// safely retryable.
	DeleteAlbum(ctx context.Context, id uuid.UUID) error

	// UploadMedia validates the album, the file-name uniqueness and the
	// content type, persists the media row and then stores the blob
	// keyed by the new media id. A failure after the row insert leaves
	// an orphaned row rather than an orphaned blob.
	UploadMedia(ctx context.Context, req UploadMediaRequest) (*Media, error)

	// ListMedia reconstructs the album's media entirely from the blob
	// store by enumerating its namespace and reading each object's
	// attached metadata. Unknown albums yield an empty slice, not an
	// error. The listing is best-effort under concurrent mutation.
	ListMedia(ctx context.Context, albumID uuid.UUID) ([]*Media, error)

	// DeleteMedia removes the object whose key matches the media's file
	// name from the owning namespace, then deletes the media row. Any
	// storage failure aborts with the row intact.
	DeleteMedia(ctx context.Context, id uuid.UUID) error

	// DownloadMedia opens the media's blob for streaming. The caller
	// must close the reader.
	DownloadMedia(ctx context.Context, id uuid.UUID) (*Media, io.ReadCloser, error)
}
