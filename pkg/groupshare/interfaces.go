package groupshare

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the object-storage adapter. A namespace is an isolated
// region of the store (one bucket per album); keys are media ids.
type BlobStore interface {
	// NamespaceExists reports whether the namespace is present.
	NamespaceExists(ctx context.Context, namespace string) (bool, error)

	// CreateNamespace creates the namespace. An already-existing
	// namespace is not an error.
	CreateNamespace(ctx context.Context, namespace string) error

	// RemoveNamespace removes every object in the namespace and then the
	// namespace itself. An absent namespace is not an error.
	RemoveNamespace(ctx context.Context, namespace string) error

	// Put stores the reader's bytes under key with attached user metadata.
	Put(ctx context.Context, namespace, key string, r io.Reader, params PutParams) error

	// Get opens the blob for reading. Returns ErrObjectNotFound when absent.
	Get(ctx context.Context, namespace, key string) (io.ReadCloser, error)

	// Stat returns the blob's size and user metadata.
	Stat(ctx context.Context, namespace, key string) (*ObjectMeta, error)

	// List returns the keys of every object in the namespace. Listing is
	// not a snapshot: objects removed concurrently may or may not appear.
	List(ctx context.Context, namespace string) ([]string, error)

	// Remove deletes the blob. An absent key is not an error.
	Remove(ctx context.Context, namespace, key string) error
}

// PutParams carries the upload attributes for BlobStore.Put.
type PutParams struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectMeta describes a stored blob.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	Metadata    map[string]string
}

// Repository is the relational metadata store for Album and Media rows.
// Uniqueness constraints: album name globally, file name per album; a
// violation surfaces as ErrAlbumExists / ErrMediaExists.
type Repository interface {
	CreateAlbum(ctx context.Context, album *Album) error
	GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error)
	GetAlbumByName(ctx context.Context, name string) (*Album, error)
	DeleteAlbum(ctx context.Context, id uuid.UUID) error

	CreateMedia(ctx context.Context, media *Media) error
	GetMedia(ctx context.Context, id uuid.UUID) (*Media, error)
	GetMediaByAlbumAndFileName(ctx context.Context, albumID uuid.UUID, fileName string) (*Media, error)
	SetMediaHash(ctx context.Context, id uuid.UUID, hash string) error
	ListMediaByAlbum(ctx context.Context, albumID uuid.UUID) ([]*Media, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
	DeleteMediaByAlbum(ctx context.Context, albumID uuid.UUID) error
}
