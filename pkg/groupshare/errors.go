package groupshare

import (
	"errors"
	"fmt"
)

var (
	// ErrAlbumNotFound indicates the referenced album row is absent.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrAlbumExists indicates an album with the same name already exists.
	ErrAlbumExists = errors.New("album name already in use")

	// ErrInvalidAlbumName indicates a blank or missing album name.
	ErrInvalidAlbumName = errors.New("album name must not be blank")

	// ErrMediaNotFound indicates the referenced media row is absent.
	ErrMediaNotFound = errors.New("media not found")

	// ErrMediaExists indicates the album already holds a file with that name.
	ErrMediaExists = errors.New("file name already in use within album")

	// ErrUnsupportedMediaType indicates the sniffed or declared content
	// type is outside the allow-list.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrAlbumBucketMissing indicates the album row exists but its
	// blob-store namespace does not.
	ErrAlbumBucketMissing = errors.New("album storage namespace missing")

	// ErrObjectNotFound indicates a blob is absent from its namespace.
	ErrObjectNotFound = errors.New("object not found")
)

// StorageError wraps a blob-store failure so storage-library error types
// never leak past the service boundary.
type StorageError struct {
	Namespace string
	Key       string
	Op        string
	Err       error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage operation %s failed for namespace %s: %v", e.Op, e.Namespace, e.Err)
	}
	return fmt.Sprintf("storage operation %s failed for key %s in namespace %s: %v", e.Op, e.Key, e.Namespace, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
