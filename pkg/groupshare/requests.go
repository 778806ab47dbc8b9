package groupshare

import (
	"io"

	"github.com/google/uuid"
)

// CreateAlbumRequest contains parameters for creating an album.
type CreateAlbumRequest struct {
	Name string
}

// UploadMediaRequest contains parameters for uploading one file into an
// album. Reader is streamed through to the blob store without buffering
// the whole payload.
type UploadMediaRequest struct {
	AlbumID     uuid.UUID
	FileName    string
	ContentType string // client-declared type; sniffing happens server-side
	Size        int64
	Reader      io.Reader
}
