package groupshare

import (
	"time"

	"github.com/google/uuid"
)

// Album is a named grouping of media. Each album owns an isolated
// blob-store namespace derived from its id.
type Album struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Media is one uploaded file: the metadata row plus a blob keyed by ID
// in the owning album's namespace.
type Media struct {
	ID         uuid.UUID `json:"id"`
	AlbumID    uuid.UUID `json:"album_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
	Hash       string    `json:"hash,omitempty"`
}

// Object user-metadata keys attached to every stored blob. They carry
// enough to rebuild a Media record from the blob store alone.
const (
	MetaFileName    = "filename"
	MetaAlbumID     = "albumid"
	MetaUploadedAt  = "uploadedat"
	MetaContentType = "content-type"
)

// AlbumNamespace returns the blob-store namespace owned by an album.
func AlbumNamespace(albumID uuid.UUID) string {
	return "album-" + albumID.String()
}
