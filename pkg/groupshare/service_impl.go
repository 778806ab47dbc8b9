package groupshare

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	repository Repository
	blobStore  BlobStore
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service.
type Option func(*service)

// WithRepository sets the metadata repository.
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob-store adapter.
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithLogger sets the logger used for best-effort paths.
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options.
func New(options ...Option) (Service, error) {
	s := &service{
		logger: slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// Album operations

func (s *service) CreateAlbum(ctx context.Context, req CreateAlbumRequest) (*Album, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidAlbumName
	}

	existing, err := s.repository.GetAlbumByName(ctx, req.Name)
	if err != nil && !errors.Is(err, ErrAlbumNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlbumExists
	}

	album := &Album{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}

	// Row first, then namespace: a failure in between leaves a row
	// without a namespace, which upload detects as a precondition
	// failure instead of silently writing into a missing bucket.
	if err := s.repository.CreateAlbum(ctx, album); err != nil {
		return nil, err
	}

	ns := AlbumNamespace(album.ID)
	if err := s.blobStore.CreateNamespace(ctx, ns); err != nil {
		return nil, &StorageError{Namespace: ns, Op: "create_namespace", Err: err}
	}

	return album, nil
}

func (s *service) GetAlbum(ctx context.Context, id uuid.UUID) (*Album, error) {
	return s.repository.GetAlbum(ctx, id)
}

func (s *service) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repository.GetAlbum(ctx, id); err != nil {
		return err
	}

	// Namespace first. If removal fails the metadata rows stay behind as
	// evidence of undeleted content, and the delete can be retried.
	ns := AlbumNamespace(id)
	if err := s.blobStore.RemoveNamespace(ctx, ns); err != nil {
		return &StorageError{Namespace: ns, Op: "remove_namespace", Err: err}
	}

	if err := s.repository.DeleteMediaByAlbum(ctx, id); err != nil {
		return err
	}
	return s.repository.DeleteAlbum(ctx, id)
}

// Media operations

func (s *service) UploadMedia(ctx context.Context, req UploadMediaRequest) (*Media, error) {
	album, err := s.repository.GetAlbum(ctx, req.AlbumID)
	if err != nil {
		return nil, err
	}

	ns := AlbumNamespace(album.ID)
	exists, err := s.blobStore.NamespaceExists(ctx, ns)
	if err != nil {
		return nil, &StorageError{Namespace: ns, Op: "namespace_exists", Err: err}
	}
	if !exists {
		return nil, ErrAlbumBucketMissing
	}

	existing, err := s.repository.GetMediaByAlbumAndFileName(ctx, album.ID, req.FileName)
	if err != nil && !errors.Is(err, ErrMediaNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMediaExists
	}

	// Validate both the sniffed and the declared type: the sniff guards
	// against spoofed extensions, the declared check against spoofed
	// Content-Type headers.
	sniffed, body, err := DetectMediaType(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("sniffing content type: %w", err)
	}
	if !IsAllowedMediaType(sniffed) || !IsAllowedMediaType(req.ContentType) {
		return nil, ErrUnsupportedMediaType
	}

	media := &Media{
		ID:         uuid.New(),
		AlbumID:    album.ID,
		FileName:   req.FileName,
		FileType:   req.ContentType,
		FileSize:   req.Size,
		UploadedAt: time.Now().UTC(),
	}

	// Row before blob: a failed put leaves an orphaned row, which is
	// easier to detect and repair than an orphaned blob.
	if err := s.repository.CreateMedia(ctx, media); err != nil {
		return nil, err
	}

	hasher := sha256.New()
	params := PutParams{
		Size:        req.Size,
		ContentType: req.ContentType,
		Metadata: map[string]string{
			MetaFileName:    media.FileName,
			MetaAlbumID:     media.AlbumID.String(),
			MetaUploadedAt:  media.UploadedAt.Format(time.RFC3339Nano),
			MetaContentType: media.FileType,
		},
	}
	if err := s.blobStore.Put(ctx, ns, media.ID.String(), io.TeeReader(body, hasher), params); err != nil {
		s.logger.Warn("media upload failed after metadata write; row left for repair",
			"media_id", media.ID, "album_id", album.ID, "err", err)
		return nil, &StorageError{Namespace: ns, Key: media.ID.String(), Op: "put", Err: err}
	}

	media.Hash = hex.EncodeToString(hasher.Sum(nil))
	if err := s.repository.SetMediaHash(ctx, media.ID, media.Hash); err != nil {
		// The blob is stored and the row exists; a missing digest only
		// degrades later integrity checks.
		s.logger.Warn("failed to record content hash", "media_id", media.ID, "err", err)
	}

	return media, nil
}

func (s *service) ListMedia(ctx context.Context, albumID uuid.UUID) ([]*Media, error) {
	ns := AlbumNamespace(albumID)
	list := []*Media{}

	exists, err := s.blobStore.NamespaceExists(ctx, ns)
	if err != nil {
		s.logger.Error("listing: namespace check failed", "namespace", ns, "err", err)
		return list, nil
	}
	if !exists {
		return list, nil
	}

	keys, err := s.blobStore.List(ctx, ns)
	if err != nil {
		s.logger.Error("listing: enumeration failed", "namespace", ns, "err", err)
		return list, nil
	}

	for _, key := range keys {
		media, err := s.reconstructMedia(ctx, ns, key)
		if err != nil {
			// Objects deleted mid-listing or carrying unparsable
			// metadata are skipped; the listing is best-effort.
			s.logger.Warn("listing: skipping object", "namespace", ns, "key", key, "err", err)
			continue
		}
		list = append(list, media)
	}

	return list, nil
}

// reconstructMedia rebuilds a Media record from one stored object and
// its attached user metadata, without touching the metadata store.
func (s *service) reconstructMedia(ctx context.Context, ns, key string) (*Media, error) {
	meta, err := s.blobStore.Stat(ctx, ns, key)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(key)
	if err != nil {
		return nil, fmt.Errorf("object key is not a media id: %w", err)
	}
	albumID, err := uuid.Parse(meta.Metadata[MetaAlbumID])
	if err != nil {
		return nil, fmt.Errorf("invalid %s metadata: %w", MetaAlbumID, err)
	}
	uploadedAt, err := time.Parse(time.RFC3339Nano, meta.Metadata[MetaUploadedAt])
	if err != nil {
		return nil, fmt.Errorf("invalid %s metadata: %w", MetaUploadedAt, err)
	}

	return &Media{
		ID:         id,
		AlbumID:    albumID,
		FileName:   meta.Metadata[MetaFileName],
		FileType:   meta.Metadata[MetaContentType],
		FileSize:   meta.Size,
		UploadedAt: uploadedAt,
	}, nil
}

func (s *service) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	media, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		return err
	}

	ns := AlbumNamespace(media.AlbumID)
	exists, err := s.blobStore.NamespaceExists(ctx, ns)
	if err != nil {
		return &StorageError{Namespace: ns, Op: "namespace_exists", Err: err}
	}
	if !exists {
		return ErrMediaNotFound
	}

	keys, err := s.blobStore.List(ctx, ns)
	if err != nil {
		return &StorageError{Namespace: ns, Op: "list", Err: err}
	}
	for _, key := range keys {
		if key != media.FileName {
			continue
		}
		if err := s.blobStore.Remove(ctx, ns, key); err != nil {
			return &StorageError{Namespace: ns, Key: key, Op: "remove", Err: err}
		}
		break
	}

	return s.repository.DeleteMedia(ctx, id)
}

func (s *service) DownloadMedia(ctx context.Context, id uuid.UUID) (*Media, io.ReadCloser, error) {
	media, err := s.repository.GetMedia(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	ns := AlbumNamespace(media.AlbumID)
	rc, err := s.blobStore.Get(ctx, ns, media.ID.String())
	if err != nil {
		return nil, nil, &StorageError{Namespace: ns, Key: media.ID.String(), Op: "get", Err: err}
	}

	return media, rc, nil
}
