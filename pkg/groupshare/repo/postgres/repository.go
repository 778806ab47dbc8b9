// Package postgres implements groupshare.Repository on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupshare/groupshare/pkg/groupshare"
)

// DBTX allows using either a connection pool or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements groupshare.Repository using PostgreSQL.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository.
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository from a connection pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// mapConstraintError translates unique-violation errors into the domain
// conflict sentinels; everything else passes through.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		if strings.Contains(pgErr.ConstraintName, "albums_name") {
			return groupshare.ErrAlbumExists
		}
		if strings.Contains(pgErr.ConstraintName, "media_album_id_file_name") {
			return groupshare.ErrMediaExists
		}
	}
	return err
}

func (r *Repository) CreateAlbum(ctx context.Context, album *groupshare.Album) error {
	query := `INSERT INTO albums (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, album.ID, album.Name, album.CreatedAt)
	if err != nil {
		return mapConstraintError(err)
	}
	return nil
}

func (r *Repository) GetAlbum(ctx context.Context, id uuid.UUID) (*groupshare.Album, error) {
	query := `SELECT id, name, created_at FROM albums WHERE id = $1`

	var album groupshare.Album
	err := r.db.QueryRow(ctx, query, id).Scan(&album.ID, &album.Name, &album.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, groupshare.ErrAlbumNotFound
		}
		return nil, err
	}
	return &album, nil
}

func (r *Repository) GetAlbumByName(ctx context.Context, name string) (*groupshare.Album, error) {
	query := `SELECT id, name, created_at FROM albums WHERE name = $1`

	var album groupshare.Album
	err := r.db.QueryRow(ctx, query, name).Scan(&album.ID, &album.Name, &album.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, groupshare.ErrAlbumNotFound
		}
		return nil, err
	}
	return &album, nil
}

func (r *Repository) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM albums WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return groupshare.ErrAlbumNotFound
	}
	return nil
}

func (r *Repository) CreateMedia(ctx context.Context, media *groupshare.Media) error {
	query := `
		INSERT INTO media (id, album_id, file_name, file_type, file_size, uploaded_at, hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		media.ID, media.AlbumID, media.FileName, media.FileType,
		media.FileSize, media.UploadedAt, media.Hash)
	if err != nil {
		return mapConstraintError(err)
	}
	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id uuid.UUID) (*groupshare.Media, error) {
	query := `
		SELECT id, album_id, file_name, file_type, file_size, uploaded_at, hash
		FROM media WHERE id = $1`

	return r.scanMedia(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) GetMediaByAlbumAndFileName(ctx context.Context, albumID uuid.UUID, fileName string) (*groupshare.Media, error) {
	query := `
		SELECT id, album_id, file_name, file_type, file_size, uploaded_at, hash
		FROM media WHERE album_id = $1 AND file_name = $2`

	return r.scanMedia(r.db.QueryRow(ctx, query, albumID, fileName))
}

func (r *Repository) SetMediaHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `UPDATE media SET hash = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return groupshare.ErrMediaNotFound
	}
	return nil
}

func (r *Repository) ListMediaByAlbum(ctx context.Context, albumID uuid.UUID) ([]*groupshare.Media, error) {
	query := `
		SELECT id, album_id, file_name, file_type, file_size, uploaded_at, hash
		FROM media WHERE album_id = $1
		ORDER BY uploaded_at`

	rows, err := r.db.Query(ctx, query, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*groupshare.Media
	for rows.Next() {
		var media groupshare.Media
		if err := rows.Scan(
			&media.ID, &media.AlbumID, &media.FileName, &media.FileType,
			&media.FileSize, &media.UploadedAt, &media.Hash); err != nil {
			return nil, err
		}
		list = append(list, &media)
	}
	return list, rows.Err()
}

func (r *Repository) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM media WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return groupshare.ErrMediaNotFound
	}
	return nil
}

func (r *Repository) DeleteMediaByAlbum(ctx context.Context, albumID uuid.UUID) error {
	query := `DELETE FROM media WHERE album_id = $1`

	_, err := r.db.Exec(ctx, query, albumID)
	return err
}

func (r *Repository) scanMedia(row pgx.Row) (*groupshare.Media, error) {
	var media groupshare.Media
	err := row.Scan(
		&media.ID, &media.AlbumID, &media.FileName, &media.FileType,
		&media.FileSize, &media.UploadedAt, &media.Hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, groupshare.ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}
