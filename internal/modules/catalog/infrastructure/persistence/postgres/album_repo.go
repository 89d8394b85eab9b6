package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/catalog/domain"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/infrastructure/database"
)

type PgAlbumRepository struct {
	db *sqlx.DB
}

func NewAlbumRepository(db *sqlx.DB) *PgAlbumRepository {
	return &PgAlbumRepository{db: db}
}

func (r *PgAlbumRepository) Create(ctx context.Context, album *domain.Album) error {
	if album.CreatedAt.IsZero() {
		album.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO albums (id, title, release_date, publisher, created_at)
		VALUES (:id, :title, :release_date, :publisher, :created_at)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, album)
	return err
}

type albumSong struct {
	AlbumID  uuid.UUID `db:"album_id"`
	SongID   uuid.UUID `db:"song_id"`
	Position int       `db:"position"`
}

func (r *PgAlbumRepository) AddSongs(ctx context.Context, albumID uuid.UUID, songIDs []uuid.UUID) error {
	if len(songIDs) == 0 {
		return nil
	}
	rows := make([]albumSong, len(songIDs))
	for i, id := range songIDs {
		rows[i] = albumSong{AlbumID: albumID, SongID: id, Position: i + 1}
	}
	query := `INSERT INTO album_songs (album_id, song_id, position) VALUES (:album_id, :song_id, :position)`

	_, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), query, rows)
	return err
}

func (r *PgAlbumRepository) LinkArtist(ctx context.Context, albumID, artistID uuid.UUID) error {
	query := `INSERT INTO artist_albums (artist_id, album_id) VALUES ($1, $2)`

	_, err := database.Executor(ctx, r.db).ExecContext(ctx, query, artistID, albumID)
	return err
}
